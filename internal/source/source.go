package source

import (
	"context"
	"fmt"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
)

// Request carries all parameters required to walk a channel's message stream.
type Request struct {
	Channel string
	Limit   int
}

// Source captures a single stream-reading strategy (public preview page,
// bot updates, etc.).
type Source interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]domain.Candidate, error)
}

// Registry keeps a mapping from source names to their implementations.
type Registry struct {
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(src Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	r.sources[src.Name()] = src
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("source %s is not registered", name)
}
