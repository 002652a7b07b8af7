package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/ports"
)

// ChannelSource implements ports.CandidateSource by binding a registered
// strategy to the configured source channel.
type ChannelSource struct {
	registry *Registry
	strategy string
	channel  string
	logger   *slog.Logger
}

var _ ports.CandidateSource = (*ChannelSource)(nil)

// NewChannelSource wires the registry with the configured channel identity.
func NewChannelSource(reg *Registry, strategy, channel string, log *slog.Logger) *ChannelSource {
	return &ChannelSource{
		registry: reg,
		strategy: strategy,
		channel:  channel,
		logger:   log,
	}
}

// Fetch resolves the configured strategy and walks the channel stream.
func (s *ChannelSource) Fetch(ctx context.Context, limit int) ([]domain.Candidate, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("source registry is not configured")
	}
	if s.channel == "" {
		return nil, fmt.Errorf("source channel is not configured")
	}

	strategy, err := s.registry.Resolve(s.strategy)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", s.channel, err)
	}

	s.debug("fetch candidates", "channel", s.channel, "strategy", s.strategy, "limit", limit)

	candidates, err := strategy.Fetch(ctx, Request{Channel: s.channel, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("fetch channel %s: %w", s.channel, err)
	}

	for i := range candidates {
		if candidates[i].SourceChat == "" {
			candidates[i].SourceChat = s.channel
		}
	}

	s.debug("channel produced candidates", "channel", s.channel, "count", len(candidates))
	return candidates, nil
}

func (s *ChannelSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
