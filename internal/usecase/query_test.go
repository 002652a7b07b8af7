package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
)

type fakeQueryRepo struct {
	fakeRepo
	books map[string]domain.Book
}

func (f *fakeQueryRepo) GetByRef(_ context.Context, ref string) (domain.Book, error) {
	book, ok := f.books[ref]
	if !ok {
		return domain.Book{}, domain.ErrNotFound
	}
	return book, nil
}

type fakeDeliverer struct {
	delivered []string
	chats     []int64
	err       error
}

func (f *fakeDeliverer) Deliver(_ context.Context, archiveRef string, chatID int64) error {
	if f.err != nil {
		return f.err
	}
	f.delivered = append(f.delivered, archiveRef)
	f.chats = append(f.chats, chatID)
	return nil
}

func TestDeliverResolvesAndRedelivers(t *testing.T) {
	t.Parallel()

	repo := &fakeQueryRepo{books: map[string]domain.Book{
		"7": {ID: 7, Title: "Institutes.pdf", ArchiveRef: "314"},
	}}
	del := &fakeDeliverer{}
	svc := NewQueryService(repo, del, nil)

	err := svc.Deliver(context.Background(), "7", 1234)
	require.NoError(t, err)

	require.Equal(t, []string{"314"}, del.delivered)
	assert.Equal(t, []int64{1234}, del.chats)
}

func TestDeliverUnknownRefReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := &fakeQueryRepo{books: map[string]domain.Book{}}
	del := &fakeDeliverer{}
	svc := NewQueryService(repo, del, nil)

	err := svc.Deliver(context.Background(), "999", 1234)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, del.delivered)
}

func TestDeliverEmptyArchiveRefReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := &fakeQueryRepo{books: map[string]domain.Book{
		"7": {ID: 7, Title: "Ghost.pdf"},
	}}
	svc := NewQueryService(repo, &fakeDeliverer{}, nil)

	err := svc.Deliver(context.Background(), "7", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeliverPreservesNotFoundFromTransport(t *testing.T) {
	t.Parallel()

	// Archive message deleted out-of-band: the transport reports NotFound,
	// which must survive the wrapping so the bot can apologize politely.
	repo := &fakeQueryRepo{books: map[string]domain.Book{
		"7": {ID: 7, Title: "Gone.pdf", ArchiveRef: "314"},
	}}
	del := &fakeDeliverer{err: domain.ErrNotFound}
	svc := NewQueryService(repo, del, nil)

	err := svc.Deliver(context.Background(), "7", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchTrimsKeyword(t *testing.T) {
	t.Parallel()

	svc := NewQueryService(&fakeQueryRepo{}, &fakeDeliverer{}, nil)

	books, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, books)
}

func TestDeliverTransportFaultIsWrapped(t *testing.T) {
	t.Parallel()

	repo := &fakeQueryRepo{books: map[string]domain.Book{
		"7": {ID: 7, Title: "Flaky.pdf", ArchiveRef: "314"},
	}}
	transport := errors.New("connection reset")
	svc := NewQueryService(repo, &fakeDeliverer{err: transport}, nil)

	err := svc.Deliver(context.Background(), "7", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, transport)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
