package book_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

type fakeRepository struct {
	books map[string]*book.Book
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{books: make(map[string]*book.Book)}
}

func (r *fakeRepository) CreateBook(_ context.Context, b *book.Book) error {
	copied := *b
	r.books[b.ID] = &copied
	return nil
}

func (r *fakeRepository) GetBook(_ context.Context, id string) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepository) TitleExists(_ context.Context, authorID, title, excludeID string) (bool, error) {
	for _, b := range r.books {
		if b.AuthorID == authorID && b.Title == title && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) UpdateBook(_ context.Context, b *book.Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return apperr.NotFound("Book")
	}
	copied := *b
	r.books[b.ID] = &copied
	return nil
}

func (r *fakeRepository) DeleteBook(_ context.Context, id, authorID string) error {
	b, ok := r.books[id]
	if !ok || b.AuthorID != authorID {
		return apperr.NotFound("Book")
	}
	delete(r.books, id)
	return nil
}

func (r *fakeRepository) ListBooks(_ context.Context, f book.Filter, limit, offset int) ([]*book.Book, int, error) {
	var matched []*book.Book
	for _, b := range r.books {
		if f.PublishedOnly && !b.IsPublished {
			continue
		}
		if f.AuthorID != "" && b.AuthorID != f.AuthorID {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(f.Query)) {
			continue
		}
		copied := *b
		matched = append(matched, &copied)
	}
	return matched, len(matched), nil
}

// fakeAuthorDirectory maps user IDs to author profile IDs.
type fakeAuthorDirectory struct {
	profiles map[string]string
}

func (d *fakeAuthorDirectory) AuthorIDForUser(_ context.Context, userID string) (string, error) {
	authorID, ok := d.profiles[userID]
	if !ok {
		return "", apperr.NotFound("Author profile")
	}
	return authorID, nil
}

func newTestService() (*book.Service, *fakeRepository, *fakeAuthorDirectory) {
	repo := newFakeRepository()
	directory := &fakeAuthorDirectory{profiles: map[string]string{
		"user-ann": "author-ann",
		"user-bob": "author-bob",
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return book.NewService(repo, directory, logger), repo, directory
}

func TestService_CreateBook(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{
		Title: "The Quiet Harbour",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "author-ann", created.AuthorID)
	assert.Equal(t, "the-quiet-harbour", created.Slug)
	assert.Equal(t, "en", created.Language, "language defaults to English")
	assert.False(t, created.IsPublished, "new books start as drafts")
	assert.Nil(t, created.PublishedAt)
}

func TestService_CreateBook_RequiresAuthorProfile(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.CreateBook(context.Background(), "user-reader", book.CreateBookInput{
		Title: "Unauthorized Memoirs",
	})
	require.Error(t, err)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 403, appError.HTTPStatus)
	assert.Equal(t, "Author profile required", appError.Message)
}

func TestService_CreateBook_TitleUniquePerAuthor(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Tides"})
	require.NoError(t, err)

	_, err = service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Tides"})
	require.Error(t, err)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 409, appError.HTTPStatus)
	assert.Equal(t, "Book with this title already exists for this author", appError.Message)

	// The same title is fine for a different author.
	_, err = service.CreateBook(context.Background(), "user-bob", book.CreateBookInput{Title: "Tides"})
	assert.NoError(t, err)
}

func TestService_CreateBook_InvalidTotalPages(t *testing.T) {
	service, _, _ := newTestService()

	zero := 0
	_, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{
		Title:      "Empty Pages",
		TotalPages: &zero,
	})
	require.Error(t, err)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 400, appError.HTTPStatus)
}

func TestService_GetBook_DraftVisibility(t *testing.T) {
	service, _, _ := newTestService()

	draft, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Hidden Draft"})
	require.NoError(t, err)

	// Owner sees their own draft.
	got, err := service.GetBook(context.Background(), draft.ID, "user-ann")
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	// Another author gets NotFound, not Forbidden; drafts must not leak.
	_, err = service.GetBook(context.Background(), draft.ID, "user-bob")
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 404, appError.HTTPStatus)

	// Anonymous callers get the same.
	_, err = service.GetBook(context.Background(), draft.ID, "")
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 404, appError.HTTPStatus)

	// Once published, anyone can read it.
	_, err = service.PublishBook(context.Background(), "user-ann", draft.ID)
	require.NoError(t, err)

	got, err = service.GetBook(context.Background(), draft.ID, "")
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
}

func TestService_UpdateBook(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "First Title"})
	require.NoError(t, err)

	newTitle := "Second Title"
	pages := 320
	updated, err := service.UpdateBook(context.Background(), "user-ann", created.ID, book.UpdatePatch{
		Title:      &newTitle,
		TotalPages: &pages,
	})
	require.NoError(t, err)

	assert.Equal(t, "Second Title", updated.Title)
	assert.Equal(t, "second-title", updated.Slug, "slug follows the title")
	require.NotNil(t, updated.TotalPages)
	assert.Equal(t, 320, *updated.TotalPages)
}

func TestService_UpdateBook_TitleConflictExcludesSelf(t *testing.T) {
	service, _, _ := newTestService()

	first, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Alpha"})
	require.NoError(t, err)
	_, err = service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Beta"})
	require.NoError(t, err)

	// Re-saving a book under its own title is not a conflict.
	sameTitle := "Alpha"
	_, err = service.UpdateBook(context.Background(), "user-ann", first.ID, book.UpdatePatch{Title: &sameTitle})
	assert.NoError(t, err)

	// Taking a sibling's title is.
	takenTitle := "Beta"
	_, err = service.UpdateBook(context.Background(), "user-ann", first.ID, book.UpdatePatch{Title: &takenTitle})
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 409, appError.HTTPStatus)
}

func TestService_Ownership(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Private Notes"})
	require.NoError(t, err)

	title := "Stolen Notes"
	_, err = service.UpdateBook(context.Background(), "user-bob", created.ID, book.UpdatePatch{Title: &title})
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 403, appError.HTTPStatus)
	assert.Equal(t, "You do not own this book", appError.Message)

	err = service.DeleteBook(context.Background(), "user-bob", created.ID)
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, 403, appError.HTTPStatus)
}

func TestService_PublishUnpublish(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Seasons"})
	require.NoError(t, err)

	published, err := service.PublishBook(context.Background(), "user-ann", created.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.PublishedAt)

	unpublished, err := service.UnpublishBook(context.Background(), "user-ann", created.ID)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)
	assert.Nil(t, unpublished.PublishedAt)
}

func TestService_DeleteBook(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Ephemeral"})
	require.NoError(t, err)

	err = service.DeleteBook(context.Background(), "user-ann", created.ID)
	require.NoError(t, err)

	_, err = repo.GetBook(context.Background(), created.ID)
	assert.Error(t, err)
}

func TestService_ListBooks_PublishedOnly(t *testing.T) {
	service, _, _ := newTestService()

	published, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Visible"})
	require.NoError(t, err)
	_, err = service.PublishBook(context.Background(), "user-ann", published.ID)
	require.NoError(t, err)

	_, err = service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Invisible Draft"})
	require.NoError(t, err)

	books, total, err := service.ListBooks(context.Background(), book.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, books, 1)
	assert.Equal(t, "Visible", books[0].Title)
}

func TestService_AuthorBooks_IncludesDrafts(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Draft One"})
	require.NoError(t, err)
	second, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Live One"})
	require.NoError(t, err)
	_, err = service.PublishBook(context.Background(), "user-ann", second.ID)
	require.NoError(t, err)

	books, total, err := service.AuthorBooks(context.Background(), "user-ann", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, books, 2)
}

func TestService_SearchBooks(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateBook(context.Background(), "user-ann", book.CreateBookInput{Title: "Gardening for Night Owls"})
	require.NoError(t, err)
	_, err = service.PublishBook(context.Background(), "user-ann", created.ID)
	require.NoError(t, err)

	books, total, err := service.SearchBooks(context.Background(), "gardening", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, books, 1)
	assert.Equal(t, created.ID, books[0].ID)
}
