package book

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/slug"
	"github.com/taibuivan/folio/pkg/uuid"
)

// AuthorDirectory resolves the author profile owned by a user account.
// Implemented by the author service; kept as a local contract so tests can
// substitute it.
type AuthorDirectory interface {
	AuthorIDForUser(context context.Context, userID string) (string, error)
}

type Service struct {
	repo    Repository
	authors AuthorDirectory
	logger  *slog.Logger
}

func NewService(repo Repository, authors AuthorDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		authors: authors,
		logger:  logger,
	}
}

// resolveAuthor maps the calling user to their author profile ID. Users
// without a profile cannot own books.
func (service *Service) resolveAuthor(context context.Context, userID string) (string, error) {
	authorID, err := service.authors.AuthorIDForUser(context, userID)
	if err != nil {
		return "", apperr.Forbidden("Author profile required")
	}
	return authorID, nil
}

// requireOwnership fetches the book and verifies the caller's author profile
// owns it.
func (service *Service) requireOwnership(context context.Context, userID, bookID string) (*Book, error) {
	authorID, err := service.resolveAuthor(context, userID)
	if err != nil {
		return nil, err
	}

	b, err := service.repo.GetBook(context, bookID)
	if err != nil {
		return nil, err
	}

	if b.AuthorID != authorID {
		return nil, apperr.Forbidden("You do not own this book")
	}
	return b, nil
}

// CreateBookInput holds the data for a new draft book.
type CreateBookInput struct {
	Title         string
	Description   *string
	Genre         *string
	Language      string
	ISBN          *string
	Publisher     *string
	TotalPages    *int
	CoverImageURL *string
	FileURL       *string
	FileSize      *int64
	FileType      *string
}

func validateBookFields(title string, totalPages *int) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).BookTitle(FieldTitle, title)
	if totalPages != nil {
		validator.Custom(FieldTotalPages, *totalPages <= 0, "must be greater than 0")
	}
	return validator.Err()
}

// CreateBook creates a new draft owned by the calling user's author profile.
// Titles are unique per author.
func (service *Service) CreateBook(context context.Context, userID string, input CreateBookInput) (*Book, error) {
	authorID, err := service.resolveAuthor(context, userID)
	if err != nil {
		return nil, err
	}

	if err := validateBookFields(input.Title, input.TotalPages); err != nil {
		return nil, err
	}

	exists, err := service.repo.TitleExists(context, authorID, input.Title, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Book with this title already exists for this author")
	}

	language := input.Language
	if language == "" {
		language = "en"
	}

	b := &Book{
		ID:            uuid.New(),
		AuthorID:      authorID,
		Title:         input.Title,
		Slug:          slug.From(input.Title),
		Description:   input.Description,
		Genre:         input.Genre,
		Language:      language,
		ISBN:          input.ISBN,
		Publisher:     input.Publisher,
		TotalPages:    input.TotalPages,
		CoverImageURL: input.CoverImageURL,
		FileURL:       input.FileURL,
		FileSize:      input.FileSize,
		FileType:      input.FileType,
		IsPublished:   false,
	}

	if err := service.repo.CreateBook(context, b); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.String("book_id", b.ID),
		slog.String("author_id", authorID),
		slog.String("title", b.Title),
	)
	return b, nil
}

// GetBook fetches a single book. Drafts are visible only to their owner;
// everyone else gets NotFound so drafts don't leak their existence.
func (service *Service) GetBook(context context.Context, bookID, callerUserID string) (*Book, error) {
	b, err := service.repo.GetBook(context, bookID)
	if err != nil {
		return nil, err
	}

	if b.IsPublished {
		return b, nil
	}

	if callerUserID != "" {
		authorID, err := service.authors.AuthorIDForUser(context, callerUserID)
		if err == nil && authorID == b.AuthorID {
			return b, nil
		}
	}

	return nil, apperr.NotFound("Book")
}

// UpdateBook applies a partial patch to an owned book.
func (service *Service) UpdateBook(context context.Context, userID, bookID string, patch UpdatePatch) (*Book, error) {
	b, err := service.requireOwnership(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validateBookFields(*patch.Title, patch.TotalPages); err != nil {
			return nil, err
		}

		exists, err := service.repo.TitleExists(context, b.AuthorID, *patch.Title, b.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.Conflict("Book with this title already exists for this author")
		}
	} else if patch.TotalPages != nil {
		validator := &validate.Validator{}
		validator.Custom(FieldTotalPages, *patch.TotalPages <= 0, "must be greater than 0")
		if err := validator.Err(); err != nil {
			return nil, err
		}
	}

	b.ApplyPatch(patch)
	if patch.Title != nil {
		b.Slug = slug.From(b.Title)
	}

	if err := service.repo.UpdateBook(context, b); err != nil {
		return nil, err
	}

	service.logger.Info("book_updated", slog.String("book_id", b.ID))
	return b, nil
}

// PublishBook makes an owned book visible to readers.
func (service *Service) PublishBook(context context.Context, userID, bookID string) (*Book, error) {
	b, err := service.requireOwnership(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	b.Publish()
	if err := service.repo.UpdateBook(context, b); err != nil {
		return nil, err
	}

	service.logger.Info("book_published", slog.String("book_id", b.ID))
	return b, nil
}

// UnpublishBook pulls an owned book back to draft state.
func (service *Service) UnpublishBook(context context.Context, userID, bookID string) (*Book, error) {
	b, err := service.requireOwnership(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	b.Unpublish()
	if err := service.repo.UpdateBook(context, b); err != nil {
		return nil, err
	}

	service.logger.Info("book_unpublished", slog.String("book_id", b.ID))
	return b, nil
}

// DeleteBook removes an owned book. Reading progress rows cascade away and
// the author's total_books counter is decremented, floored at zero.
func (service *Service) DeleteBook(context context.Context, userID, bookID string) error {
	b, err := service.requireOwnership(context, userID, bookID)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteBook(context, b.ID, b.AuthorID); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", b.ID))
	return nil
}

// ListBooks returns the public catalog: published books only, newest first.
func (service *Service) ListBooks(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	filter.PublishedOnly = true
	return service.repo.ListBooks(context, filter, limit, offset)
}

// SearchBooks matches the query against title, description and genre of
// published books.
func (service *Service) SearchBooks(context context.Context, query string, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListBooks(context, Filter{PublishedOnly: true, Query: query}, limit, offset)
}

// AuthorBooks lists the calling author's own catalog, drafts included.
func (service *Service) AuthorBooks(context context.Context, userID string, limit, offset int) ([]*Book, int, error) {
	authorID, err := service.resolveAuthor(context, userID)
	if err != nil {
		return nil, 0, err
	}
	return service.repo.ListBooks(context, Filter{AuthorID: authorID}, limit, offset)
}
