package reading

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/uuid"
)

// BookDirectory looks up books for the start-reading gate. Implemented by the
// book repository; kept as a local contract so tests can substitute it.
type BookDirectory interface {
	GetBook(context context.Context, bookID string) (*book.Book, error)
}

type Service struct {
	repo   Repository
	books  BookDirectory
	logger *slog.Logger
}

func NewService(repo Repository, books BookDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

// Start opens a progress record for a published book. The page total is
// snapshotted from the book at this moment.
func (service *Service) Start(context context.Context, userID, bookID string) (*ReadingProgress, error) {
	b, err := service.books.GetBook(context, bookID)
	if err != nil {
		return nil, err
	}

	if !b.IsPublished {
		return nil, apperr.Unprocessable("Cannot start reading an unpublished book")
	}

	// Pre-check for a friendlier message; the unique constraint catches the
	// losing writer of a race.
	if existing, findErr := service.repo.Find(context, userID, bookID); findErr == nil && existing != nil {
		return nil, apperr.Conflict("User is already reading this book")
	}

	progress := &ReadingProgress{
		ID:          uuid.New(),
		UserID:      userID,
		BookID:      bookID,
		CurrentPage: 1,
		TotalPages:  b.TotalPages,
		Status:      StatusReading,
	}

	if err := service.repo.Start(context, progress); err != nil {
		return nil, err
	}

	service.logger.Info("reading_started",
		slog.String("user_id", userID),
		slog.String("book_id", bookID),
	)
	return progress, nil
}

// UpdateInput carries a progress update. All fields are optional;
// ReadingTimeMinutes is added to the running total, not assigned. Status,
// when present, forces the state machine past the automatic page-based
// transition.
type UpdateInput struct {
	CurrentPage        *int
	ReadingTimeMinutes int
	Status             *string
}

func (service *Service) UpdateProgress(context context.Context, userID, bookID string, input UpdateInput) (*ReadingProgress, error) {
	progress, err := service.repo.Find(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldReadingTime, input.ReadingTimeMinutes < 0, "must not be negative")
	if input.CurrentPage != nil {
		validator.Custom(FieldCurrentPage, *input.CurrentPage < 1, "must be at least 1")
		// The upper bound comes from the book's current page count, not the
		// snapshot taken when reading started, so a corrected total applies
		// immediately. A book that can no longer be resolved skips the check.
		if b, lookupErr := service.books.GetBook(context, bookID); lookupErr == nil && b.TotalPages != nil && *b.TotalPages > 0 {
			validator.Custom(FieldCurrentPage, *input.CurrentPage > *b.TotalPages,
				fmt.Sprintf("cannot exceed total pages (%d)", *b.TotalPages))
		}
	}
	if input.Status != nil {
		validator.OneOf(FieldStatus, *input.Status, StatusReading, StatusCompleted)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Every successful update stamps last_read_at, page supplied or not.
	page := progress.CurrentPage
	if input.CurrentPage != nil {
		page = *input.CurrentPage
	}
	progress.UpdateProgress(page, input.ReadingTimeMinutes)

	if input.Status != nil {
		switch *input.Status {
		case StatusCompleted:
			// Explicit completion keeps the bookmark where it is.
			progress.Complete()
		case StatusReading:
			progress.Reopen()
		}
	}

	if err := service.repo.Update(context, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (service *Service) MarkCompleted(context context.Context, userID, bookID string) (*ReadingProgress, error) {
	progress, err := service.repo.Find(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	progress.MarkCompleted()
	if err := service.repo.Update(context, progress); err != nil {
		return nil, err
	}

	service.logger.Info("reading_completed",
		slog.String("user_id", userID),
		slog.String("book_id", bookID),
	)
	return progress, nil
}

// Reset starts the book over. The book's read count is not bumped again.
func (service *Service) Reset(context context.Context, userID, bookID string) (*ReadingProgress, error) {
	progress, err := service.repo.Find(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	progress.Reset()
	if err := service.repo.Update(context, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (service *Service) Delete(context context.Context, userID, bookID string) error {
	return service.repo.Delete(context, userID, bookID)
}

func (service *Service) Get(context context.Context, userID, bookID string) (*ReadingProgress, error) {
	return service.repo.Find(context, userID, bookID)
}

func (service *Service) CurrentlyReading(context context.Context, userID string, limit, offset int) ([]*Entry, int, error) {
	return service.repo.CurrentlyReading(context, userID, limit, offset)
}

func (service *Service) History(context context.Context, userID, status string, limit, offset int) ([]*Entry, int, error) {
	if status != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldStatus, status, StatusReading, StatusCompleted)
		if err := validator.Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.History(context, userID, status, limit, offset)
}

// BookStats aggregates reader activity; the completion rate is derived here
// so the store only ships counts.
func (service *Service) BookStats(context context.Context, bookID string) (*BookStats, error) {
	if _, err := service.books.GetBook(context, bookID); err != nil {
		return nil, err
	}

	stats, err := service.repo.BookStats(context, bookID)
	if err != nil {
		return nil, err
	}

	if stats.TotalReaders > 0 {
		rate := float64(stats.CompletedReaders) / float64(stats.TotalReaders) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}
	return stats, nil
}
