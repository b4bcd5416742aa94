package reading

import (
	"encoding/json"
	"math"
	"time"
)

const (
	StatusReading   = "reading"
	StatusCompleted = "completed"
)

const (
	FieldBookID      = "book_id"
	FieldCurrentPage = "current_page"
	FieldReadingTime = "reading_time_minutes"
	FieldStatus      = "status"
)

// ReadingProgress tracks one user's position in one book. TotalPages is a
// snapshot taken when reading starts, so later edits to the book don't
// retroactively change completion math.
type ReadingProgress struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	BookID             string     `json:"book_id"`
	CurrentPage        int        `json:"current_page"`
	TotalPages         *int       `json:"total_pages"`
	Status             string     `json:"status"`
	ReadingTimeMinutes int        `json:"reading_time_minutes"`
	StartedAt          time.Time  `json:"started_at"`
	LastReadAt         *time.Time `json:"last_read_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// UpdateProgress moves the bookmark and accumulates reading time. Reaching
// the final page completes the book automatically.
func (progress *ReadingProgress) UpdateProgress(page, minutes int) {
	now := time.Now()
	progress.CurrentPage = page
	progress.ReadingTimeMinutes += minutes
	progress.LastReadAt = &now

	if progress.TotalPages != nil && *progress.TotalPages > 0 && page >= *progress.TotalPages {
		progress.MarkCompleted()
	}
}

// MarkCompleted finishes the book regardless of the bookmark position and
// snaps the bookmark to the last page when the total is known. Completing an
// already-completed book refreshes the finish time.
func (progress *ReadingProgress) MarkCompleted() {
	now := time.Now()
	progress.Status = StatusCompleted
	progress.CompletedAt = &now
	if progress.TotalPages != nil && *progress.TotalPages > 0 {
		progress.CurrentPage = *progress.TotalPages
	}
}

// Complete flips the status without touching the bookmark. Used when the
// reader declares a book finished mid-page via an explicit status update.
func (progress *ReadingProgress) Complete() {
	now := time.Now()
	progress.Status = StatusCompleted
	progress.CompletedAt = &now
}

// Reopen moves a completed book back to the reading state without touching
// the bookmark or accumulated time.
func (progress *ReadingProgress) Reopen() {
	progress.Status = StatusReading
	progress.CompletedAt = nil
}

// Reset starts the book over from page one.
func (progress *ReadingProgress) Reset() {
	progress.CurrentPage = 1
	progress.ReadingTimeMinutes = 0
	progress.Status = StatusReading
	progress.StartedAt = time.Now()
	progress.LastReadAt = nil
	progress.CompletedAt = nil
}

// ProgressPercentage returns 0 when the page total is unknown, otherwise the
// bookmark position as a percentage capped at 100, rounded to two decimals.
func (progress *ReadingProgress) ProgressPercentage() float64 {
	if progress.TotalPages == nil || *progress.TotalPages <= 0 {
		return 0
	}
	percent := float64(progress.CurrentPage) / float64(*progress.TotalPages) * 100
	if percent > 100 {
		percent = 100
	}
	return math.Round(percent*100) / 100
}

func (progress *ReadingProgress) IsStarted() bool {
	return progress.CurrentPage > 1 || progress.ReadingTimeMinutes > 0
}

func (progress *ReadingProgress) ReadingTimeHours() float64 {
	return math.Round(float64(progress.ReadingTimeMinutes)/60*100) / 100
}

// MarshalJSON adds the derived fields to the wire representation.
func (progress ReadingProgress) MarshalJSON() ([]byte, error) {
	type alias ReadingProgress
	return json.Marshal(struct {
		alias
		ProgressPercentage float64 `json:"progress_percentage"`
		ReadingTimeHours   float64 `json:"reading_time_hours"`
	}{
		alias:              alias(progress),
		ProgressPercentage: progress.ProgressPercentage(),
		ReadingTimeHours:   progress.ReadingTimeHours(),
	})
}

// Entry is a progress row joined with display data for list views.
type Entry struct {
	Progress   *ReadingProgress `json:"progress"`
	BookTitle  string           `json:"book_title"`
	AuthorName string           `json:"author_name"`
}

// BookStats aggregates reader activity for a single book.
type BookStats struct {
	TotalReaders     int     `json:"total_readers"`
	CompletedReaders int     `json:"completed_readers"`
	CurrentlyReading int     `json:"currently_reading"`
	CompletionRate   float64 `json:"completion_rate"`
}
