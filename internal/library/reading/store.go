package reading

import "context"

type Repository interface {
	Start(context context.Context, progress *ReadingProgress) error
	Find(context context.Context, userID, bookID string) (*ReadingProgress, error)
	Update(context context.Context, progress *ReadingProgress) error
	Delete(context context.Context, userID, bookID string) error
	CurrentlyReading(context context.Context, userID string, limit, offset int) ([]*Entry, int, error)
	History(context context.Context, userID, status string, limit, offset int) ([]*Entry, int, error)
	BookStats(context context.Context, bookID string) (*BookStats, error)
}
