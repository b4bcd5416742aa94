package author

import "context"

type Repository interface {
	// CreateProfile inserts the author row and flips the owning account's
	// author flag in the same transaction.
	CreateProfile(context context.Context, a *Author) error
	GetAuthor(context context.Context, id string) (*Author, error)
	FindByUserID(context context.Context, userID string) (*Author, error)
	ListAuthors(context context.Context, f Filter, limit, offset int) ([]*Author, int, error)
	Update(context context.Context, a *Author) error
}
