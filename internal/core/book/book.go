package book

import (
	"strings"
	"time"
)

// Book is a work published on the platform by an author. A book starts as a
// draft (unpublished) and becomes visible to readers once published.
type Book struct {
	ID            string     `json:"id"`
	AuthorID      string     `json:"author_id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Description   *string    `json:"description"`
	Genre         *string    `json:"genre"`
	Language      string     `json:"language"`
	ISBN          *string    `json:"isbn"`
	Publisher     *string    `json:"publisher"`
	TotalPages    *int       `json:"total_pages"`
	CoverImageURL *string    `json:"cover_image_url"`
	FileURL       *string    `json:"file_url"`
	FileSize      *int64     `json:"file_size"`
	FileType      *string    `json:"file_type"`
	IsPublished   bool       `json:"is_published"`
	PublishedAt   *time.Time `json:"published_at"`
	ReadCount     int        `json:"read_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Publish makes the book visible to readers. The publication timestamp is
// always re-stamped, even when the book was published before.
func (b *Book) Publish() {
	now := time.Now()
	b.IsPublished = true
	b.PublishedAt = &now
}

// Unpublish pulls the book back to draft state and clears the publication
// timestamp. This is the only operation that clears it.
func (b *Book) Unpublish() {
	b.IsPublished = false
	b.PublishedAt = nil
}

// UpdatePatch holds optional field changes. Nil fields are left untouched.
type UpdatePatch struct {
	Title         *string
	Description   *string
	Genre         *string
	Language      *string
	ISBN          *string
	Publisher     *string
	TotalPages    *int
	CoverImageURL *string
	FileURL       *string
	FileSize      *int64
	FileType      *string
	IsPublished   *bool
}

// ApplyPatch merges non-nil patch fields into the book.
//
// Publication handling is deliberately asymmetric: patching is_published to
// true stamps published_at only when it was never set, while patching it to
// false does NOT clear the timestamp. Only [Unpublish] clears it.
func (b *Book) ApplyPatch(patch UpdatePatch) {
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = patch.Description
	}
	if patch.Genre != nil {
		b.Genre = patch.Genre
	}
	if patch.Language != nil {
		b.Language = *patch.Language
	}
	if patch.ISBN != nil {
		b.ISBN = patch.ISBN
	}
	if patch.Publisher != nil {
		b.Publisher = patch.Publisher
	}
	if patch.TotalPages != nil {
		b.TotalPages = patch.TotalPages
	}
	if patch.CoverImageURL != nil {
		b.CoverImageURL = patch.CoverImageURL
	}
	if patch.FileURL != nil {
		b.FileURL = patch.FileURL
	}
	if patch.FileSize != nil {
		b.FileSize = patch.FileSize
	}
	if patch.FileType != nil {
		b.FileType = patch.FileType
	}

	if patch.IsPublished != nil {
		if *patch.IsPublished {
			if !b.IsPublished && b.PublishedAt == nil {
				now := time.Now()
				b.PublishedAt = &now
			}
			b.IsPublished = true
		} else {
			// published_at intentionally survives an is_published=false patch
			b.IsPublished = false
		}
	}
}

// IsAvailable reports whether readers can actually open the book: it must be
// published and have an attached file.
func (b *Book) IsAvailable() bool {
	return b.IsPublished && b.FileURL != nil && *b.FileURL != ""
}

// FileExtension derives the download extension from the file type, falling
// back to the file URL suffix. Empty when neither is known.
func (b *Book) FileExtension() string {
	if b.FileType != nil && *b.FileType != "" {
		return strings.ToLower(strings.TrimPrefix(*b.FileType, "."))
	}
	if b.FileURL == nil {
		return ""
	}
	url := *b.FileURL
	dot := strings.LastIndex(url, ".")
	if dot < 0 || dot == len(url)-1 {
		return ""
	}
	return strings.ToLower(url[dot+1:])
}

// Filter holds the parameters for a paginated book listing.
type Filter struct {
	PublishedOnly bool
	Genre         string // substring match
	AuthorID      string
	Query         string // search across title, description and genre
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldLanguage    = "language"
	FieldISBN        = "isbn"
	FieldPublisher   = "publisher"
	FieldTotalPages  = "total_pages"
)
