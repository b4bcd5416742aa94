package book_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/pkg/pointer"
)

func TestBook_PublishStampsTimestamp(t *testing.T) {
	b := &book.Book{Title: "Moons"}

	b.Publish()
	require.True(t, b.IsPublished)
	require.NotNil(t, b.PublishedAt)
	first := *b.PublishedAt

	// Re-publishing always re-stamps.
	time.Sleep(time.Millisecond)
	b.Publish()
	assert.True(t, b.PublishedAt.After(first))
}

func TestBook_UnpublishClearsTimestamp(t *testing.T) {
	b := &book.Book{Title: "Moons"}
	b.Publish()

	b.Unpublish()
	assert.False(t, b.IsPublished)
	assert.Nil(t, b.PublishedAt)
}

func TestBook_ApplyPatch_PublicationAsymmetry(t *testing.T) {
	b := &book.Book{Title: "Moons"}

	// Patching to published stamps the timestamp once.
	b.ApplyPatch(book.UpdatePatch{IsPublished: pointer.To(true)})
	require.True(t, b.IsPublished)
	require.NotNil(t, b.PublishedAt)
	first := *b.PublishedAt

	// Patching to unpublished flips the flag but keeps the timestamp.
	b.ApplyPatch(book.UpdatePatch{IsPublished: pointer.To(false)})
	assert.False(t, b.IsPublished)
	require.NotNil(t, b.PublishedAt)
	assert.Equal(t, first, *b.PublishedAt)

	// Re-publishing via patch does not re-stamp an existing timestamp.
	b.ApplyPatch(book.UpdatePatch{IsPublished: pointer.To(true)})
	assert.True(t, b.IsPublished)
	assert.Equal(t, first, *b.PublishedAt)
}

func TestBook_ApplyPatch_PartialFields(t *testing.T) {
	b := &book.Book{
		Title:    "Moons",
		Language: "en",
		Genre:    pointer.To("fantasy"),
	}

	b.ApplyPatch(book.UpdatePatch{
		Title:      pointer.To("Twelve Moons"),
		TotalPages: pointer.To(320),
	})

	assert.Equal(t, "Twelve Moons", b.Title)
	require.NotNil(t, b.TotalPages)
	assert.Equal(t, 320, *b.TotalPages)
	assert.Equal(t, "en", b.Language, "unset fields stay untouched")
	assert.Equal(t, "fantasy", *b.Genre)
}

func TestBook_IsAvailable(t *testing.T) {
	b := &book.Book{Title: "Moons"}
	assert.False(t, b.IsAvailable(), "draft without file")

	b.Publish()
	assert.False(t, b.IsAvailable(), "published but no file")

	b.FileURL = pointer.To("https://cdn.folio.app/books/moons.epub")
	assert.True(t, b.IsAvailable())

	b.Unpublish()
	assert.False(t, b.IsAvailable(), "file present but unpublished")
}

func TestBook_FileExtension(t *testing.T) {
	tests := []struct {
		name     string
		fileType *string
		fileURL  *string
		expected string
	}{
		{"from_file_type", pointer.To("EPUB"), nil, "epub"},
		{"file_type_with_dot", pointer.To(".pdf"), nil, "pdf"},
		{"from_url_fallback", nil, pointer.To("https://cdn.folio.app/b/moons.mobi"), "mobi"},
		{"type_wins_over_url", pointer.To("epub"), pointer.To("https://x/y.pdf"), "epub"},
		{"nothing_known", nil, nil, ""},
		// The fallback takes everything after the last dot, wherever it is;
		// a URL whose only dot sits in the host yields the host remainder.
		{"dot_only_in_host", nil, pointer.To("https://cdn.folio.app/moons"), "app/moons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &book.Book{FileType: tt.fileType, FileURL: tt.fileURL}
			assert.Equal(t, tt.expected, b.FileExtension())
		})
	}
}
