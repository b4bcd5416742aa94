package schema

// CoreBookTable represents the 'core.book' table
type CoreBookTable struct {
	Table         string
	ID            string
	AuthorID      string
	Title         string
	Slug          string
	Description   string
	Genre         string
	Language      string
	ISBN          string
	Publisher     string
	TotalPages    string
	CoverImageURL string
	FileURL       string
	FileSize      string
	FileType      string
	IsPublished   string
	PublishedAt   string
	ReadCount     string
	CreatedAt     string
	UpdatedAt     string
}

// CoreBook is the schema definition for core.book
var CoreBook = CoreBookTable{
	Table:         "core.book",
	ID:            "id",
	AuthorID:      "authorid",
	Title:         "title",
	Slug:          "slug",
	Description:   "description",
	Genre:         "genre",
	Language:      "language",
	ISBN:          "isbn",
	Publisher:     "publisher",
	TotalPages:    "totalpages",
	CoverImageURL: "coverimageurl",
	FileURL:       "fileurl",
	FileSize:      "filesize",
	FileType:      "filetype",
	IsPublished:   "ispublished",
	PublishedAt:   "publishedat",
	ReadCount:     "readcount",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t CoreBookTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.Title, t.Slug, t.Description, t.Genre,
		t.Language, t.ISBN, t.Publisher, t.TotalPages, t.CoverImageURL,
		t.FileURL, t.FileSize, t.FileType, t.IsPublished, t.PublishedAt,
		t.ReadCount, t.CreatedAt, t.UpdatedAt,
	}
}
