package schema

// LibraryReadingProgressTable represents the 'library.readingprogress' table
type LibraryReadingProgressTable struct {
	Table              string
	ID                 string
	UserID             string
	BookID             string
	CurrentPage        string
	TotalPages         string
	Status             string
	ReadingTimeMinutes string
	StartedAt          string
	LastReadAt         string
	CompletedAt        string
	CreatedAt          string
	UpdatedAt          string
}

// LibraryReadingProgress is the schema definition for library.readingprogress
var LibraryReadingProgress = LibraryReadingProgressTable{
	Table:              "library.readingprogress",
	ID:                 "id",
	UserID:             "userid",
	BookID:             "bookid",
	CurrentPage:        "currentpage",
	TotalPages:         "totalpages",
	Status:             "status",
	ReadingTimeMinutes: "readingtimeminutes",
	StartedAt:          "startedat",
	LastReadAt:         "lastreadat",
	CompletedAt:        "completedat",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

// Columns returns all standard column names
func (t LibraryReadingProgressTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.BookID, t.CurrentPage, t.TotalPages, t.Status,
		t.ReadingTimeMinutes, t.StartedAt, t.LastReadAt, t.CompletedAt,
		t.CreatedAt, t.UpdatedAt,
	}
}
