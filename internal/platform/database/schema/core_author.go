package schema

// CoreAuthorTable represents the 'core.author' table
type CoreAuthorTable struct {
	Table       string
	ID          string
	UserID      string
	PenName     string
	Bio         string
	Website     string
	SocialLinks string
	TotalBooks  string
	TotalReads  string
	CreatedAt   string
	UpdatedAt   string
}

// CoreAuthor is the schema definition for core.author
var CoreAuthor = CoreAuthorTable{
	Table:       "core.author",
	ID:          "id",
	UserID:      "userid",
	PenName:     "penname",
	Bio:         "bio",
	Website:     "website",
	SocialLinks: "sociallinks",
	TotalBooks:  "totalbooks",
	TotalReads:  "totalreads",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CoreAuthorTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.PenName, t.Bio, t.Website, t.SocialLinks,
		t.TotalBooks, t.TotalReads, t.CreatedAt, t.UpdatedAt,
	}
}
