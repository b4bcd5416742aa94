package author

import "time"

// Author is the publishing profile attached to a user account. A user has at
// most one author profile; its presence is what the account's is_author flag
// mirrors.
type Author struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	PenName     string            `json:"pen_name"`
	Bio         *string           `json:"bio"`
	Website     *string           `json:"website"`
	SocialLinks map[string]string `json:"social_links"`
	TotalBooks  int               `json:"total_books"`
	TotalReads  int               `json:"total_reads"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// DisplayName returns the public-facing name for the author.
func (a *Author) DisplayName() string {
	return a.PenName
}

// SetSocialLink adds or replaces a social profile link.
func (a *Author) SetSocialLink(platform, url string) {
	if a.SocialLinks == nil {
		a.SocialLinks = map[string]string{}
	}
	a.SocialLinks[platform] = url
}

// SocialLink looks up a social profile link by platform name.
func (a *Author) SocialLink(platform string) (string, bool) {
	url, ok := a.SocialLinks[platform]
	return url, ok
}

// Filter holds the parameters for a paginated author search.
type Filter struct {
	Query string // ILIKE search against pen name
}

// Global field names for validation
const (
	FieldPenName  = "pen_name"
	FieldBio      = "bio"
	FieldWebsite  = "website"
	FieldPlatform = "platform"
	FieldURL      = "url"
)
