package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table           string
	ID              string
	Username        string
	Email           string
	Password        string
	FirstName       string
	LastName        string
	Bio             string
	ProfileImageURL string
	IsAuthor        string
	IsActive        string
	LastLogin       string
	CreatedAt       string
	UpdatedAt       string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:           "users.account",
	ID:              "id",
	Username:        "username",
	Email:           "email",
	Password:        "passwordhash",
	FirstName:       "firstname",
	LastName:        "lastname",
	Bio:             "bio",
	ProfileImageURL: "profileimageurl",
	IsAuthor:        "isauthor",
	IsActive:        "isactive",
	LastLogin:       "lastlogin",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.FirstName, t.LastName,
		t.Bio, t.ProfileImageURL, t.IsAuthor, t.IsActive, t.LastLogin,
		t.CreatedAt, t.UpdatedAt,
	}
}
