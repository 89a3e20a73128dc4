package domain

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the stand-in identity created by mock sign-in. There are no
// credentials behind it.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
}

// IsAdmin reports whether the user may use the admin inventory editor
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
