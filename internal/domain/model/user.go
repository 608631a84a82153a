package model

// UserRole restricts destructive operations.
type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleStaff UserRole = "STAFF"
)

// User is a workshop staff account.
//
// Password holds whatever the configured password scheme stores; with the default
// scheme this is plain text.
type User struct {
	Username string
	Name     string
	Role     UserRole
	Password string
}

// IsAdmin reports whether the user may perform admin-only operations.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
