package domain

import "time"

// Role determines what a signed-in user is allowed to see and do.
type Role string

// Available roles.
const (
	// RoleAdmin manages the archive, user accounts, and dispositions.
	RoleAdmin Role = "admin"

	// RoleStaff uploads personal documents and receives dispositions.
	RoleStaff Role = "staff"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// User is an account in the archive's user directory.
type User struct {
	// ID is the unique identifier for the user.
	ID string

	// Name is the display name.
	Name string

	// Username is the login name.
	Username string

	// Role is the user's role.
	Role Role

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}
