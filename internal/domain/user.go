package domain

import "time"

// UserRole enumerates account roles issued by the backend.
type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleInstructor UserRole = "instructor"
	UserRoleStudent    UserRole = "student"
)

// User is the account record returned by the backend. It is replaced
// wholesale on profile updates, never patched field by field.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Role        UserRole   `json:"role"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// IsInstructor reports whether the user holds the instructor role.
func (u *User) IsInstructor() bool {
	return u != nil && u.Role == UserRoleInstructor
}

// IsStudent reports whether the user holds the student role.
func (u *User) IsStudent() bool {
	return u != nil && u.Role == UserRoleStudent
}
