package domain

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleAttendee  Role = "ATTENDEE"
	RoleOrganizer Role = "ORGANIZER"
	RoleAdmin     Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAttendee, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether r is RoleAdmin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is a registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the public projection of a user embedded in other payloads.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// Summary projects the user for embedding.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, Role: u.Role}
}
