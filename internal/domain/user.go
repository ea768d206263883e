package domain

import "time"

// Role is the capability stored on the persisted user record
type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// User is the profile linked to an authenticated account
type User struct {
	ID        int64
	Email     string
	FullName  *string
	Role      Role
	CreatedAt time.Time
}

// IsAdmin returns true for users allowed to approve providers
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
