package models

import "time"

// Role identifies what an account is allowed to do
type Role string

const (
	RoleParent     Role = "parent"
	RoleTeacher    Role = "teacher"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleParent, RoleTeacher, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// User represents an account in the system. The role is fixed at
// registration time; there is no role-change operation.
type User struct {
	ID             int64
	Email          string
	PasswordHash   string
	Name           string
	Role           Role
	PinHash        string
	DeviceToken    string
	ProfilePicture string
	OAuthProvider  string
	OAuthSubject   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
