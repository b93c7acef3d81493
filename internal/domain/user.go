package domain

import "time"

// Role is the coarse authorization tag carried by every user.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleAdmin
}

// User is the domain model for registered citizens and administrators.
// PasswordHash is the only persisted form of the credential and must never
// appear in responses or logs.
type User struct {
	ID           string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
