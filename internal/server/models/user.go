// Package models holds the backend's persistent records.
package models

import "time"

// DefaultRole is assigned when signup omits a role.
const DefaultRole = "user"

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID           int64
	Username     string
	Email        string
	Role         string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
