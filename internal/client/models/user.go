// Package models defines the client-side data model: the authenticated user,
// the credentials sent to the backend, the displayed geolocation record and
// persisted history entries.
package models

import "time"

// User is the authenticated identity returned by the backend. It is always
// replaced wholesale, never patched.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// LoginData is the body of POST /auth/login.
type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupData is the body of POST /auth/signup. The confirmation field keeps
// the backend's historical spelling.
type SignupData struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confimpassword"`
}

// AuthResponse is the outcome of login and signup as seen by the form layer.
type AuthResponse struct {
	Success bool
	Message string
	User    *User
}

// LogoutResult is the outcome of logout.
type LogoutResult struct {
	Success bool
}
