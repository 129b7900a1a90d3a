// Package common contains constants and sentinel errors shared by the
// geotracker client and server.
package common

// SessionCookieName is the cookie carrying the signed session token between
// the backend and its clients.
const SessionCookieName = "token"

// Default route paths of the client navigation surface.
const (
	RouteRoot   = "/"
	RouteLogin  = "/auth/login"
	RouteSignup = "/auth/signup"
	RouteHome   = "/home"
)

// MinPasswordLength is enforced by the client signup form and again by the
// backend.
const MinPasswordLength = 8
