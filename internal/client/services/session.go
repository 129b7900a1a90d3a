// Package services holds the CLI's application state: the authenticated
// session, the geolocation view with its search history, and the history
// selection.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/geotracker/internal/client/client"
	"github.com/dmitrijs2005/geotracker/internal/client/models"
	"github.com/dmitrijs2005/geotracker/internal/logging"
)

const (
	MsgLoginFailed  = "Login failed"
	MsgSignupFailed = "Signup failed"
)

// SessionStore owns the identity of the signed-in user.
//
// One instance is shared by everything that needs to know who is logged in.
// User is the only source of truth for "authenticated".
type SessionStore interface {
	// CheckSession asks the backend who the current session belongs to.
	// It never fails: any error leaves the store unauthenticated.
	CheckSession(ctx context.Context)
	Login(ctx context.Context, credentials models.LoginData) models.AuthResponse
	Signup(ctx context.Context, profile models.SignupData) models.AuthResponse
	Logout(ctx context.Context) models.LogoutResult

	User() *models.User
	// Loading is true while a session call is in flight.
	Loading() bool
}

type sessionStore struct {
	client client.Client
	log    logging.Logger

	mu       sync.RWMutex
	user     *models.User
	inFlight int
}

func NewSessionStore(c client.Client, log logging.Logger) SessionStore {
	return &sessionStore{client: c, log: log.With("component", "session")}
}

func (s *sessionStore) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *sessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// begin marks a call in flight; the returned func must run on every exit path.
func (s *sessionStore) begin() func() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}
}

func (s *sessionStore) setUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func (s *sessionStore) CheckSession(ctx context.Context) {
	defer s.begin()()

	user, err := s.client.Me(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrUnauthorized) {
			s.log.Error(ctx, "session check failed", "error", err)
		}
		s.setUser(nil)
		return
	}
	s.log.Debug(ctx, "session resolved", "user_id", user.ID)
	s.setUser(user)
}

// Login leaves an existing session untouched when the attempt fails.
func (s *sessionStore) Login(ctx context.Context, credentials models.LoginData) models.AuthResponse {
	defer s.begin()()

	s.log.Info(ctx, "login request", "email", credentials.Email)
	resp, err := s.client.Login(ctx, credentials)
	if err != nil {
		s.log.Info(ctx, "login failed", "email", credentials.Email, "error", err)
		return models.AuthResponse{Message: remoteError(err, MsgLoginFailed).Message}
	}
	s.setUser(resp.User)
	s.log.Info(ctx, "login successful", "user_id", userID(resp.User))
	return models.AuthResponse{Success: true, Message: resp.Message, User: resp.User}
}

// Signup does no form validation of its own; see ValidateSignup.
func (s *sessionStore) Signup(ctx context.Context, profile models.SignupData) models.AuthResponse {
	defer s.begin()()

	s.log.Info(ctx, "signup request", "username", profile.Username, "email", profile.Email)
	resp, err := s.client.Signup(ctx, profile)
	if err != nil {
		s.log.Info(ctx, "signup failed", "email", profile.Email, "error", err)
		return models.AuthResponse{Message: remoteError(err, MsgSignupFailed).Message}
	}
	s.setUser(resp.User)
	s.log.Info(ctx, "signup successful", "user_id", userID(resp.User))
	return models.AuthResponse{Success: true, Message: resp.Message, User: resp.User}
}

// Logout keeps the user when the request fails, since the server may still
// hold the session.
func (s *sessionStore) Logout(ctx context.Context) models.LogoutResult {
	defer s.begin()()

	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout failed", "error", err)
		return models.LogoutResult{}
	}
	s.setUser(nil)
	s.log.Info(ctx, "logout successful")
	return models.LogoutResult{Success: true}
}

func userID(u *models.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
