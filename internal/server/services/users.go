// Package services contains the backend's business logic: account signup,
// password login, cookie session resolution and per-user lookup history.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/geotracker/internal/common"
	"github.com/dmitrijs2005/geotracker/internal/server/auth"
	"github.com/dmitrijs2005/geotracker/internal/server/config"
	"github.com/dmitrijs2005/geotracker/internal/server/models"
	"github.com/dmitrijs2005/geotracker/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// Signup validation messages.
const (
	MsgMissingFields     = "Please fill in all fields"
	MsgPasswordsMismatch = "Passwords do not match"
	MsgPasswordTooShort  = "Password must be at least 8 characters long"
)

// SignupInput carries the signup form as received from the client.
type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Session is an authenticated user plus the signed token for the cookie.
type Session struct {
	User  *models.User
	Token string
}

// UserService handles signup, login and resolution of session tokens.
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	secret          []byte
	sessionValidity time.Duration
	bcryptCost      int
	dummyHash       []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	s := &UserService{
		db:              db,
		repomanager:     m,
		secret:          []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
		bcryptCost:      bcrypt.DefaultCost,
	}
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("geotracker-dummy-password"), s.bcryptCost)
	return s
}

// SessionValidity is the lifetime of tokens issued by this service.
func (s *UserService) SessionValidity() time.Duration { return s.sessionValidity }

// Signup validates in, stores the user with a bcrypt password hash and
// opens a session. New accounts always get models.DefaultRole. A taken
// email yields common.ErrAlreadyExists.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, invalid(MsgMissingFields)
	}
	if in.Password != in.ConfirmPassword {
		return nil, invalid(MsgPasswordsMismatch)
	}
	if len(in.Password) < common.MinPasswordLength {
		return nil, invalid(MsgPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: in.Username, Email: in.Email, Role: models.DefaultRole, PasswordHash: hash}
	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.open(created)
}

// Login checks the password of the account registered under email. An
// unknown email and a wrong password both yield common.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, invalid(MsgMissingFields)
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Burn the same time as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrUnauthorized
	}

	return s.open(user)
}

// Authenticate resolves a session token to its user. Invalid or expired
// tokens and deleted users yield common.ErrUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrUnauthorized
	}
	userID, err := auth.GetUserIDFromToken(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

func (s *UserService) open(user *models.User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, s.secret, s.sessionValidity)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}
