package client

import (
	"context"

	"github.com/dmitrijs2005/geotracker/internal/client/models"
)

// AuthPayload is the success body of /auth/login and /auth/signup.
type AuthPayload struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// Client is the contract of the geotracker backend. Authentication is
// carried implicitly by the session cookie held in the transport.
type Client interface {
	Me(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, credentials models.LoginData) (*AuthPayload, error)
	Signup(ctx context.Context, profile models.SignupData) (*AuthPayload, error)
	Logout(ctx context.Context) error

	ListHistory(ctx context.Context) ([]models.HistoryEntry, error)
	CreateHistory(ctx context.Context, entry models.NewHistoryEntry) (*models.HistoryEntry, error)
	DeleteHistory(ctx context.Context, ids []int64) error
}

// Locator resolves an address to a location record. An empty address asks
// for the caller's own location.
type Locator interface {
	Lookup(ctx context.Context, address string) (*models.GeoRecord, error)
}
