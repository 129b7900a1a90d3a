// Package users persists backend accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/geotracker/internal/server/models"
)

// Repository stores and finds users. Lookups return common.ErrNotFound when
// no row matches; Create returns common.ErrAlreadyExists on a taken email.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
