// Package history persists per-user lookup history.
package history

import (
	"context"

	"github.com/dmitrijs2005/geotracker/internal/server/models"
)

type Repository interface {
	// List returns the user's entries, newest first.
	List(ctx context.Context, userID int64) ([]*models.HistoryEntry, error)
	Create(ctx context.Context, entry *models.HistoryEntry) (*models.HistoryEntry, error)
	// DeleteByIDs removes the listed entries owned by userID and reports how
	// many rows went away. Ids owned by other users are ignored.
	DeleteByIDs(ctx context.Context, userID int64, ids []int64) (int64, error)
}
