package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/geotracker/internal/dbx"
	"github.com/dmitrijs2005/geotracker/internal/server/models"
	"github.com/dmitrijs2005/geotracker/internal/server/repositories/repomanager"
)

// History validation messages.
const (
	MsgMissingAddress = "ip_address is required"
	MsgMissingIDs     = "ids must be a non-empty list"
)

// HistoryService manages the lookup history of authenticated users.
type HistoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHistoryService(db *sql.DB, m repomanager.RepositoryManager) *HistoryService {
	return &HistoryService{db: db, repomanager: m}
}

// List returns userID's entries, newest first.
func (s *HistoryService) List(ctx context.Context, userID int64) ([]*models.HistoryEntry, error) {
	entries, err := s.repomanager.History(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", err)
	}
	return entries, nil
}

// Create stores entry for userID. The owner always comes from the session,
// never from the request body.
func (s *HistoryService) Create(ctx context.Context, userID int64, entry *models.HistoryEntry) (*models.HistoryEntry, error) {
	entry.Address = strings.TrimSpace(entry.Address)
	if entry.Address == "" {
		return nil, invalid(MsgMissingAddress)
	}
	entry.UserID = userID

	created, err := s.repomanager.History(s.db).Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating history entry: %w", err)
	}
	return created, nil
}

// DeleteMany removes the given entries of userID in one transaction and
// reports how many rows were removed. Ids of other users are left alone.
func (s *HistoryService) DeleteMany(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, invalid(MsgMissingIDs)
	}

	var deleted int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := s.repomanager.History(tx).DeleteByIDs(ctx, userID, dedupe(ids))
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error deleting history: %w", err)
	}
	return deleted, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
