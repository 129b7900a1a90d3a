package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/geotracker/internal/dbx"
	"github.com/dmitrijs2005/geotracker/internal/server/models"
)

// PostgresRepository implements history storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID int64) ([]*models.HistoryEntry, error) {
	query := `SELECT id, user_id, ip_address, city, region, country, latitude, longitude, timezone, searched_at
		FROM history
		WHERE user_id = $1
		ORDER BY searched_at DESC, id DESC
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	defer rows.Close()

	result := make([]*models.HistoryEntry, 0)
	for rows.Next() {
		var (
			item     models.HistoryEntry
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Address, &item.City, &item.Region, &item.Country,
			&lat, &lng, &item.Timezone, &item.SearchedAt,
		); err != nil {
			return nil, err
		}
		item.Latitude = floatPtr(lat)
		item.Longitude = floatPtr(lng)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.HistoryEntry) (*models.HistoryEntry, error) {
	query := `INSERT INTO history (user_id, ip_address, city, region, country, latitude, longitude, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, searched_at
		`
	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Address, entry.City, entry.Region, entry.Country,
		nullFloat(entry.Latitude), nullFloat(entry.Longitude), entry.Timezone,
	).Scan(&entry.ID, &entry.SearchedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) DeleteByIDs(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM history WHERE user_id = $1 AND id IN (%s)`, dbx.Placeholders(2, len(ids)))

	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
