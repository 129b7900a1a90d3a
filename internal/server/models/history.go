package models

import "time"

// HistoryEntry is one persisted lookup owned by UserID. Coordinates are
// optional and stored as DOUBLE PRECISION.
type HistoryEntry struct {
	ID         int64
	UserID     int64
	Address    string
	City       string
	Region     string
	Country    string
	Latitude   *float64
	Longitude  *float64
	Timezone   string
	SearchedAt time.Time
}
