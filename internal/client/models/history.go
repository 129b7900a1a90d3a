package models

import (
	"strings"
	"time"
)

// HistoryEntry is a server-persisted record of one past successful lookup.
// Latitude and longitude travel as decimal strings, empty when unknown.
type HistoryEntry struct {
	ID         int64     `json:"id"`
	Address    string    `json:"ip_address"`
	City       string    `json:"city,omitempty"`
	Region     string    `json:"region,omitempty"`
	Country    string    `json:"country,omitempty"`
	Latitude   string    `json:"latitude,omitempty"`
	Longitude  string    `json:"longitude,omitempty"`
	Timezone   string    `json:"timezone,omitempty"`
	SearchedAt time.Time `json:"searched_at"`
}

// NewHistoryEntry is the body of POST /history.
type NewHistoryEntry struct {
	Address   string `json:"ip_address"`
	City      string `json:"city,omitempty"`
	Region    string `json:"region,omitempty"`
	Country   string `json:"country,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
}

// NewHistoryEntryFromRecord decomposes a displayed record into the
// persistence request.
func NewHistoryEntryFromRecord(g GeoRecord) NewHistoryEntry {
	e := NewHistoryEntry{
		Address:  g.Address,
		City:     g.City,
		Region:   g.Region,
		Country:  g.Country,
		Timezone: g.Timezone,
	}
	if g.Coordinates != nil {
		e.Latitude = g.Coordinates.LatString()
		e.Longitude = g.Coordinates.LngString()
	}
	return e
}

// Record projects the entry into a displayable record. Organization is not
// persisted and therefore stays empty.
func (h HistoryEntry) Record() GeoRecord {
	g := GeoRecord{
		Address:  h.Address,
		City:     h.City,
		Region:   h.Region,
		Country:  h.Country,
		Timezone: h.Timezone,
	}
	if c, ok := ParseLatLng(h.Latitude, h.Longitude); ok {
		g.Coordinates = c
	}
	return g
}

// Place joins the non-empty city, region and country.
func (h HistoryEntry) Place() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{h.City, h.Region, h.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
