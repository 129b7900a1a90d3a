package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/geotracker/internal/server/models"
)

type userDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type signupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confimpassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// historyDTO sends coordinates as decimal strings, empty when unknown.
type historyDTO struct {
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

func toHistoryDTO(e *models.HistoryEntry) historyDTO {
	return historyDTO{
		ID:         e.ID,
		Address:    e.Address,
		City:       e.City,
		Region:     e.Region,
		Country:    e.Country,
		Latitude:   formatCoord(e.Latitude),
		Longitude:  formatCoord(e.Longitude),
		Timezone:   e.Timezone,
		SearchedAt: e.SearchedAt,
	}
}

func formatCoord(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

type createHistoryRequest struct {
	Address   string     `json:"ip_address"`
	City      string     `json:"city"`
	Region    string     `json:"region"`
	Country   string     `json:"country"`
	Latitude  coordinate `json:"latitude"`
	Longitude coordinate `json:"longitude"`
	Timezone  string     `json:"timezone"`
}

func (r createHistoryRequest) entry() *models.HistoryEntry {
	return &models.HistoryEntry{
		Address:   r.Address,
		City:      r.City,
		Region:    r.Region,
		Country:   r.Country,
		Latitude:  r.Latitude.Value,
		Longitude: r.Longitude.Value,
		Timezone:  r.Timezone,
	}
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// coordinate accepts a JSON number, a decimal string, an empty string or
// null. The last two leave Value nil.
type coordinate struct {
	Value *float64
}

func (c *coordinate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		c.Value = nil
		return nil
	}

	raw := string(b)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			c.Value = nil
			return nil
		}
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q", raw)
	}
	c.Value = &f
	return nil
}
