package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// ParseLoc parses the "lat,lng" form used by the lookup service.
func ParseLoc(loc string) (*Coordinates, bool) {
	latStr, lngStr, ok := strings.Cut(loc, ",")
	if !ok {
		return nil, false
	}
	return ParseLatLng(latStr, lngStr)
}

// ParseLatLng parses separately stored latitude and longitude strings.
// Both must be present and numeric.
func ParseLatLng(lat, lng string) (*Coordinates, bool) {
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" || lng == "" {
		return nil, false
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, false
	}
	lo, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, false
	}
	return &Coordinates{Lat: la, Lng: lo}, true
}

func (c Coordinates) LatString() string { return strconv.FormatFloat(c.Lat, 'f', -1, 64) }
func (c Coordinates) LngString() string { return strconv.FormatFloat(c.Lng, 'f', -1, 64) }

// String renders the coordinates back in "lat,lng" form.
func (c Coordinates) String() string {
	return c.LatString() + "," + c.LngString()
}

// GeoRecord is the currently displayed location observation. It is never
// persisted directly; see HistoryEntry.
type GeoRecord struct {
	Address      string
	City         string
	Region       string
	Country      string
	Coordinates  *Coordinates
	Organization string
	Timezone     string
}

// MapURL returns an OpenStreetMap embed URL centred on the record, or an
// empty string when the record has no coordinates.
func (g *GeoRecord) MapURL() string {
	if g == nil || g.Coordinates == nil {
		return ""
	}
	c := g.Coordinates
	return fmt.Sprintf(
		"https://www.openstreetmap.org/export/embed.html?bbox=%s,%s,%s,%s&layer=mapnik&marker=%s,%s",
		formatDeg(c.Lng-0.1), formatDeg(c.Lat-0.1), formatDeg(c.Lng+0.1), formatDeg(c.Lat+0.1),
		c.LatString(), c.LngString(),
	)
}

func formatDeg(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
