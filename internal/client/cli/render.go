package cli

import (
	"github.com/dmitrijs2005/geotracker/internal/client/models"
	"github.com/dmitrijs2005/geotracker/internal/client/services"
)

const timeLayout = "2006-01-02 15:04:05"

func (a *App) showHome() {
	g := a.geo
	if g == nil {
		return
	}
	if own := g.OwnAddress(); own != "" {
		a.printf("Your IP:      %s\n", own)
	}
	if err := g.Err(); err != nil {
		a.printf("! %s\n", services.MessageOf(err))
	}
	a.showRecord(g.Current())
	a.showHistory()
}

func (a *App) showRecord(rec *models.GeoRecord) {
	if rec == nil {
		a.printf("No location to show\n")
		return
	}
	a.printf("IP address:   %s\n", rec.Address)
	field := func(label, v string) {
		if v != "" {
			a.printf("%-13s %s\n", label+":", v)
		}
	}
	field("City", rec.City)
	field("Region", rec.Region)
	field("Country", rec.Country)
	if rec.Coordinates != nil {
		field("Location", rec.Coordinates.String())
	}
	field("Organization", rec.Organization)
	field("Timezone", rec.Timezone)
	field("Map", rec.MapURL())
}

func (a *App) showHistory() {
	g := a.geo
	if g == nil {
		return
	}
	entries := g.History()
	if len(entries) == 0 {
		a.printf("No search history yet\n")
		return
	}
	a.printf("Search history (%d, %d selected):\n", len(entries), len(g.Selection().Present(entries)))
	for _, e := range entries {
		mark := " "
		if g.Selection().Has(e.ID) {
			mark = "x"
		}
		a.printf("[%s] %4d  %-15s  %-30s  %s\n", mark, e.ID, e.Address, e.Place(), e.SearchedAt.Local().Format(timeLayout))
	}
}
