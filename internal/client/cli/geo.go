package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/geotracker/internal/client/services"
)

func (a *App) Search(ctx context.Context, address string) error {
	g := a.home()
	if g == nil {
		return nil
	}
	if err := g.Search(ctx, address); err != nil {
		a.printf("%s\n", services.MessageOf(err))
		return nil
	}
	a.showRecord(g.Current())
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	g := a.home()
	if g == nil {
		return nil
	}
	if err := g.Clear(ctx); err != nil {
		a.printf("%s\n", services.MessageOf(err))
		return nil
	}
	a.showRecord(g.Current())
	return nil
}

func (a *App) Show(ctx context.Context) error {
	if a.home() == nil {
		return nil
	}
	a.showHome()
	return nil
}

func (a *App) History(ctx context.Context) error {
	if a.home() == nil {
		return nil
	}
	a.showHistory()
	return nil
}

func (a *App) Reload(ctx context.Context) error {
	g := a.home()
	if g == nil {
		return nil
	}
	if err := g.ReloadHistory(ctx); err != nil {
		a.printf("Could not load history\n")
		return nil
	}
	a.showHistory()
	return nil
}

// Select toggles each id in the history selection.
func (a *App) Select(ctx context.Context, ids []string) error {
	g := a.home()
	if g == nil {
		return nil
	}
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.printf("Not an id: %s\n", raw)
			continue
		}
		if _, ok := g.Entry(id); !ok {
			a.printf("No history entry %d\n", id)
			continue
		}
		if g.Selection().Toggle(id) {
			a.printf("Selected %d\n", id)
		} else {
			a.printf("Unselected %d\n", id)
		}
	}
	return nil
}

func (a *App) DeleteSelected(ctx context.Context) error {
	g := a.home()
	if g == nil {
		return nil
	}
	n := g.Selection().Size()
	if n == 0 {
		a.printf("Nothing selected\n")
		return nil
	}
	if err := g.DeleteSelected(ctx); err != nil {
		a.printf("%s\n", services.MessageOf(err))
		return nil
	}
	a.printf("Deleted %d item(s)\n", n)
	a.showHistory()
	return nil
}

// Use shows a past search again without looking it up.
func (a *App) Use(ctx context.Context, raw string) error {
	g := a.home()
	if g == nil {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.printf("Not an id: %s\n", raw)
		return nil
	}
	entry, ok := g.Entry(id)
	if !ok {
		a.printf("No history entry %d\n", id)
		return nil
	}
	g.SelectFromHistory(entry)
	a.showRecord(g.Current())
	return nil
}
