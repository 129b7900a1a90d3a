package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/geotracker/internal/client/client"
	"github.com/dmitrijs2005/geotracker/internal/client/models"
	"github.com/dmitrijs2005/geotracker/internal/logging"
)

const (
	MsgEmptyAddress    = "Please enter an IP address"
	MsgInvalidAddress  = "Invalid IP address format. Please enter a valid IPv4 address."
	MsgLookupMiss      = "Unable to find geolocation data for this IP address"
	MsgLookupFailed    = "Failed to fetch geolocation data"
	MsgOwnLookupFailed = "Failed to load your geolocation data"
	MsgDeleteFailed    = "Failed to delete history items"
)

// GeoSession is the state behind the home view: the displayed record, the
// address field, the cached search history and its selection.
//
// Displayed-record updates and history reloads are each numbered when they
// start. A result is dropped only when a newer operation of the same kind has
// already been applied; a newer one that fails does not hide it.
type GeoSession struct {
	client    client.Client
	locator   client.Locator
	log       logging.Logger
	selection *Selection

	mu         sync.RWMutex
	current    *models.GeoRecord
	ownAddress string
	address    string
	err        *Error
	history    []models.HistoryEntry
	inFlight   int

	displaySeq     uint64
	displayApplied uint64
	historySeq     uint64
	historyApplied uint64
}

func NewGeoSession(c client.Client, locator client.Locator, log logging.Logger) *GeoSession {
	return &GeoSession{
		client:    c,
		locator:   locator,
		log:       log.With("component", "geo"),
		selection: NewSelection(),
		history:   []models.HistoryEntry{},
	}
}

// Init loads the caller's own location, then the search history.
func (g *GeoSession) Init(ctx context.Context) error {
	err := g.LoadOwnLocation(ctx)
	_ = g.ReloadHistory(ctx)
	return err
}

// LoadOwnLocation displays the location of the machine running the client.
// On failure the previously displayed record is kept.
func (g *GeoSession) LoadOwnLocation(ctx context.Context) error {
	seq := g.startDisplay()
	defer g.track()()

	rec, err := g.locator.Lookup(ctx, "")

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		if seq != g.displaySeq {
			return nil
		}
		g.log.Warn(ctx, "own location lookup failed", "error", err)
		e := remoteError(err, MsgOwnLookupFailed)
		e.Message = MsgOwnLookupFailed
		g.err = e
		return e
	}
	g.ownAddress = rec.Address
	if !g.applyDisplayLocked(seq, rec) {
		g.log.Debug(ctx, "dropping stale own location result", "seq", seq)
		return nil
	}
	g.err = nil
	return nil
}

// ValidateAddress is the admission filter applied by Search.
func (g *GeoSession) ValidateAddress(input string) bool {
	return ValidateAddress(input)
}

// Search looks input up, displays the result, records it in the history and
// reloads the history. A failure to record the search is logged and does not
// affect the displayed result.
func (g *GeoSession) Search(ctx context.Context, input string) error {
	g.mu.Lock()
	g.address = input
	g.err = nil
	g.mu.Unlock()

	if strings.TrimSpace(input) == "" {
		return g.fail(validationError(MsgEmptyAddress))
	}
	if !ValidateAddress(input) {
		return g.fail(validationError(MsgInvalidAddress))
	}

	seq := g.startDisplay()
	rec, err := g.lookup(ctx, input)
	if err != nil {
		if !g.isCurrentDisplay(seq) {
			return nil
		}
		return g.fail(err)
	}

	g.mu.Lock()
	if !g.applyDisplayLocked(seq, rec) {
		g.log.Debug(ctx, "dropping stale search result", "address", rec.Address, "seq", seq)
	}
	g.mu.Unlock()

	if _, err := g.client.CreateHistory(ctx, models.NewHistoryEntryFromRecord(*rec)); err != nil {
		g.log.Warn(ctx, "failed to save search to history", "address", rec.Address, "error", err)
		return nil
	}

	_ = g.ReloadHistory(ctx)
	return nil
}

func (g *GeoSession) lookup(ctx context.Context, address string) (*models.GeoRecord, *Error) {
	defer g.track()()

	rec, err := g.locator.Lookup(ctx, address)
	if err == nil {
		return rec, nil
	}
	if errors.Is(err, client.ErrLookupMiss) {
		return nil, &Error{Kind: KindLookupMiss, Message: MsgLookupMiss, Err: err}
	}
	g.log.Warn(ctx, "lookup failed", "address", address, "error", err)
	e := remoteError(err, MsgLookupFailed)
	e.Message = MsgLookupFailed
	return nil, e
}

// Clear empties the address field and goes back to the caller's own location.
func (g *GeoSession) Clear(ctx context.Context) error {
	g.mu.Lock()
	g.address = ""
	g.mu.Unlock()
	return g.LoadOwnLocation(ctx)
}

// SelectFromHistory displays a past search without any network call.
func (g *GeoSession) SelectFromHistory(entry models.HistoryEntry) {
	seq := g.startDisplay()
	rec := entry.Record()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.address = entry.Address
	g.applyDisplayLocked(seq, &rec)
}

// DeleteSelected removes the selected entries on the server. The selection
// is cleared and the history reloaded only when the delete succeeds.
func (g *GeoSession) DeleteSelected(ctx context.Context) error {
	ids := g.selection.IDs()
	if len(ids) == 0 {
		return nil
	}

	if err := g.client.DeleteHistory(ctx, ids); err != nil {
		g.log.Warn(ctx, "bulk delete failed", "ids", ids, "error", err)
		e := remoteError(err, MsgDeleteFailed)
		e.Message = MsgDeleteFailed
		return g.fail(e)
	}

	g.selection.Clear()
	_ = g.ReloadHistory(ctx)
	return nil
}

// ReloadHistory replaces the cached history with the server's list. On
// failure the cache is left as it was.
func (g *GeoSession) ReloadHistory(ctx context.Context) error {
	g.mu.Lock()
	g.historySeq++
	seq := g.historySeq
	g.mu.Unlock()

	list, err := g.client.ListHistory(ctx)
	if err != nil {
		g.log.Warn(ctx, "failed to load history", "error", err)
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if seq < g.historyApplied {
		g.log.Debug(ctx, "dropping stale history", "seq", seq)
		return nil
	}
	g.history = list
	g.historyApplied = seq
	return nil
}

func (g *GeoSession) Current() *models.GeoRecord {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.current == nil {
		return nil
	}
	rec := *g.current
	return &rec
}

// OwnAddress is the caller's public address from the last own-location lookup.
func (g *GeoSession) OwnAddress() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ownAddress
}

// Address is the content of the address field.
func (g *GeoSession) Address() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.address
}

// Err is the error currently shown to the user, or nil.
func (g *GeoSession) Err() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.err == nil {
		return nil
	}
	return g.err
}

func (g *GeoSession) History() []models.HistoryEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]models.HistoryEntry, len(g.history))
	copy(out, g.history)
	return out
}

// Entry returns the cached history entry with the given id.
func (g *GeoSession) Entry(id int64) (models.HistoryEntry, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, e := range g.history {
		if e.ID == id {
			return e, true
		}
	}
	return models.HistoryEntry{}, false
}

func (g *GeoSession) Selection() *Selection { return g.selection }

// Loading is true while a location lookup is in flight.
func (g *GeoSession) Loading() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inFlight > 0
}

func (g *GeoSession) startDisplay() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.displaySeq++
	return g.displaySeq
}

// applyDisplayLocked shows rec unless a newer display update has already been
// applied. g.mu must be held.
func (g *GeoSession) applyDisplayLocked(seq uint64, rec *models.GeoRecord) bool {
	if seq < g.displayApplied {
		return false
	}
	g.current = rec
	g.displayApplied = seq
	return true
}

func (g *GeoSession) isCurrentDisplay(seq uint64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return seq == g.displaySeq
}

func (g *GeoSession) track() func() {
	g.mu.Lock()
	g.inFlight++
	g.mu.Unlock()
	return func() {
		g.mu.Lock()
		g.inFlight--
		g.mu.Unlock()
	}
}

func (g *GeoSession) fail(e *Error) error {
	g.mu.Lock()
	g.err = e
	g.mu.Unlock()
	return e
}
