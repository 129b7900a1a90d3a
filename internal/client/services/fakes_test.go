package services

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/geotracker/internal/client/client"
	"github.com/dmitrijs2005/geotracker/internal/client/models"
	"github.com/dmitrijs2005/geotracker/internal/logging"
)

// fakeClient is an in-memory client.Client. History ids are assigned in
// creation order and listed newest first, like the backend does.
type fakeClient struct {
	mu sync.Mutex

	MeRet *models.User
	MeErr error

	LoginRet *client.AuthPayload
	LoginErr error

	SignupRet *client.AuthPayload
	SignupErr error

	LogoutErr error

	ListErr   error
	CreateErr error
	DeleteErr error

	// block, when set, is waited on by Me before it answers.
	block chan struct{}
	// listGate, when set, holds the next ListHistory call until closed. The
	// list is read before waiting.
	listGate chan struct{}

	history []models.HistoryEntry
	nextID  int64

	MeCalls     int
	LoginCalls  int
	SignupCalls int
	LogoutCalls int
	ListCalls   int
	CreateCalls int
	DeleteCalls int
	LastDeleted []int64
	LastCreated *models.NewHistoryEntry
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	f.MeCalls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.MeRet, f.MeErr
}

func (f *fakeClient) Login(ctx context.Context, credentials models.LoginData) (*client.AuthPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(ctx context.Context, profile models.SignupData) (*client.AuthPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignupCalls++
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) ListHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	f.mu.Lock()
	f.ListCalls++
	gate := f.listGate
	f.listGate = nil
	out := make([]models.HistoryEntry, 0, len(f.history))
	for i := len(f.history) - 1; i >= 0; i-- {
		out = append(out, f.history[i])
	}
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return out, nil
}

func (f *fakeClient) CreateHistory(ctx context.Context, entry models.NewHistoryEntry) (*models.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastCreated = &entry
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.nextID++
	e := models.HistoryEntry{
		ID:         f.nextID,
		Address:    entry.Address,
		City:       entry.City,
		Region:     entry.Region,
		Country:    entry.Country,
		Latitude:   entry.Latitude,
		Longitude:  entry.Longitude,
		Timezone:   entry.Timezone,
		SearchedAt: time.Date(2025, 1, 1, 0, 0, int(f.nextID), 0, time.UTC),
	}
	f.history = append(f.history, e)
	return &e, nil
}

func (f *fakeClient) DeleteHistory(ctx context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.LastDeleted = append([]int64(nil), ids...)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := f.history[:0]
	for _, e := range f.history {
		if !drop[e.ID] {
			kept = append(kept, e)
		}
	}
	f.history = kept
	return nil
}

func (f *fakeClient) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ListCalls
}

func (f *fakeClient) setListErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListErr = err
}

func (f *fakeClient) seed(addresses ...string) {
	for _, a := range addresses {
		_, _ = f.CreateHistory(context.Background(), models.NewHistoryEntry{Address: a})
	}
	f.mu.Lock()
	f.CreateCalls = 0
	f.LastCreated = nil
	f.mu.Unlock()
}

// fakeLocator answers from a table keyed by address; "" is the caller.
type fakeLocator struct {
	mu      sync.Mutex
	records map[string]*models.GeoRecord
	errs    map[string]error
	calls   []string
	// gates, when present for an address, hold that lookup until closed.
	gates map[string]chan struct{}
}

var _ client.Locator = (*fakeLocator)(nil)

func newFakeLocator() *fakeLocator {
	return &fakeLocator{
		records: map[string]*models.GeoRecord{},
		errs:    map[string]error{},
		gates:   map[string]chan struct{}{},
	}
}

func (l *fakeLocator) Lookup(ctx context.Context, address string) (*models.GeoRecord, error) {
	l.mu.Lock()
	l.calls = append(l.calls, address)
	gate := l.gates[address]
	l.mu.Unlock()
	if gate != nil {
		<-gate
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.errs[address]; err != nil {
		return nil, err
	}
	if rec, ok := l.records[address]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, client.ErrLookupMiss
}

func (l *fakeLocator) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func bufferLogger(t *testing.T) (logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return logging.NewTextLogger(&buf, slog.LevelDebug), &buf
}
