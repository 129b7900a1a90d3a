package httpserver

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/geotracker/internal/common"
	"github.com/dmitrijs2005/geotracker/internal/server/models"
	"github.com/dmitrijs2005/geotracker/internal/server/services"
)

// fakeUsers issues "tok-<id>" tokens and keeps accounts in memory.
type fakeUsers struct {
	mu       sync.Mutex
	byEmail  map[string]*models.User
	password map[int64]string
	nextID   int64
	authErr  error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*models.User{}, password: map[int64]string{}}
}

func (f *fakeUsers) Signup(_ context.Context, in services.SignupInput) (*services.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Password != in.ConfirmPassword {
		return nil, &services.ValidationError{Message: services.MsgPasswordsMismatch}
	}
	if _, ok := f.byEmail[in.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	f.nextID++
	u := &models.User{ID: f.nextID, Username: in.Username, Email: in.Email, Role: "user", CreatedAt: time.Now()}
	f.byEmail[in.Email] = u
	f.password[u.ID] = in.Password
	return &services.Session{User: u, Token: "tok-" + strconv.FormatInt(u.ID, 10)}, nil
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*services.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok || f.password[u.ID] != password {
		return nil, common.ErrUnauthorized
	}
	return &services.Session{User: u, Token: "tok-" + strconv.FormatInt(u.ID, 10)}, nil
}

func (f *fakeUsers) Authenticate(_ context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authErr != nil {
		return nil, f.authErr
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(token, "tok-"), 10, 64)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrUnauthorized
}

func (f *fakeUsers) SessionValidity() time.Duration { return time.Hour }

type fakeHistory struct {
	mu      sync.Mutex
	nextID  int64
	rows    []*models.HistoryEntry
	listErr error
}

func (f *fakeHistory) List(_ context.Context, userID int64) ([]*models.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.HistoryEntry
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeHistory) Create(_ context.Context, userID int64, e *models.HistoryEntry) (*models.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(e.Address) == "" {
		return nil, &services.ValidationError{Message: services.MsgMissingAddress}
	}
	f.nextID++
	e.ID = f.nextID
	e.UserID = userID
	e.SearchedAt = time.Date(2024, 1, 1, 0, 0, int(f.nextID), 0, time.UTC)
	f.rows = append(f.rows, e)
	return e, nil
}

func (f *fakeHistory) DeleteMany(_ context.Context, userID int64, ids []int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(ids) == 0 {
		return 0, &services.ValidationError{Message: services.MsgMissingIDs}
	}
	drop := map[int64]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	var n int64
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.UserID == userID && drop[r.ID] {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return n, nil
}

var errBoom = errors.New("boom")
