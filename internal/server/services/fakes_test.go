package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/geotracker/internal/common"
	"github.com/dmitrijs2005/geotracker/internal/dbx"
	"github.com/dmitrijs2005/geotracker/internal/server/config"
	"github.com/dmitrijs2005/geotracker/internal/server/models"
	"github.com/dmitrijs2005/geotracker/internal/server/repositories/history"
	"github.com/dmitrijs2005/geotracker/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm *fakeManager) *UserService {
	t.Helper()
	cfg := &config.Config{SecretKey: "k", SessionValidityDuration: time.Hour}
	s := NewUserService(db, rm, cfg)
	s.bcryptCost = bcrypt.MinCost
	return s
}

// fakeManager hands out in-memory repositories regardless of the DBTX.
type fakeManager struct {
	users   *fakeUsersRepo
	history *fakeHistoryRepo
}

func newFakeManager() *fakeManager {
	return &fakeManager{users: newFakeUsersRepo(), history: &fakeHistoryRepo{}}
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeManager) History(dbx.DBTX) history.Repository          { return m.history }

type fakeUsersRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
	err    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[int64]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    []*models.HistoryEntry
	err     error
	deleted [][]int64
}

func (f *fakeHistoryRepo) List(_ context.Context, userID int64) ([]*models.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.HistoryEntry, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeHistoryRepo) Create(_ context.Context, e *models.HistoryEntry) (*models.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	cp := *e
	cp.ID = f.nextID
	cp.SearchedAt = time.Now()
	f.rows = append(f.rows, &cp)
	out := cp
	return &out, nil
}

func (f *fakeHistoryRepo) DeleteByIDs(_ context.Context, userID int64, ids []int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids)
	if f.err != nil {
		return 0, f.err
	}
	drop := map[int64]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	kept := f.rows[:0]
	var n int64
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
