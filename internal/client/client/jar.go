package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/geotracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/geotracker/internal/logging"
)

// SessionCookiesKey is the metadata key holding the backend cookies.
const SessionCookiesKey = "session_cookies"

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PersistentJar is an http.CookieJar that mirrors the backend's cookies into
// the local metadata store, so a session survives CLI restarts. Cookies for
// other hosts are kept in memory only.
type PersistentJar struct {
	mu    sync.Mutex
	jar   *cookiejar.Jar
	store metadata.Repository
	base  *url.URL
	log   logging.Logger
}

// NewPersistentJar builds a jar for baseURL and seeds it from store.
func NewPersistentJar(ctx context.Context, store metadata.Repository, baseURL string, log logging.Logger) (*PersistentJar, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	p := &PersistentJar{jar: jar, store: store, base: base, log: log}

	raw, err := store.Get(ctx, SessionCookiesKey)
	switch {
	case errors.Is(err, metadata.ErrNoValue):
		return p, nil
	case err != nil:
		return nil, err
	}

	var saved []storedCookie
	if err := json.Unmarshal(raw, &saved); err != nil {
		log.Warn(ctx, "discarding unreadable session cookies", "error", err)
		return p, nil
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	jar.SetCookies(base, cookies)
	return p, nil
}

func (p *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jar.Cookies(u)
}

func (p *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.jar.SetCookies(u, cookies)
	if u.Host != p.base.Host {
		return
	}
	if err := p.save(context.Background()); err != nil {
		p.log.Warn(context.Background(), "failed to persist session cookies", "error", err)
	}
}

// Clear forgets every backend cookie, in memory and on disk.
func (p *PersistentJar) Clear(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	p.jar = jar
	return p.store.Delete(ctx, SessionCookiesKey)
}

func (p *PersistentJar) save(ctx context.Context) error {
	current := p.jar.Cookies(p.base)
	if len(current) == 0 {
		return p.store.Delete(ctx, SessionCookiesKey)
	}
	saved := make([]storedCookie, 0, len(current))
	for _, c := range current {
		saved = append(saved, storedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, SessionCookiesKey, raw)
}
