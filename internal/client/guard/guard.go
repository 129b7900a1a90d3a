// Package guard gates protected views on the session state.
//
// A Guard is created per activation of a protected view. Activate probes the
// session at most once for the lifetime of the Guard; Render may be called
// any number of times and never triggers another probe.
package guard

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/geotracker/internal/client/models"
	"github.com/dmitrijs2005/geotracker/internal/common"
)

type State int

const (
	Unchecked State = iota
	Checking
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Session is the part of the session store the guard reads.
type Session interface {
	CheckSession(ctx context.Context)
	User() *models.User
	Loading() bool
}

// Navigator performs the redirect for an unauthenticated view.
type Navigator interface {
	Replace(route string)
}

// View is what a protected screen should show right now.
type View int

const (
	ViewPlaceholder View = iota
	ViewContent
	ViewRedirect
)

type Guard struct {
	session Session
	nav     Navigator

	mu     sync.Mutex
	state  State
	probes int
}

func New(session Session, nav Navigator) *Guard {
	return &Guard{session: session, nav: nav}
}

// Activate resolves the session for this activation and returns the final
// state. Only the first call can probe; later and concurrent calls wait for
// nothing and report the current state.
func (g *Guard) Activate(ctx context.Context) State {
	g.mu.Lock()
	if g.state != Unchecked {
		s := g.state
		g.mu.Unlock()
		return s
	}
	if g.session.User() != nil {
		g.state = Authenticated
		g.mu.Unlock()
		return Authenticated
	}
	g.state = Checking
	g.probes++
	g.mu.Unlock()

	g.session.CheckSession(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session.User() != nil {
		g.state = Authenticated
	} else {
		g.state = Unauthenticated
	}
	return g.state
}

// Render decides what to show. Until the probe has resolved, and while any
// session call is in flight, it is a placeholder. Afterwards a missing user
// redirects to the login route, replacing the current history entry.
func (g *Guard) Render() View {
	g.mu.Lock()
	state := g.state
	g.mu.Unlock()

	if state == Unchecked || state == Checking || g.session.Loading() {
		return ViewPlaceholder
	}
	if g.session.User() == nil {
		g.nav.Replace(common.RouteLogin)
		return ViewRedirect
	}
	return ViewContent
}

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Probes is the number of session checks this guard has issued.
func (g *Guard) Probes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.probes
}
