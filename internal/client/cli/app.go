package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/geotracker/internal/client/client"
	"github.com/dmitrijs2005/geotracker/internal/client/config"
	"github.com/dmitrijs2005/geotracker/internal/client/guard"
	"github.com/dmitrijs2005/geotracker/internal/client/nav"
	"github.com/dmitrijs2005/geotracker/internal/client/services"
	"github.com/dmitrijs2005/geotracker/internal/common"
	"github.com/dmitrijs2005/geotracker/internal/logging"
)

// cookieStore forgets the persisted backend session.
type cookieStore interface {
	Clear(ctx context.Context) error
}

type App struct {
	config  *config.Config
	log     logging.Logger
	api     client.Client
	locator client.Locator
	session services.SessionStore
	history *nav.History
	store   *client.LocalStore
	cookies cookieStore

	// set while the home view is active
	guard *guard.Guard
	geo   *services.GeoSession

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local store and builds the transport and services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := client.OpenLocalStore(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	jar, err := client.NewPersistentJar(ctx, store.Metadata, c.ServerBaseURL, log)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load session cookies: %w", err)
	}

	api, err := client.NewHTTPClient(c.ServerBaseURL,
		client.WithCookieJar(jar),
		client.WithTimeout(c.RequestTimeout),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	locator := client.NewIPInfoLocator(
		client.WithLookupBaseURL(c.LookupBaseURL),
		client.WithLookupToken(c.LookupToken),
		client.WithLookupTimeout(c.RequestTimeout),
	)

	a := newApp(api, locator, log, os.Stdin, os.Stdout)
	a.config = c
	a.store = store
	a.cookies = jar
	return a, nil
}

func newApp(api client.Client, locator client.Locator, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		log:     log,
		api:     api,
		locator: locator,
		session: services.NewSessionStore(api, log),
		history: nav.NewHistory(common.RouteLogin),
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run opens the root route and serves commands until the user exits.
func (a *App) Run(ctx context.Context) {
	if a.store != nil {
		defer a.store.Close()
	}

	a.printf("Welcome to geotracker (type 'help' for commands)\n")
	a.navigate(ctx, common.RouteRoot)

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) isLoggedIn() bool {
	return a.session.User() != nil
}

func (a *App) status() string {
	s := a.history.Current()
	if u := a.session.User(); u != nil {
		s = u.Username + " " + s
	}
	return "(" + s + ")"
}

// navigate opens path. The root path replaces the current entry; any other
// path is pushed.
func (a *App) navigate(ctx context.Context, path string) {
	route, ok := nav.Resolve(path)
	if !ok {
		a.printf("No such page: %s\n", path)
		return
	}
	if path == common.RouteRoot {
		a.history.Replace(route)
	} else {
		a.history.Push(route)
	}
	a.enter(ctx)
}

// enter activates whatever route is now current.
func (a *App) enter(ctx context.Context) {
	route := a.history.Current()
	if !nav.IsProtected(route) {
		a.guard = nil
		a.geo = nil
		switch route {
		case common.RouteLogin:
			a.printf("Log in with 'login', or create an account with 'signup'.\n")
		case common.RouteSignup:
			a.printf("Create an account with 'signup', or go back to 'login'.\n")
		}
		return
	}

	a.guard = guard.New(a.session, a.history)
	a.guard.Activate(ctx)
	a.render(ctx)
}

func (a *App) render(ctx context.Context) {
	if a.guard == nil {
		return
	}
	switch a.guard.Render() {
	case guard.ViewPlaceholder:
		a.printf("Loading...\n")
	case guard.ViewRedirect:
		a.geo = nil
		a.printf("Please log in first.\n")
		a.enter(ctx)
	case guard.ViewContent:
		if a.geo == nil {
			a.geo = services.NewGeoSession(a.api, a.locator, a.log)
			_ = a.geo.Init(ctx)
		}
		a.showHome()
	}
}

// home returns the geo session, or nil with a message when the home view is
// not active.
func (a *App) home() *services.GeoSession {
	if a.geo == nil {
		a.printf("Open the home page first (go /home).\n")
	}
	return a.geo
}

func (a *App) Go(ctx context.Context, path string) error {
	a.navigate(ctx, path)
	return nil
}

func (a *App) Back(ctx context.Context) error {
	if _, ok := a.history.Back(); !ok {
		a.printf("Nothing to go back to.\n")
		return nil
	}
	a.enter(ctx)
	return nil
}
