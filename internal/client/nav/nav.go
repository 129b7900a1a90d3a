// Package nav is the CLI's navigation surface: the known routes and a
// history stack with browser-like push, replace and back.
package nav

import (
	"sync"

	"github.com/dmitrijs2005/geotracker/internal/common"
)

// Resolve maps a requested path to the route that should be shown. The root
// path redirects to home. Unknown paths are reported with ok=false.
func Resolve(path string) (route string, ok bool) {
	switch path {
	case common.RouteRoot:
		return common.RouteHome, true
	case common.RouteLogin, common.RouteSignup, common.RouteHome:
		return path, true
	}
	return "", false
}

// IsProtected reports whether route requires an authenticated session.
func IsProtected(route string) bool {
	return route == common.RouteHome
}

// History is a stack of visited routes. The top is the current route.
type History struct {
	mu    sync.Mutex
	stack []string
}

func NewHistory(start string) *History {
	return &History{stack: []string{start}}
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stack[len(h.stack)-1]
}

func (h *History) Push(route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = append(h.stack, route)
}

// Replace swaps the current route, so Back cannot return to it.
func (h *History) Replace(route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack[len(h.stack)-1] = route
}

// Back pops the current route. It reports false when there is nowhere to go.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) < 2 {
		return h.stack[0], false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.stack[len(h.stack)-1], true
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}
