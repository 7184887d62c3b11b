// Package nav resolves navigation targets through a possibly-absent
// router. Every GoTo produces a navigation attempt: a working router
// handle first, the location fragment as the deterministic fallback.
package nav

import (
	"log"
	"sync"
)

// Logical page identifiers.
const (
	PageDashboard    = "dashboard"
	PageAccounts     = "accounts"
	PageCard         = "card"
	PageNewAccount   = "newaccount"
	PageFundTransfer = "fundtransfer"
	PageTransactions = "transactions"
	PageProfile      = "profile"
	PageLogin        = "login"
	PageRegister     = "register"
)

// Navigable is the narrow capability a router has to offer. Anything
// else about the router is none of this package's business.
type Navigable interface {
	Navigate(target string) error
}

// Location receives the fallback when no router handle works.
type Location interface {
	SetFragment(target string)
}

// Fragment is the default Location: it records the would-be address
// fragment ("#/dashboard") so the shell can apply it.
type Fragment struct {
	mu      sync.Mutex
	current string
}

func (f *Fragment) SetFragment(target string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = "#/" + target
}

// Current returns the last fragment written, "" when none.
func (f *Fragment) Current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Navigator prefers an explicitly injected router handle, falls back to
// a late-bound resolver (the globally registered app controller), and
// degrades to a location change when neither yields a working handle.
type Navigator struct {
	mu       sync.Mutex
	router   Navigable
	resolve  func() Navigable
	location Location
}

// New builds a Navigator. router may be nil, resolve may be nil; a nil
// location gets a fresh Fragment so the fallback always has somewhere
// to land.
func New(router Navigable, resolve func() Navigable, location Location) *Navigator {
	if location == nil {
		location = &Fragment{}
	}
	return &Navigator{router: router, resolve: resolve, location: location}
}

// Router returns the usable handle, or nil when none is available.
// The resolver is consulted only when no explicit handle was injected,
// and its answer is kept. Never panics.
func (n *Navigator) Router() Navigable {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.router != nil {
		return n.router
	}
	if n.resolve != nil {
		n.router = n.resolve()
	}
	return n.router
}

// GoTo navigates to target. A non-nil router is tried inside a recover
// guard; on a nil router, an error, or a panic the location fragment is
// set instead. There is no path that attempts nothing.
func (n *Navigator) GoTo(target string) {
	if r := n.Router(); r != nil {
		if navigateGuarded(r, target) {
			return
		}
		log.Printf("nav: router failed for %q, falling back to fragment", target)
	}
	n.location.SetFragment(target)
}

func navigateGuarded(r Navigable, target string) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
		}
	}()
	return r.Navigate(target) == nil
}
