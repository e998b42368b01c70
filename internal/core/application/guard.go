package application

import (
	"sync"
	"time"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

type actionEntry struct {
	kind       domain.ActionKind
	state      domain.ActionState
	dirtySince time.Time
}

// ActionGuard tracks the in-flight action per order id. It replaces the
// page-indexed busy-flag arrays of the web client with a mapping keyed by
// order identity, so the guard survives pagination and reordering. It is
// client-side de-duplication only, not a transactional guarantee: the
// backend still decides whether a transition is legal.
type ActionGuard struct {
	mtx     sync.Mutex
	actions map[string]*actionEntry
}

func NewActionGuard() *ActionGuard {
	return &ActionGuard{actions: make(map[string]*actionEntry)}
}

// Begin marks an action as pending for the order. It fails with
// ErrActionInFlight when the order already has a pending action of any
// kind; a previous error state does not block a retry.
func (g *ActionGuard) Begin(orderID string, kind domain.ActionKind) error {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	if entry, ok := g.actions[orderID]; ok && entry.state == domain.ActionStatePending {
		return ErrActionInFlight
	}
	g.actions[orderID] = &actionEntry{
		kind:       kind,
		state:      domain.ActionStatePending,
		dirtySince: time.Now(),
	}
	return nil
}

// End releases the guard for the order. A failed action leaves an error
// marker behind but never keeps the order busy; the guard is released on
// every exit path.
func (g *ActionGuard) End(orderID string, failed bool) {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	entry, ok := g.actions[orderID]
	if !ok {
		return
	}
	if failed {
		entry.state = domain.ActionStateError
		entry.dirtySince = time.Time{}
		return
	}
	entry.state = domain.ActionStateIdle
}

// State returns the current action state for the order.
func (g *ActionGuard) State(orderID string) domain.ActionState {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	entry, ok := g.actions[orderID]
	if !ok {
		return domain.ActionStateIdle
	}
	return entry.state
}

// IsDirty reports whether a feed snapshot fetched at fetchedAt must not
// overwrite the order's local row: either an action is still pending, or
// one began after the fetch started and the snapshot predates it.
func (g *ActionGuard) IsDirty(orderID string, fetchedAt time.Time) bool {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	entry, ok := g.actions[orderID]
	if !ok {
		return false
	}
	if entry.state == domain.ActionStatePending {
		return true
	}
	return !entry.dirtySince.IsZero() && fetchedAt.Before(entry.dirtySince)
}

// ClearSettled drops every non-pending entry. Called after a forced refresh
// pulled authoritative state for the whole page.
func (g *ActionGuard) ClearSettled() {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	for orderID, entry := range g.actions {
		if entry.state != domain.ActionStatePending {
			delete(g.actions, orderID)
		}
	}
}

// PendingCount returns the number of orders with an action in flight.
func (g *ActionGuard) PendingCount() int {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	count := 0
	for _, entry := range g.actions {
		if entry.state == domain.ActionStatePending {
			count++
		}
	}
	return count
}
