package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/immodash/immodash/modules/portfolio/domain/property"
	"github.com/immodash/immodash/pkg/eventbus"
	"github.com/immodash/immodash/pkg/identity"
)

// SelectionSnapshot is the observable state of a SelectionController.
// Subscribers receive one after every mutation.
type SelectionSnapshot struct {
	Properties    []*property.Property
	Loading       bool
	Error         string
	RawSelection  string
	SafeSelection string
	Selected      *property.Property
}

// SelectionController tracks which portfolio entry is selected, keeps
// that selection mirrored into the address parameter and reconciles it
// against the property list after every load.
//
// Loads are guarded by a monotonic request sequence: when several loads
// overlap, only the most recently issued one may mutate state, so a slow
// early response can never clobber a faster later one. Superseded
// responses are dropped silently; they are not errors.
//
// All shared state sits behind one mutex; Load, Select and the
// subscribers' snapshots are safe to use from concurrent goroutines.
// A second lock orders snapshot delivery, so subscribers always see
// mutations in the order they took effect.
type SelectionController struct {
	repo   property.Repository
	mirror AddressMirror
	bus    eventbus.EventBus
	log    *logrus.Logger

	mu              sync.Mutex
	notifyMu        sync.Mutex
	properties      []*property.Property
	loading         bool
	loadErr         string
	rawSelection    string
	safeSelection   string
	requestSequence uint64
}

func NewSelectionController(
	repo property.Repository,
	mirror AddressMirror,
	log *logrus.Logger,
) *SelectionController {
	if mirror == nil {
		mirror = NoopMirror{}
	}
	c := &SelectionController{
		repo:   repo,
		mirror: mirror,
		bus:    eventbus.NewEventPublisher(log),
		log:    log,
	}
	// Initial selection candidate comes from the address parameter.
	c.rawSelection = mirror.Read(identity.Parameter)
	c.safeSelection = identity.Normalize(c.rawSelection)
	return c
}

// Subscribe registers a handler that receives a snapshot after every
// mutation.
func (c *SelectionController) Subscribe(handler func(SelectionSnapshot)) {
	c.bus.Subscribe(handler)
}

func (c *SelectionController) Unsubscribe(handler func(SelectionSnapshot)) {
	c.bus.Unsubscribe(handler)
}

// Teardown drops all subscribers. In-flight loads finish on their own
// and are discarded if superseded; there is nothing to cancel.
func (c *SelectionController) Teardown() {
	c.bus.Clear()
}

// State returns the current snapshot.
func (c *SelectionController) State() SelectionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Load fetches the property list and reconciles the selection against
// it. Concurrent calls follow last-request-wins semantics.
func (c *SelectionController) Load(ctx context.Context) {
	c.mu.Lock()
	c.requestSequence++
	token := c.requestSequence
	c.loading = true
	c.loadErr = ""
	snap := c.snapshotLocked()
	c.publishAndUnlock(snap)

	properties, err := c.repo.GetAll(ctx)

	c.mu.Lock()
	if token != c.requestSequence {
		// A newer load owns the state now, including the loading flag.
		c.mu.Unlock()
		if c.log != nil {
			c.log.Debugf("selection: discarding stale load %d (current %d)", token, c.requestSequence)
		}
		return
	}
	if err != nil {
		c.loadErr = err.Error()
		c.properties = nil
		c.loading = false
		snap = c.snapshotLocked()
		c.publishAndUnlock(snap)
		return
	}
	c.properties = properties
	c.loading = false
	c.loadErr = ""
	c.reconcileLocked()
	snap = c.snapshotLocked()
	c.publishAndUnlock(snap)
}

// Select records a user-driven selection. Only the normalized value is
// kept; the list is assumed already loaded or loading, so no reload is
// issued.
func (c *SelectionController) Select(value any) {
	normalized := identity.Normalize(value)

	c.mu.Lock()
	c.rawSelection = normalized
	c.safeSelection = normalized
	c.mirror.Write(identity.Parameter, normalized)
	snap := c.snapshotLocked()
	c.publishAndUnlock(snap)
}

// reconcileLocked derives the authoritative selection after a successful
// load. It is the only place a selection is defaulted or cleared.
func (c *SelectionController) reconcileLocked() {
	if len(c.properties) == 0 {
		// Leave the candidate untouched while a reload might still be
		// in flight; clearing here would flash clear-then-restore.
		return
	}
	if c.safeSelection == "" {
		first := c.properties[0]
		c.rawSelection = first.ID().String()
		c.safeSelection = c.rawSelection
		c.mirror.Write(identity.Parameter, c.safeSelection)
		return
	}
	if c.findLocked(c.safeSelection) == nil {
		// The selected entry vanished from the list.
		c.rawSelection = ""
		c.safeSelection = ""
		c.mirror.Write(identity.Parameter, "")
	}
}

func (c *SelectionController) findLocked(id string) *property.Property {
	for _, p := range c.properties {
		if p.ID().String() == id {
			return p
		}
	}
	return nil
}

// publishAndUnlock hands the caller's state lock over to the notify
// lock before publishing, so subscribers see snapshots in mutation
// order even when mutators race. Handlers must not call mutating
// methods synchronously.
func (c *SelectionController) publishAndUnlock(snap SelectionSnapshot) {
	c.notifyMu.Lock()
	c.mu.Unlock()
	c.bus.Publish(snap)
	c.notifyMu.Unlock()
}

func (c *SelectionController) snapshotLocked() SelectionSnapshot {
	properties := make([]*property.Property, len(c.properties))
	copy(properties, c.properties)
	return SelectionSnapshot{
		Properties:    properties,
		Loading:       c.loading,
		Error:         c.loadErr,
		RawSelection:  c.rawSelection,
		SafeSelection: c.safeSelection,
		Selected:      c.findLocked(c.safeSelection),
	}
}
