// Package board wires the item registry, slot grid, drag controller and
// assignment store into one planning session.
package board

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/skema/internal/assign"
	"github.com/javiermolinar/skema/internal/drag"
	"github.com/javiermolinar/skema/internal/event"
	"github.com/javiermolinar/skema/internal/logx"
	"github.com/javiermolinar/skema/internal/slot"
)

// ErrUnknownItem is returned when a drag starts from an id the registry never issued.
var ErrUnknownItem = errors.New("unknown item")

// Config selects the grid and the assignment policy.
type Config struct {
	Grid   slot.Config
	Policy assign.Policy
}

// DefaultConfig is the Monday..Friday 8..16 grid with stacked occupants.
func DefaultConfig() Config {
	return Config{Grid: slot.DefaultConfig(), Policy: assign.Multi}
}

// EventKind identifies a board change.
type EventKind int

const (
	ItemAdded EventKind = iota
	SlotAssigned
)

func (k EventKind) String() string {
	if k == SlotAssigned {
		return "slot_assigned"
	}
	return "item_added"
}

// Event is delivered to subscribers after every state change.
type Event struct {
	Kind EventKind
	Item event.Item
	Key  slot.Key // set for SlotAssigned
}

// DragView is the read-only state of the current gesture.
type DragView struct {
	State  drag.State
	Item   event.Item // valid unless State is Idle
	Target slot.Key   // valid when State is Over
}

// Active reports whether a gesture is in progress.
func (d DragView) Active() bool { return d.State != drag.Idle }

// IsDraggingItem reports whether the item with id is the one being dragged.
func (d DragView) IsDraggingItem(id int) bool { return d.Active() && d.Item.ID == id }

// IsOver reports whether k is highlighted as the drop target.
func (d DragView) IsOver(k slot.Key) bool { return d.State == drag.Over && d.Target == k }

// Snapshot is everything the presentation layer needs for one render.
type Snapshot struct {
	Items       []event.Item
	Assignments assign.Snapshot
	Drag        DragView
}

// OccupantsOf returns the items in k.
func (s Snapshot) OccupantsOf(k slot.Key) []event.Item {
	return s.Assignments.OccupantsOf(k)
}

// Version increases on every item creation and assignment.
func (s Snapshot) Version() uint64 {
	return uint64(len(s.Items)) + s.Assignments.Version
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the board logger.
func WithLogger(log logx.Logger) Option {
	return func(b *Board) {
		b.log = log
	}
}

// Board is one planning session. It is not safe for concurrent use; all
// calls are expected from a single event loop.
type Board struct {
	grid     *slot.Grid
	registry *event.Registry
	store    *assign.Store
	drag     *drag.Controller
	log      logx.Logger

	subs   map[int]func(Event)
	nextID int
}

// New builds a board for cfg.
func New(cfg Config, opts ...Option) (*Board, error) {
	grid, err := slot.NewGrid(cfg.Grid)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}

	b := &Board{
		grid:     grid,
		registry: event.NewRegistry(),
		subs:     make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.store = assign.New(grid, cfg.Policy, b.registry)
	b.store.Subscribe(func(c assign.Change) {
		b.log.Debug("slot assigned",
			logx.Int("item", c.Item.ID),
			logx.String("slot", c.Key.String()),
			logx.Int("occupants", len(c.Occupants)),
			logx.Uint64("version", c.Version))
		b.publish(Event{Kind: SlotAssigned, Item: c.Item, Key: c.Key})
	})
	b.drag = drag.New(b.onDrop,
		drag.WithTarget(grid.Contains),
		drag.WithObserver(func(tr drag.Transition) {
			fields := []logx.Field{
				logx.String("from", tr.From.String()),
				logx.String("to", tr.To.String()),
				logx.String("outcome", tr.Outcome.String()),
				logx.Uint64("transitions", b.drag.Transitions()),
			}
			if tr.To == drag.Over || tr.Outcome == drag.OutcomeDropped {
				fields = append(fields, logx.String("slot", tr.Key.String()))
			}
			b.log.Debug("drag transition", fields...)
		}),
	)

	b.log.Info("board ready",
		logx.String("shape", string(grid.Shape())),
		logx.Int("slots", grid.Len()),
		logx.String("policy", string(b.store.Policy())))
	return b, nil
}

func (b *Board) onDrop(d drag.Drop) error {
	if err := b.store.Assign(d.Item, d.Key); err != nil {
		b.log.Error("drop rejected", logx.Err(err), logx.Int("item", d.Item.ID), logx.String("slot", d.Key.String()))
		return err
	}
	return nil
}

// Grid returns the slot grid.
func (b *Board) Grid() *slot.Grid { return b.grid }

// Policy returns the assignment policy in use.
func (b *Board) Policy() assign.Policy { return b.store.Policy() }

// AddItem creates a new item and notifies subscribers.
func (b *Board) AddItem() event.Item {
	item := b.registry.Create()
	b.log.Debug("item added", logx.Int("item", item.ID), logx.String("label", item.Label))
	b.publish(Event{Kind: ItemAdded, Item: item})
	return item
}

// Items returns the staging list in creation order.
func (b *Board) Items() []event.Item { return b.registry.Items() }

// Keys returns every slot key.
func (b *Board) Keys() []slot.Key { return b.grid.Keys() }

// OccupantsOf returns the items in k.
func (b *Board) OccupantsOf(k slot.Key) ([]event.Item, error) {
	return b.store.OccupantsOf(k)
}

// BeginDrag picks up the item with id. The item stays in the staging list.
func (b *Board) BeginDrag(id int) error {
	item, ok := b.registry.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: #%d", ErrUnknownItem, id)
	}
	return b.drag.Begin(drag.ItemPayload(item))
}

// Hover moves the drop target to k; keys outside the grid clear it.
func (b *Board) Hover(k slot.Key) { b.drag.Enter(k) }

// LeaveSlot clears the drop target.
func (b *Board) LeaveSlot() { b.drag.Leave() }

// Release ends the gesture, dropping onto the hovered slot if there is one.
func (b *Board) Release() (drag.Outcome, error) { return b.drag.Release() }

// CancelDrag aborts the gesture.
func (b *Board) CancelDrag() drag.Outcome { return b.drag.Cancel() }

// Drop runs a whole gesture: pick up id, hover k, release.
func (b *Board) Drop(id int, k slot.Key) error {
	if !b.grid.Contains(k) {
		return fmt.Errorf("%w: %s", assign.ErrInvalidSlotKey, k)
	}
	if err := b.BeginDrag(id); err != nil {
		return err
	}
	b.Hover(k)
	_, err := b.Release()
	return err
}

// Drag returns the current gesture state.
func (b *Board) Drag() DragView {
	v := DragView{State: b.drag.State()}
	if p, ok := b.drag.Payload(); ok {
		v.Item = p.Item
	}
	if k, ok := b.drag.Target(); ok {
		v.Target = k
	}
	return v
}

// Snapshot returns a consistent view for rendering.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Items:       b.registry.Items(),
		Assignments: b.store.Snapshot(),
		Drag:        b.Drag(),
	}
}

// Subscribe registers fn for board events. The returned func unsubscribes.
func (b *Board) Subscribe(fn func(Event)) (cancel func()) {
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() { delete(b.subs, id) }
}

func (b *Board) publish(e Event) {
	for id := 0; id < b.nextID; id++ {
		if fn, ok := b.subs[id]; ok {
			fn(e)
		}
	}
}
