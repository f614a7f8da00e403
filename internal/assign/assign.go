// Package assign owns the mapping from slot keys to the items dropped on them.
package assign

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/skema/internal/event"
	"github.com/javiermolinar/skema/internal/slot"
)

// Store errors.
var (
	ErrInvalidSlotKey = errors.New("invalid slot key")
	ErrUnknownItem    = errors.New("item not created by the registry")
	ErrInvalidPolicy  = errors.New("invalid assignment policy")
)

// Policy decides what a drop does to an occupied slot.
type Policy string

const (
	// Multi appends to the slot, keeping arrival order and duplicates.
	Multi Policy = "multi"
	// Single replaces the slot's occupant. Kept as the legacy behavior.
	Single Policy = "single"
)

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case Multi:
		return Multi, nil
	case Single:
		return Single, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// ItemSource tells the store which items exist.
type ItemSource interface {
	Contains(item event.Item) bool
}

// Change describes one successful assignment.
type Change struct {
	Key       slot.Key
	Item      event.Item
	Occupants []event.Item
	Version   uint64
}

// Snapshot is an immutable view of every assignment at a given version.
type Snapshot struct {
	Version   uint64
	occupants map[slot.Key][]event.Item
}

// OccupantsOf returns the items in k, nil if none. The result must not be modified.
func (s Snapshot) OccupantsOf(k slot.Key) []event.Item {
	return s.occupants[k]
}

// Assigned returns the number of non-empty slots.
func (s Snapshot) Assigned() int {
	return len(s.occupants)
}

// Store is the single source of truth for slot occupancy.
//
// Every Assign builds a new map and swaps it in, so a Snapshot taken before
// the call keeps describing the old state.
type Store struct {
	grid   *slot.Grid
	policy Policy
	items  ItemSource

	current Snapshot

	subs   map[int]func(Change)
	nextID int
}

// New creates an empty store for grid. items may be nil to skip the
// registry membership check.
func New(grid *slot.Grid, policy Policy, items ItemSource) *Store {
	if policy == "" {
		policy = Multi
	}
	return &Store{
		grid:    grid,
		policy:  policy,
		items:   items,
		current: Snapshot{occupants: map[slot.Key][]event.Item{}},
		subs:    make(map[int]func(Change)),
	}
}

// Policy returns the store policy.
func (s *Store) Policy() Policy {
	return s.policy
}

// Assign places item in slot k according to the store policy.
func (s *Store) Assign(item event.Item, k slot.Key) error {
	if !s.grid.Contains(k) {
		return fmt.Errorf("%w: %s", ErrInvalidSlotKey, k)
	}
	if s.items != nil && !s.items.Contains(item) {
		return fmt.Errorf("%w: #%d %q", ErrUnknownItem, item.ID, item.Label)
	}

	prev := s.current.occupants[k]
	var occupants []event.Item
	switch s.policy {
	case Single:
		occupants = []event.Item{item}
	default:
		occupants = make([]event.Item, len(prev), len(prev)+1)
		copy(occupants, prev)
		occupants = append(occupants, item)
	}

	next := make(map[slot.Key][]event.Item, len(s.current.occupants)+1)
	for key, v := range s.current.occupants {
		next[key] = v
	}
	next[k] = occupants

	s.current = Snapshot{Version: s.current.Version + 1, occupants: next}
	s.notify(Change{Key: k, Item: item, Occupants: occupants, Version: s.current.Version})
	return nil
}

// OccupantsOf returns the items in k in arrival order; nil if never assigned.
func (s *Store) OccupantsOf(k slot.Key) ([]event.Item, error) {
	if !s.grid.Contains(k) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSlotKey, k)
	}
	prev := s.current.occupants[k]
	if len(prev) == 0 {
		return nil, nil
	}
	out := make([]event.Item, len(prev))
	copy(out, prev)
	return out, nil
}

// Occupant returns the current sole occupant of k under the single policy,
// or the latest arrival under the multi policy.
func (s *Store) Occupant(k slot.Key) (event.Item, bool, error) {
	items, err := s.OccupantsOf(k)
	if err != nil || len(items) == 0 {
		return event.Item{}, false, err
	}
	return items[len(items)-1], true, nil
}

// Snapshot returns the current immutable view.
func (s *Store) Snapshot() Snapshot {
	return s.current
}

// Subscribe registers fn to run after every successful Assign.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

func (s *Store) notify(c Change) {
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.subs[id]; ok {
			fn(c)
		}
	}
}
