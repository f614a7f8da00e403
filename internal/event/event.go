// Package event defines the schedulable items and the registry that creates them.
package event

import "fmt"

// Item is a schedulable unit. Items are immutable values: copies held by
// other components never observe changes because none are ever made.
type Item struct {
	ID    int
	Label string
}

// String returns the item label.
func (i Item) String() string {
	return i.Label
}

// labelFor returns the display label for the n-th item (0-based).
func labelFor(n int) string {
	return fmt.Sprintf("Event %d", n+1)
}

// Registry owns the list of items in creation order.
// It only grows: items are never removed or modified.
type Registry struct {
	items []Item
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Create appends a new item and returns it.
// The id is the registry size before the call, so ids are 0-based and sequential.
func (r *Registry) Create() Item {
	n := len(r.items)
	item := Item{ID: n, Label: labelFor(n)}
	r.items = append(r.items, item)
	return item
}

// Items returns a copy of all items in creation order.
func (r *Registry) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of items created so far.
func (r *Registry) Len() int {
	return len(r.items)
}

// Lookup returns the item with the given id.
func (r *Registry) Lookup(id int) (Item, bool) {
	if id < 0 || id >= len(r.items) {
		return Item{}, false
	}
	return r.items[id], true
}

// Contains reports whether item was created by this registry with the same label.
func (r *Registry) Contains(item Item) bool {
	got, ok := r.Lookup(item.ID)
	return ok && got == item
}
