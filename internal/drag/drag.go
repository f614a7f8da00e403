// Package drag models a single drag-and-drop gesture as a state machine.
//
// A gesture starts Idle, becomes Dragging when an item is picked up, and is
// Over a slot while the pointer hovers a valid drop target. Releasing while
// Over drops the item; releasing anywhere else, or cancelling, drops nothing.
// Both endings return the controller to Idle.
package drag

import (
	"errors"

	"github.com/javiermolinar/skema/internal/event"
	"github.com/javiermolinar/skema/internal/slot"
)

// ErrDragInProgress is returned by Begin when a gesture is already active.
var ErrDragInProgress = errors.New("a drag is already in progress")

// KindItem is the only payload kind drop targets accept.
const KindItem = "ITEM"

// State is the controller state.
type State int

const (
	Idle State = iota
	Dragging
	Over
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome is how a gesture ended.
type Outcome int

const (
	OutcomeNone Outcome = iota // nothing was being dragged
	OutcomeDropped
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDropped:
		return "dropped"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Payload is what a drag source hands over at drag start.
type Payload struct {
	Kind string
	Item event.Item
}

// ItemPayload wraps item in a payload drop targets accept.
func ItemPayload(item event.Item) Payload {
	return Payload{Kind: KindItem, Item: item}
}

// Drop is emitted once per successful drop.
type Drop struct {
	Item event.Item
	Key  slot.Key
}

// DropFunc receives drops. Its error is returned from Release.
type DropFunc func(Drop) error

// Transition records a state change, for observers.
type Transition struct {
	From    State
	To      State
	Key     slot.Key
	Outcome Outcome
}

// Option configures a Controller.
type Option func(*Controller)

// WithTarget restricts which keys are valid drop targets.
func WithTarget(accept func(slot.Key) bool) Option {
	return func(c *Controller) {
		c.accept = accept
	}
}

// WithObserver registers fn to see every transition.
func WithObserver(fn func(Transition)) Option {
	return func(c *Controller) {
		c.observe = fn
	}
}

// Controller tracks one gesture at a time.
type Controller struct {
	onDrop  DropFunc
	accept  func(slot.Key) bool
	observe func(Transition)

	state       State
	payload     Payload
	over        slot.Key
	transitions uint64
}

// New creates an idle controller that reports drops to onDrop.
func New(onDrop DropFunc, opts ...Option) *Controller {
	c := &Controller{onDrop: onDrop}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Begin picks up p. The payload is copied; later changes to the source are not seen.
func (c *Controller) Begin(p Payload) error {
	if c.state != Idle {
		return ErrDragInProgress
	}
	c.payload = p
	c.set(Dragging, slot.Key{}, OutcomeNone)
	return nil
}

// Enter moves the hover target to k. Keys that are not valid targets leave
// the gesture Dragging with no target.
func (c *Controller) Enter(k slot.Key) {
	if c.state == Idle {
		return
	}
	if c.accept != nil && !c.accept(k) {
		c.Leave()
		return
	}
	if c.state == Over && c.over == k {
		return
	}
	c.over = k
	c.set(Over, k, OutcomeNone)
}

// Leave clears the hover target.
func (c *Controller) Leave() {
	if c.state != Over {
		return
	}
	c.over = slot.Key{}
	c.set(Dragging, slot.Key{}, OutcomeNone)
}

// Release ends the gesture. It calls the drop func exactly once when the
// pointer is over a target and the payload is an item; otherwise the
// gesture is cancelled. The controller is Idle again when Release returns.
func (c *Controller) Release() (Outcome, error) {
	switch c.state {
	case Idle:
		return OutcomeNone, nil
	case Over:
		if c.payload.Kind == KindItem {
			d := Drop{Item: c.payload.Item, Key: c.over}
			c.reset(OutcomeDropped, d.Key)
			var err error
			if c.onDrop != nil {
				err = c.onDrop(d)
			}
			return OutcomeDropped, err
		}
	}
	c.reset(OutcomeCancelled, slot.Key{})
	return OutcomeCancelled, nil
}

// Cancel aborts the gesture without dropping anything.
func (c *Controller) Cancel() Outcome {
	if c.state == Idle {
		return OutcomeNone
	}
	c.reset(OutcomeCancelled, slot.Key{})
	return OutcomeCancelled
}

// Transitions returns how many state changes the controller has made.
// Repeated hovers over the same target and calls that change nothing are not counted.
func (c *Controller) Transitions() uint64 {
	return c.transitions
}

// IsDragging reports whether a gesture is active.
func (c *Controller) IsDragging() bool {
	return c.state != Idle
}

// IsDraggingItem reports whether the item with id is being dragged.
func (c *Controller) IsDraggingItem(id int) bool {
	return c.state != Idle && c.payload.Kind == KindItem && c.payload.Item.ID == id
}

// IsOver reports whether k is the current hover target.
func (c *Controller) IsOver(k slot.Key) bool {
	return c.state == Over && c.over == k
}

// Payload returns the payload of the active gesture.
func (c *Controller) Payload() (Payload, bool) {
	if c.state == Idle {
		return Payload{}, false
	}
	return c.payload, true
}

// Target returns the current hover target.
func (c *Controller) Target() (slot.Key, bool) {
	if c.state != Over {
		return slot.Key{}, false
	}
	return c.over, true
}

func (c *Controller) reset(outcome Outcome, k slot.Key) {
	c.payload = Payload{}
	c.over = slot.Key{}
	c.set(Idle, k, outcome)
}

func (c *Controller) set(to State, k slot.Key, outcome Outcome) {
	from := c.state
	c.state = to
	c.transitions++
	if c.observe != nil {
		c.observe(Transition{From: from, To: to, Key: k, Outcome: outcome})
	}
}
