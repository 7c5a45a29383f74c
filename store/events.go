package store

import (
	"github.com/google/uuid"
	"seatpicker-cli/model"
)

type EventKind string

const (
	EventSeatChange EventKind = "seatchange"
	EventCartChange EventKind = "cartchange"
	EventCartClear  EventKind = "cartclear"
	EventSubmit     EventKind = "submit"
)

func (k EventKind) valid() bool {
	switch k {
	case EventSeatChange, EventCartChange, EventCartClear, EventSubmit:
		return true
	default:
		return false
	}
}

// Event is implemented by the four payload types below.
type Event interface {
	Kind() EventKind
}

type SeatChangeEvent struct {
	Previous model.SeatRecord `json:"previous"`
	Current  model.SeatRecord `json:"current"`
}

type CartChangeEvent struct {
	Action CartAction       `json:"action"`
	Seat   model.SeatRecord `json:"seat"`
}

type CartClearEvent struct {
	Seats []model.SeatRecord `json:"seats"`
}

// SubmitEvent is published by Submit. ID distinguishes repeated submissions
// of the same cart.
type SubmitEvent struct {
	ID     uuid.UUID          `json:"id"`
	Cart   []model.SeatRecord `json:"cart"`
	Groups []CartGroup        `json:"groups"`
	Total  float64            `json:"total"`
}

func (SeatChangeEvent) Kind() EventKind { return EventSeatChange }
func (CartChangeEvent) Kind() EventKind { return EventCartChange }
func (CartClearEvent) Kind() EventKind  { return EventCartClear }
func (SubmitEvent) Kind() EventKind     { return EventSubmit }

type Listener func(Event)

// ListenerID identifies a subscription for Unsubscribe.
type ListenerID uint64

type SubscribeOption func(*subscription)

// ForSeat restricts a seatchange listener to one seat.
func ForSeat(index model.SeatIndex) SubscribeOption {
	return func(sub *subscription) {
		sub.scoped = true
		sub.index = index
	}
}

type subscription struct {
	id       ListenerID
	kind     EventKind
	scoped   bool
	index    model.SeatIndex
	listener Listener
}

// bus dispatches synchronously on the caller's goroutine. Listener slices
// are never modified in place: subscribe appends past every existing
// snapshot's length and unsubscribe builds a new slice, so a dispatch pass
// can iterate the slice it started with while listeners come and go.
type bus struct {
	nextID ListenerID
	global map[EventKind][]subscription
	scoped map[model.SeatIndex][]subscription
	byID   map[ListenerID]subscription
}

func newBus() *bus {
	return &bus{
		global: make(map[EventKind][]subscription),
		scoped: make(map[model.SeatIndex][]subscription),
		byID:   make(map[ListenerID]subscription),
	}
}

func (b *bus) subscribe(sub subscription) ListenerID {
	b.nextID++
	sub.id = b.nextID
	if sub.scoped {
		b.scoped[sub.index] = append(b.scoped[sub.index], sub)
	} else {
		b.global[sub.kind] = append(b.global[sub.kind], sub)
	}
	b.byID[sub.id] = sub
	return sub.id
}

func (b *bus) unsubscribe(id ListenerID) bool {
	sub, ok := b.byID[id]
	if !ok {
		return false
	}
	delete(b.byID, id)
	if sub.scoped {
		rest := without(b.scoped[sub.index], id)
		if len(rest) == 0 {
			delete(b.scoped, sub.index)
		} else {
			b.scoped[sub.index] = rest
		}
		return true
	}
	b.global[sub.kind] = without(b.global[sub.kind], id)
	return true
}

func (b *bus) publish(ev Event) {
	for _, sub := range b.global[ev.Kind()] {
		sub.listener(ev)
	}
}

// publishSeatChange runs the listeners scoped to the seat, then the global
// ones. Both lists are taken before the first listener runs.
func (b *bus) publishSeatChange(ev SeatChangeEvent) {
	scoped := b.scoped[ev.Current.Index]
	global := b.global[EventSeatChange]
	for _, sub := range scoped {
		sub.listener(ev)
	}
	for _, sub := range global {
		sub.listener(ev)
	}
}

func (b *bus) count(kind EventKind) int {
	n := len(b.global[kind])
	if kind == EventSeatChange {
		for _, subs := range b.scoped {
			n += len(subs)
		}
	}
	return n
}

func without(subs []subscription, id ListenerID) []subscription {
	rest := make([]subscription, 0, len(subs))
	for _, sub := range subs {
		if sub.id != id {
			rest = append(rest, sub)
		}
	}
	return rest
}

// Subscribe registers listener for kind. Listeners of one kind run in
// registration order. ForSeat is only accepted for seatchange.
func (s *Store) Subscribe(kind EventKind, listener Listener, opts ...SubscribeOption) (ListenerID, error) {
	const op = "subscribe"
	if !kind.valid() {
		return 0, invalidArgument(op, "unknown event kind %q", kind)
	}
	if listener == nil {
		return 0, invalidArgument(op, "nil listener")
	}
	sub := subscription{kind: kind, listener: listener}
	for _, opt := range opts {
		opt(&sub)
	}
	if sub.scoped {
		if kind != EventSeatChange {
			return 0, invalidArgument(op, "%s listeners cannot be scoped to a seat", kind)
		}
		if !s.grid.contains(sub.index) {
			return 0, rangeError(op, sub.index, s.grid.rows, s.grid.columns)
		}
	}
	return s.bus.subscribe(sub), nil
}

// Unsubscribe removes a listener. A dispatch already in progress still
// reaches it; later ones do not.
func (s *Store) Unsubscribe(id ListenerID) bool {
	return s.bus.unsubscribe(id)
}

// ListenerCount reports how many listeners are registered for kind,
// including seat-scoped ones for seatchange.
func (s *Store) ListenerCount(kind EventKind) int {
	return s.bus.count(kind)
}

func (s *Store) OnSeatChange(fn func(SeatChangeEvent), opts ...SubscribeOption) (ListenerID, error) {
	if fn == nil {
		return 0, invalidArgument("subscribe", "nil listener")
	}
	return s.Subscribe(EventSeatChange, func(ev Event) { fn(ev.(SeatChangeEvent)) }, opts...)
}

func (s *Store) OnCartChange(fn func(CartChangeEvent)) (ListenerID, error) {
	if fn == nil {
		return 0, invalidArgument("subscribe", "nil listener")
	}
	return s.Subscribe(EventCartChange, func(ev Event) { fn(ev.(CartChangeEvent)) })
}

func (s *Store) OnCartClear(fn func(CartClearEvent)) (ListenerID, error) {
	if fn == nil {
		return 0, invalidArgument("subscribe", "nil listener")
	}
	return s.Subscribe(EventCartClear, func(ev Event) { fn(ev.(CartClearEvent)) })
}

func (s *Store) OnSubmit(fn func(SubmitEvent)) (ListenerID, error) {
	if fn == nil {
		return 0, invalidArgument("subscribe", "nil listener")
	}
	return s.Subscribe(EventSubmit, func(ev Event) { fn(ev.(SubmitEvent)) })
}
