package store

import (
	"slices"

	"seatpicker-cli/model"
)

type CartAction string

const (
	CartAdd    CartAction = "add"
	CartRemove CartAction = "remove"
)

// CartGroup is the cart restricted to one seat type.
type CartGroup struct {
	Type     model.SeatType     `json:"type"`
	Seats    []model.SeatRecord `json:"seats"`
	Subtotal float64            `json:"subtotal"`
}

// cart keeps selected seats in the order they were selected.
type cart struct {
	items []model.SeatIndex
}

// track keeps the cart in step with one seat change and reports whether the
// seat crossed the cart boundary.
func (c *cart) track(ch change) (CartAction, bool) {
	if !ch.stateChanged() {
		return "", false
	}
	was := ch.previous.State == model.SeatSelected
	is := ch.current.State == model.SeatSelected
	switch {
	case !was && is:
		c.items = append(c.items, ch.current.Index)
		return CartAdd, true
	case was && !is:
		c.remove(ch.current.Index)
		return CartRemove, true
	default:
		return "", false
	}
}

// remove drops exactly one entry for index.
func (c *cart) remove(index model.SeatIndex) bool {
	i := slices.Index(c.items, index)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

func (c *cart) len() int { return len(c.items) }

func (c *cart) indices() []model.SeatIndex { return slices.Clone(c.items) }

func (c *cart) reset() { c.items = nil }

func (s *Store) Cart() []model.SeatRecord {
	seats := make([]model.SeatRecord, 0, s.cart.len())
	for _, index := range s.cart.items {
		seats = append(seats, s.grid.at(index))
	}
	return seats
}

// CartByType groups the cart by seat type, in type configuration order.
// Types without selected seats are left out.
func (s *Store) CartByType() []CartGroup {
	byKey := make(map[string][]model.SeatRecord)
	for _, seat := range s.Cart() {
		byKey[seat.Type] = append(byKey[seat.Type], seat)
	}
	groups := make([]CartGroup, 0, len(byKey))
	for _, t := range s.cfg.Types {
		seats := byKey[t.Key]
		if len(seats) == 0 {
			continue
		}
		groups = append(groups, CartGroup{
			Type:     t,
			Seats:    seats,
			Subtotal: t.Price * float64(len(seats)),
		})
	}
	return groups
}

func (s *Store) CartTotal() float64 {
	total := 0.0
	for _, index := range s.cart.items {
		total += s.grid.price(s.grid.at(index).Type)
	}
	return total
}

func (s *Store) CountCartItems() int {
	return s.cart.len()
}

// ClearCart moves every selected seat back to available. With emit set it
// dispatches one cartclear, then a cartchange and a seatchange per seat in
// cart order. All seats are updated before any listener runs.
func (s *Store) ClearCart(emit bool) {
	members := s.cart.indices()
	if len(members) == 0 {
		return
	}
	changes := make([]change, 0, len(members))
	for _, index := range members {
		changes = append(changes, s.grid.write(index, WithState(model.SeatAvailable)))
	}
	s.cart.reset()
	s.logger.Debug("cart cleared", "seats", len(changes), "emit", emit)
	if !emit {
		return
	}

	cleared := make([]model.SeatRecord, 0, len(changes))
	for _, ch := range changes {
		cleared = append(cleared, ch.current)
	}
	s.bus.publish(CartClearEvent{Seats: cleared})
	for _, ch := range changes {
		s.bus.publish(CartChangeEvent{Action: CartRemove, Seat: ch.current})
		s.bus.publishSeatChange(SeatChangeEvent{Previous: ch.previous, Current: ch.current})
	}
}
