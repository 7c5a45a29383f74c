// Package store holds the authoritative seat state of one seat map: the seat
// grid, the cart of selected seats, the event bus and the gap queries.
//
// A Store is not safe for concurrent use. Every call runs to completion,
// including listener dispatch, before it returns, and listeners may call
// back into the store.
package store

import (
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"seatpicker-cli/model"
)

// Store is the seat state of one seat map. Build it with New.
type Store struct {
	cfg    model.Config
	grid   *grid
	cart   *cart
	bus    *bus
	gaps   gapDetector
	logger *slog.Logger

	early []earlyListener
}

type earlyListener struct {
	kind     EventKind
	listener Listener
	opts     []SubscribeOption
}

// Option configures a Store in New.
type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListener registers a listener before the grid is built, so it also
// receives the events replayed while the initial seat records are applied.
func WithListener(kind EventKind, listener Listener, opts ...SubscribeOption) Option {
	return func(s *Store) {
		s.early = append(s.early, earlyListener{kind: kind, listener: listener, opts: opts})
	}
}

// WithSeatListener is WithListener for a seatchange listener scoped to index.
func WithSeatListener(index model.SeatIndex, fn func(SeatChangeEvent)) Option {
	return WithListener(EventSeatChange, func(ev Event) { fn(ev.(SeatChangeEvent)) }, ForSeat(index))
}

// New validates cfg, takes its own copy of it and builds the grid. Every
// seat is written in row-major order from a blank record (available, default
// type, no label) to its configured record; listeners passed as options see
// the resulting cartchange and seatchange events.
func New(cfg model.Config, opts ...Option) (*Store, error) {
	owned, err := prepareConfig(cfg)
	if err != nil {
		return nil, err
	}
	s := &Store{
		cfg:    owned,
		grid:   newGrid(owned),
		cart:   &cart{},
		bus:    newBus(),
		logger: slog.New(discardHandler),
	}
	s.gaps = gapDetector{grid: s.grid, disabled: owned.Disabled}
	for _, opt := range opts {
		opt(s)
	}
	for _, early := range s.early {
		if _, err := s.Subscribe(early.kind, early.listener, early.opts...); err != nil {
			return nil, err
		}
	}
	s.early = nil

	s.init()
	s.logger.Debug("seat store ready",
		"layout", owned.Name,
		"rows", owned.Rows,
		"columns", owned.Columns,
		"selected", s.cart.len(),
	)
	return s, nil
}

func (s *Store) init() {
	for r := 0; r < s.cfg.Rows; r++ {
		for c := 0; c < s.cfg.Columns; c++ {
			index := model.SeatIndex{Row: r, Col: c}
			initial := s.initialRecord(index)
			ch := s.grid.write(index, WithState(initial.State).And(WithType(initial.Type)).And(WithLabel(initial.Label)))
			if !ch.changed() {
				continue
			}
			action, crossed := s.cart.track(ch)
			s.dispatch(ch, action, crossed)
		}
	}
}

func (s *Store) initialRecord(index model.SeatIndex) model.SeatRecord {
	state := model.SeatAvailable
	switch {
	case s.cfg.Disabled.Covers(index):
		state = model.SeatDisabled
	case containsIndex(s.cfg.Reserved, index):
		state = model.SeatReserved
	case containsIndex(s.cfg.Selected, index):
		state = model.SeatSelected
	}

	seatType := model.DefaultTypeKey
	for _, t := range s.cfg.Types {
		if t.Matches(index) {
			seatType = t.Key
			break
		}
	}

	rowLabel := s.RowLabel(index.Row)
	label := rowLabel + strconv.Itoa(index.Col+1)
	if s.cfg.SeatLabel != nil {
		label = s.cfg.SeatLabel(index, rowLabel)
	}
	return model.SeatRecord{Index: index, Label: label, State: state, Type: seatType}
}

// Seat returns a copy of the record at index.
func (s *Store) Seat(index model.SeatIndex) (model.SeatRecord, error) {
	return s.grid.get("get seat", index)
}

// SetSeat applies patch to the seat at index. The call fails before any
// mutation on a bad index, seat type or state. A patch that changes nothing
// is a silent no-op. With emit set, a seat entering or leaving the cart
// dispatches cartchange first and then seatchange.
func (s *Store) SetSeat(index model.SeatIndex, patch SeatPatch, emit bool) error {
	ch, err := s.grid.apply("set seat", index, patch)
	if err != nil {
		return err
	}
	if !ch.changed() {
		return nil
	}
	action, crossed := s.cart.track(ch)
	s.logger.Debug("seat updated",
		"seat", index.String(),
		"from", string(ch.previous.State),
		"to", string(ch.current.State),
		"type", ch.current.Type,
		"emit", emit,
	)
	if emit {
		s.dispatch(ch, action, crossed)
	}
	return nil
}

func (s *Store) dispatch(ch change, action CartAction, crossed bool) {
	if crossed {
		s.bus.publish(CartChangeEvent{Action: action, Seat: ch.current})
	}
	s.bus.publishSeatChange(SeatChangeEvent{Previous: ch.previous, Current: ch.current})
}

// Submit publishes the current cart. It never changes seat state.
func (s *Store) Submit() SubmitEvent {
	ev := SubmitEvent{
		ID:     uuid.New(),
		Cart:   s.Cart(),
		Groups: s.CartByType(),
		Total:  s.CartTotal(),
	}
	s.logger.Info("cart submitted",
		"submission", ev.ID.String(),
		"seats", len(ev.Cart),
		"total", ev.Total,
	)
	s.bus.publish(ev)
	return ev
}

func (s *Store) Rows() int { return s.cfg.Rows }

func (s *Store) Columns() int { return s.cfg.Columns }

func (s *Store) Name() string { return s.cfg.Name }

func (s *Store) Currency() string { return s.cfg.Currency }

// Types returns the configured seat types, default included, in
// configuration order.
func (s *Store) Types() []model.SeatType {
	types := make([]model.SeatType, len(s.cfg.Types))
	copy(types, s.cfg.Types)
	return types
}

func (s *Store) Type(key string) (model.SeatType, bool) {
	t, ok := s.grid.types[key]
	return t, ok
}

// RowLabel names a row with the layout's generator or the default
// A..Z, AA.. scheme.
func (s *Store) RowLabel(row int) string {
	if s.cfg.RowLabel != nil {
		return s.cfg.RowLabel(row)
	}
	return defaultRowLabel(row)
}

// Counts tallies seats per state.
func (s *Store) Counts() map[model.SeatState]int {
	counts := make(map[model.SeatState]int, 4)
	s.grid.each(func(seat model.SeatRecord) {
		counts[seat.State]++
	})
	return counts
}

// Seats returns every record in row-major order.
func (s *Store) Seats() []model.SeatRecord {
	seats := make([]model.SeatRecord, 0, s.cfg.Rows*s.cfg.Columns)
	s.grid.each(func(seat model.SeatRecord) {
		seats = append(seats, seat)
	})
	return seats
}

func defaultRowLabel(row int) string {
	label := ""
	for n := row + 1; n > 0; n = (n - 1) / 26 {
		label = string(rune('A'+(n-1)%26)) + label
	}
	return label
}

func containsIndex(list []model.SeatIndex, index model.SeatIndex) bool {
	for _, item := range list {
		if item == index {
			return true
		}
	}
	return false
}
