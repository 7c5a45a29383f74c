package store

import (
	"seatpicker-cli/model"
)

// SeatPatch carries the fields a SetSeat call wants to change. Nil fields
// are left alone.
type SeatPatch struct {
	State *model.SeatState
	Type  *string
	Label *string
}

func WithState(state model.SeatState) SeatPatch { return SeatPatch{State: &state} }

func WithType(key string) SeatPatch { return SeatPatch{Type: &key} }

func WithLabel(label string) SeatPatch { return SeatPatch{Label: &label} }

// And merges other into p; fields set in other win.
func (p SeatPatch) And(other SeatPatch) SeatPatch {
	if other.State != nil {
		p.State = other.State
	}
	if other.Type != nil {
		p.Type = other.Type
	}
	if other.Label != nil {
		p.Label = other.Label
	}
	return p
}

type field uint8

const (
	fieldState field = 1 << iota
	fieldType
	fieldLabel
)

// change describes one applied patch.
type change struct {
	previous model.SeatRecord
	current  model.SeatRecord
	fields   field
}

func (c change) changed() bool { return c.fields != 0 }

func (c change) stateChanged() bool { return c.fields&fieldState != 0 }

// grid owns the seat records. Only the store writes to it.
type grid struct {
	rows    int
	columns int
	seats   [][]model.SeatRecord
	types   map[string]model.SeatType
}

// newGrid builds blank records: available, default type, empty label. The
// store replays the configured initial values on top of them.
func newGrid(cfg model.Config) *grid {
	g := &grid{
		rows:    cfg.Rows,
		columns: cfg.Columns,
		seats:   make([][]model.SeatRecord, cfg.Rows),
		types:   make(map[string]model.SeatType, len(cfg.Types)),
	}
	for _, t := range cfg.Types {
		g.types[t.Key] = t
	}
	for r := range g.seats {
		g.seats[r] = make([]model.SeatRecord, cfg.Columns)
		for c := range g.seats[r] {
			g.seats[r][c] = model.SeatRecord{
				Index: model.SeatIndex{Row: r, Col: c},
				State: model.SeatAvailable,
				Type:  model.DefaultTypeKey,
			}
		}
	}
	return g
}

func (g *grid) contains(index model.SeatIndex) bool {
	return index.Row >= 0 && index.Row < g.rows && index.Col >= 0 && index.Col < g.columns
}

// at must only be called with an index the grid contains.
func (g *grid) at(index model.SeatIndex) model.SeatRecord {
	return g.seats[index.Row][index.Col]
}

func (g *grid) get(op string, index model.SeatIndex) (model.SeatRecord, error) {
	if !g.contains(index) {
		return model.SeatRecord{}, rangeError(op, index, g.rows, g.columns)
	}
	return g.at(index), nil
}

// apply validates the whole patch before touching the record.
func (g *grid) apply(op string, index model.SeatIndex, patch SeatPatch) (change, error) {
	if !g.contains(index) {
		return change{}, rangeError(op, index, g.rows, g.columns)
	}
	if patch.State != nil && !patch.State.Valid() {
		return change{}, typeError(op, "unknown seat state %q", *patch.State)
	}
	if patch.Type != nil {
		if _, ok := g.types[*patch.Type]; !ok {
			return change{}, typeError(op, "unknown seat type %q", *patch.Type)
		}
	}
	return g.write(index, patch), nil
}

// write applies an already validated patch.
func (g *grid) write(index model.SeatIndex, patch SeatPatch) change {
	seat := &g.seats[index.Row][index.Col]
	c := change{previous: *seat}
	next := *seat
	if patch.State != nil && *patch.State != next.State {
		next.State = *patch.State
		c.fields |= fieldState
	}
	if patch.Type != nil && *patch.Type != next.Type {
		next.Type = *patch.Type
		c.fields |= fieldType
	}
	if patch.Label != nil && *patch.Label != next.Label {
		next.Label = *patch.Label
		c.fields |= fieldLabel
	}
	if c.changed() {
		*seat = next
	}
	c.current = *seat
	return c
}

func (g *grid) price(key string) float64 {
	return g.types[key].Price
}

// each visits every seat in row-major order.
func (g *grid) each(fn func(model.SeatRecord)) {
	for r := range g.seats {
		for _, seat := range g.seats[r] {
			fn(seat)
		}
	}
}
