package model

import "fmt"

// SeatIndex addresses one cell of the seat grid.
type SeatIndex struct {
	Row int `json:"row" yaml:"row" validate:"gte=0"`
	Col int `json:"col" yaml:"col" validate:"gte=0"`
}

func (i SeatIndex) String() string {
	return fmt.Sprintf("%d:%d", i.Row, i.Col)
}

type SeatState string

const (
	SeatAvailable SeatState = "available"
	SeatReserved  SeatState = "reserved"
	SeatSelected  SeatState = "selected"
	SeatDisabled  SeatState = "disabled"
)

// Valid reports whether s is one of the four known states.
func (s SeatState) Valid() bool {
	switch s {
	case SeatAvailable, SeatReserved, SeatSelected, SeatDisabled:
		return true
	default:
		return false
	}
}

// SeatRecord is a snapshot of one seat. Records handed out by the store are
// copies; changing them has no effect on the store.
type SeatRecord struct {
	Index SeatIndex `json:"index"`
	Label string    `json:"label"`
	State SeatState `json:"state"`
	Type  string    `json:"type"`
}

func (r SeatRecord) IsAvailable() bool {
	return r.State == SeatAvailable
}

func (r SeatRecord) IsSelected() bool {
	return r.State == SeatSelected
}
