package store

import (
	"seatpicker-cli/model"
)

// gapDetector answers adjacency questions about the live grid. A gap is an
// available seat whose left and right neighbours are both obstructed: off
// the grid, disabled, reserved, selected, or inside a disabled row or column.
// Only the two direct neighbours count; chains of obstructions do not.
type gapDetector struct {
	grid     *grid
	disabled model.Obstructions
}

func (d gapDetector) isGap(index model.SeatIndex) bool {
	return d.isGapAssuming(index, nil)
}

// isGapAssuming evaluates isGap as if the seat at blocked were obstructed.
func (d gapDetector) isGapAssuming(index model.SeatIndex, blocked *model.SeatIndex) bool {
	if blocked != nil && *blocked == index {
		return false
	}
	if d.disabled.CoversLine(index) || d.grid.at(index).State != model.SeatAvailable {
		return false
	}
	left := model.SeatIndex{Row: index.Row, Col: index.Col - 1}
	right := model.SeatIndex{Row: index.Row, Col: index.Col + 1}
	return d.obstructed(left, blocked) && d.obstructed(right, blocked)
}

func (d gapDetector) obstructed(index model.SeatIndex, blocked *model.SeatIndex) bool {
	if !d.grid.contains(index) {
		return true
	}
	if blocked != nil && *blocked == index {
		return true
	}
	if d.disabled.CoversLine(index) {
		return true
	}
	switch d.grid.at(index).State {
	case model.SeatDisabled, model.SeatReserved, model.SeatSelected:
		return true
	default:
		return false
	}
}

// makesGap reports whether obstructing index would turn one of its in-row
// neighbours into a gap that is not one already.
func (d gapDetector) makesGap(index model.SeatIndex) bool {
	for _, col := range []int{index.Col - 1, index.Col + 1} {
		neighbour := model.SeatIndex{Row: index.Row, Col: col}
		if !d.grid.contains(neighbour) {
			continue
		}
		if !d.isGap(neighbour) && d.isGapAssuming(neighbour, &index) {
			return true
		}
	}
	return false
}

func (d gapDetector) gaps() []model.SeatIndex {
	var found []model.SeatIndex
	d.grid.each(func(seat model.SeatRecord) {
		if d.isGap(seat.Index) {
			found = append(found, seat.Index)
		}
	})
	return found
}

func (s *Store) IsGap(index model.SeatIndex) (bool, error) {
	if !s.grid.contains(index) {
		return false, invalidArgument("is gap", "seat %s outside %dx%d grid", index, s.grid.rows, s.grid.columns)
	}
	return s.gaps.isGap(index), nil
}

// MakesGap reports whether selecting or disabling the seat at index would
// leave a gap next to it.
func (s *Store) MakesGap(index model.SeatIndex) (bool, error) {
	if !s.grid.contains(index) {
		return false, invalidArgument("makes gap", "seat %s outside %dx%d grid", index, s.grid.rows, s.grid.columns)
	}
	return s.gaps.makesGap(index), nil
}

// Gaps lists every gap in row-major order, recomputed on each call.
func (s *Store) Gaps() []model.SeatIndex {
	return s.gaps.gaps()
}
