package layout

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"seatpicker-cli/model"
)

// SeatMap is the seat map document exported by ticketing checkouts. Lines and
// columns are 1-based; cells without a seat are aisles.
type SeatMap struct {
	ID     string     `json:"id"`
	Bounds SeatBounds `json:"bounds"`
	Lines  []SeatLine `json:"lines"`
}

type SeatBounds struct {
	Lines   int `json:"lines"`
	Columns int `json:"columns"`
}

type SeatLine struct {
	Line  int        `json:"line"`
	Seats []SeatCell `json:"seats"`
}

type SeatCell struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
	Type   string `json:"type"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// FromSeatMap converts a seat map document into a layout. Aisles and
// blocked seats become disabled, occupied seats reserved. Every seat type
// other than Normal becomes an unpriced seat type listing its seats.
func FromSeatMap(name string, sm SeatMap) (model.Config, error) {
	if sm.Bounds.Lines <= 0 || sm.Bounds.Columns <= 0 {
		return model.Config{}, errors.New("seat map has no bounds")
	}
	cfg := model.Config{Name: name, Rows: sm.Bounds.Lines, Columns: sm.Bounds.Columns}

	present := make(map[model.SeatIndex]bool)
	rowLabels := make(map[int]string)
	numbers := make(map[model.SeatIndex]string)
	typeIndex := make(map[string]int)

	for _, line := range sm.Lines {
		for _, seat := range line.Seats {
			index := model.SeatIndex{Row: seat.Line - 1, Col: seat.Column - 1}
			if index.Row < 0 || index.Col < 0 || index.Row >= cfg.Rows || index.Col >= cfg.Columns {
				continue
			}
			present[index] = true

			switch strings.ToLower(seat.Status) {
			case "available":
			case "occupied", "reserved", "sold":
				cfg.Reserved = append(cfg.Reserved, index)
			default:
				cfg.Disabled.Seats = append(cfg.Disabled.Seats, index)
			}

			if typeName := strings.TrimSpace(seat.Type); typeName != "" && !strings.EqualFold(typeName, "Normal") {
				key := slug.Make(typeName)
				i, ok := typeIndex[key]
				if !ok {
					i = len(cfg.Types)
					typeIndex[key] = i
					cfg.Types = append(cfg.Types, model.SeatType{Key: key, Name: typeName})
				}
				cfg.Types[i].Seats = append(cfg.Types[i].Seats, index)
			}

			row := seatRowLabel(seat)
			if _, ok := rowLabels[index.Row]; !ok && row != "" {
				rowLabels[index.Row] = row
			}
			if number := seatNumberLabel(seat, row); number != "" {
				numbers[index] = number
			}
		}
	}

	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Columns; c++ {
			index := model.SeatIndex{Row: r, Col: c}
			if !present[index] {
				cfg.Disabled.Seats = append(cfg.Disabled.Seats, index)
			}
		}
	}

	if len(rowLabels) > 0 {
		cfg.RowLabel = func(row int) string {
			if label, ok := rowLabels[row]; ok {
				return label
			}
			return strconv.Itoa(row + 1)
		}
	}
	if len(numbers) > 0 {
		cfg.SeatLabel = func(index model.SeatIndex, rowLabel string) string {
			if number, ok := numbers[index]; ok {
				return rowLabel + number
			}
			return rowLabel + strconv.Itoa(index.Col+1)
		}
	}
	return cfg, nil
}

func isSeatMap(data []byte) bool {
	var probe struct {
		Bounds *SeatBounds `json:"bounds"`
	}
	return json.Unmarshal(data, &probe) == nil && probe.Bounds != nil
}

func seatRowLabel(seat SeatCell) string {
	parts := strings.Fields(strings.TrimSpace(seat.Label))
	if len(parts) > 0 {
		first := parts[0]
		if len(first) == 1 && first[0] >= 'A' && first[0] <= 'Z' {
			return first
		}
		if len(parts) == 1 && len(first) > 1 && first[0] >= 'A' && first[0] <= 'Z' {
			return first[:1]
		}
	}
	if seat.Line > 0 {
		return strconv.Itoa(seat.Line)
	}
	return ""
}

func seatNumberLabel(seat SeatCell, row string) string {
	parts := strings.Fields(strings.TrimSpace(seat.Label))
	if len(parts) == 0 {
		return ""
	}
	last := parts[len(parts)-1]
	if len(parts) == 1 && isLetterRow(row) && strings.HasPrefix(last, row) && len(last) > len(row) {
		return last[len(row):]
	}
	return last
}

func isLetterRow(row string) bool {
	return len(row) == 1 && row[0] >= 'A' && row[0] <= 'Z'
}
