package model

const DefaultTypeKey = "default"

// SeatType is a priced seat category. Seats, Rows and Columns form the static
// membership rule used when the grid is first built.
type SeatType struct {
	Key      string      `json:"key" yaml:"key" validate:"required"`
	Name     string      `json:"name" yaml:"name"`
	Price    float64     `json:"price" yaml:"price" validate:"gte=0"`
	CSSClass string      `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	Seats    []SeatIndex `json:"seats,omitempty" yaml:"seats,omitempty" validate:"dive"`
	Rows     []int       `json:"rows,omitempty" yaml:"rows,omitempty" validate:"dive,gte=0"`
	Columns  []int       `json:"columns,omitempty" yaml:"columns,omitempty" validate:"dive,gte=0"`
}

// Matches reports whether the static membership rule covers index.
func (t SeatType) Matches(index SeatIndex) bool {
	for _, seat := range t.Seats {
		if seat == index {
			return true
		}
	}
	for _, row := range t.Rows {
		if row == index.Row {
			return true
		}
	}
	for _, col := range t.Columns {
		if col == index.Col {
			return true
		}
	}
	return false
}

type Obstructions struct {
	Seats   []SeatIndex `json:"seats,omitempty" yaml:"seats,omitempty" validate:"dive"`
	Rows    []int       `json:"rows,omitempty" yaml:"rows,omitempty" validate:"dive,gte=0"`
	Columns []int       `json:"columns,omitempty" yaml:"columns,omitempty" validate:"dive,gte=0"`
}

// Covers reports whether index is a listed seat or lies in a listed row or column.
func (o Obstructions) Covers(index SeatIndex) bool {
	return containsIndex(o.Seats, index) || o.CoversLine(index)
}

// CoversLine only looks at the row and column lists.
func (o Obstructions) CoversLine(index SeatIndex) bool {
	for _, row := range o.Rows {
		if row == index.Row {
			return true
		}
	}
	for _, col := range o.Columns {
		if col == index.Col {
			return true
		}
	}
	return false
}

// Config describes a seat map. It is read once by the store, which keeps its
// own copy.
type Config struct {
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Rows     int          `json:"rows" yaml:"rows" validate:"gt=0"`
	Columns  int          `json:"columns" yaml:"columns" validate:"gt=0"`
	Currency string       `json:"currency,omitempty" yaml:"currency,omitempty"`
	Types    []SeatType   `json:"types,omitempty" yaml:"types,omitempty" validate:"dive"`
	Disabled Obstructions `json:"disabled" yaml:"disabled"`
	Reserved []SeatIndex  `json:"reserved,omitempty" yaml:"reserved,omitempty" validate:"dive"`
	Selected []SeatIndex  `json:"selected,omitempty" yaml:"selected,omitempty" validate:"dive"`

	// RowLabel names a row; defaults to A, B, ... Z, AA, AB, ...
	RowLabel func(row int) string `json:"-" yaml:"-"`
	// SeatLabel names a seat given its row label; defaults to rowLabel+(col+1).
	SeatLabel func(index SeatIndex, rowLabel string) string `json:"-" yaml:"-"`
}

func containsIndex(list []SeatIndex, index SeatIndex) bool {
	for _, item := range list {
		if item == index {
			return true
		}
	}
	return false
}
