package store

import (
	"errors"
	"fmt"

	"seatpicker-cli/model"
)

// ErrorKind classifies store failures.
type ErrorKind int

const (
	// KindRange is returned for a seat index outside the grid.
	KindRange ErrorKind = iota + 1
	// KindType is returned for an unknown seat type or seat state.
	KindType
	// KindConfig is returned by New when the layout is malformed.
	KindConfig
	// KindInvalidArgument is returned for bad query or subscription arguments.
	KindInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindType:
		return "type"
	case KindConfig:
		return "config"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return "unknown"
	}
}

// Error is the only error type the store returns.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "seat store error"
	}
	if e.Op == "" {
		return fmt.Sprintf("seat store: %s error: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("seat store: %s: %s error: %s", e.Op, e.Kind, e.Msg)
}

// KindOf returns the kind of a store error, or 0 when err is not one.
func KindOf(err error) ErrorKind {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return 0
}

// IsRange reports whether err is an out-of-range seat index.
func IsRange(err error) bool { return KindOf(err) == KindRange }

// IsType reports whether err names an unknown seat type or state.
func IsType(err error) bool { return KindOf(err) == KindType }

// IsConfig reports whether err came from layout validation.
func IsConfig(err error) bool { return KindOf(err) == KindConfig }

func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }

func rangeError(op string, index model.SeatIndex, rows, columns int) error {
	return &Error{
		Kind: KindRange,
		Op:   op,
		Msg:  fmt.Sprintf("seat %s outside %dx%d grid", index, rows, columns),
	}
}

func typeError(op string, format string, args ...any) error {
	return &Error{Kind: KindType, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func configError(format string, args ...any) error {
	return &Error{Kind: KindConfig, Op: "new", Msg: fmt.Sprintf(format, args...)}
}

func invalidArgument(op string, format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Op: op, Msg: fmt.Sprintf(format, args...)}
}
