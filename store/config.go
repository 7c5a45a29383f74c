package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"seatpicker-cli/model"
)

var validate = validator.New()

// prepareConfig returns the store's own copy of cfg, validated and with the
// default seat type present. Nothing in the result aliases cfg's slices.
func prepareConfig(cfg model.Config) (model.Config, error) {
	var owned model.Config
	if err := copier.CopyWithOption(&owned, &cfg, copier.Option{DeepCopy: true}); err != nil {
		return model.Config{}, configError("copy layout: %v", err)
	}
	owned.RowLabel = cfg.RowLabel
	owned.SeatLabel = cfg.SeatLabel

	if err := validate.Struct(&owned); err != nil {
		return model.Config{}, configError("%s", describeValidation(err))
	}

	seen := make(map[string]bool, len(owned.Types)+1)
	for _, t := range owned.Types {
		key := strings.TrimSpace(t.Key)
		if key != t.Key {
			return model.Config{}, configError("seat type key %q has surrounding whitespace", t.Key)
		}
		if seen[key] {
			return model.Config{}, configError("duplicate seat type %q", key)
		}
		seen[key] = true
		if err := checkIndices(owned, "type "+key+" seats", t.Seats); err != nil {
			return model.Config{}, err
		}
		if err := checkLines(owned, "type "+key, t.Rows, t.Columns); err != nil {
			return model.Config{}, err
		}
	}
	if !seen[model.DefaultTypeKey] {
		owned.Types = append([]model.SeatType{{Key: model.DefaultTypeKey, Name: "Default"}}, owned.Types...)
	}

	if err := checkIndices(owned, "disabled seats", owned.Disabled.Seats); err != nil {
		return model.Config{}, err
	}
	if err := checkLines(owned, "disabled", owned.Disabled.Rows, owned.Disabled.Columns); err != nil {
		return model.Config{}, err
	}
	if err := checkIndices(owned, "reserved seats", owned.Reserved); err != nil {
		return model.Config{}, err
	}
	if err := checkIndices(owned, "selected seats", owned.Selected); err != nil {
		return model.Config{}, err
	}
	return owned, nil
}

// Config returns a copy of the layout the store was built from, including
// the default type when the store added it.
func (s *Store) Config() model.Config {
	var out model.Config
	_ = copier.CopyWithOption(&out, &s.cfg, copier.Option{DeepCopy: true})
	out.RowLabel = s.cfg.RowLabel
	out.SeatLabel = s.cfg.SeatLabel
	return out
}

func checkIndices(cfg model.Config, what string, indices []model.SeatIndex) error {
	for _, index := range indices {
		if index.Row >= cfg.Rows || index.Col >= cfg.Columns {
			return configError("%s: seat %s outside %dx%d grid", what, index, cfg.Rows, cfg.Columns)
		}
	}
	return nil
}

func checkLines(cfg model.Config, what string, rows []int, columns []int) error {
	for _, row := range rows {
		if row >= cfg.Rows {
			return configError("%s: row %d outside grid of %d rows", what, row, cfg.Rows)
		}
	}
	for _, col := range columns {
		if col >= cfg.Columns {
			return configError("%s: column %d outside grid of %d columns", what, col, cfg.Columns)
		}
	}
	return nil
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s must satisfy %s (got %v)", fe.Namespace(), rule, fe.Value()))
	}
	return strings.Join(parts, "; ")
}
