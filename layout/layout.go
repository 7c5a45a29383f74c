package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"seatpicker-cli/model"
)

const appDir = "seatpicker-cli"

var ErrUnsupportedFormat = errors.New("unsupported layout format")

// Load reads a layout from a .json, .yaml or .yml file. JSON seat map
// documents (see SeatMap) are converted on the way. The result is not
// validated; store.New does that.
func Load(path string) (model.Config, error) {
	var cfg model.Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch format(path) {
	case "json":
		if isSeatMap(data) {
			var sm SeatMap
			if err := json.Unmarshal(data, &sm); err != nil {
				return model.Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
			return FromSeatMap(baseName(path), sm)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return model.Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return model.Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return model.Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if cfg.Name == "" {
		cfg.Name = baseName(path)
	}
	return cfg, nil
}

// Save writes cfg in the format implied by path's extension.
func Save(path string, cfg model.Config) error {
	var payload []byte
	var err error
	switch format(path) {
	case "json":
		payload, err = json.MarshalIndent(cfg, "", "  ")
	case "yaml":
		payload, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// Demo is the layout used when no file is given.
func Demo() model.Config {
	return model.Config{
		Name:     "Demo hall",
		Rows:     10,
		Columns:  10,
		Currency: "$",
		Types: []model.SeatType{
			{Key: model.DefaultTypeKey, Name: "Economy", Price: 10, CSSClass: "economy"},
			{Key: "first-class", Name: "First class", Price: 25, CSSClass: "first-class", Rows: []int{0, 1, 2}},
			{Key: "reduced", Name: "Reduced", Price: 7.5, CSSClass: "reduced", Rows: []int{7, 8, 9}},
		},
		Disabled: model.Obstructions{
			Seats:   []model.SeatIndex{{Row: 0, Col: 0}, {Row: 0, Col: 9}},
			Columns: []int{5},
		},
		Reserved: []model.SeatIndex{{Row: 0, Col: 3}, {Row: 4, Col: 2}, {Row: 4, Col: 3}, {Row: 6, Col: 7}},
		Selected: []model.SeatIndex{{Row: 1, Col: 1}, {Row: 3, Col: 7}, {Row: 9, Col: 3}},
	}
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}
