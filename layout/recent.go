package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

const maxRecentLayouts = 8

var ErrInvalidHistory = errors.New("invalid layout history format")

// RecentLayout is one entry of the recently opened layouts list. Only the
// file location is kept, never seat state.
type RecentLayout struct {
	Key      string    `json:"key"`
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
}

type layoutHistory struct {
	Layouts []RecentLayout `json:"layouts"`
}

func LoadRecentLayouts() ([]RecentLayout, error) {
	path, err := configPath("layouts.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history layoutHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, ErrInvalidHistory
	}
	return history.Layouts, nil
}

// RememberLayout moves the layout to the front of the recent list. Entries
// with the same slug key or the same absolute path are replaced. An unreadable
// history file is left in place and reported.
func RememberLayout(name string, path string) error {
	name = strings.TrimSpace(name)
	path = strings.TrimSpace(path)
	if name == "" || path == "" {
		return errors.New("layout name and path are required")
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	history, err := LoadRecentLayouts()
	if err != nil {
		return fmt.Errorf("read layout history: %w", err)
	}
	key := slug.Make(name)
	next := []RecentLayout{{Key: key, Name: name, Path: path, OpenedAt: time.Now().UTC()}}
	for _, existing := range history {
		if existing.Key == key || existing.Path == path {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentLayouts {
			break
		}
	}
	return saveRecentLayouts(next)
}

func saveRecentLayouts(layouts []RecentLayout) error {
	path, err := configPath("layouts.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(layoutHistory{Layouts: layouts}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
