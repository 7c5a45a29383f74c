package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"seatpicker-cli/model"
	"seatpicker-cli/store"
)

func setTestConfigDir(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("AppData", root)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"hall.json", "hall.yaml", "hall.yml"} {
		path := filepath.Join(dir, name)
		if err := Save(path, Demo()); err != nil {
			t.Fatalf("%s: expected nil error, got %v", name, err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("%s: expected nil error, got %v", name, err)
		}
		if cfg.Name != "Demo hall" || cfg.Rows != 10 || cfg.Columns != 10 {
			t.Fatalf("%s: unexpected layout: %+v", name, cfg)
		}
		if len(cfg.Types) != 3 || cfg.Types[1].Price != 25 || len(cfg.Types[2].Rows) != 3 {
			t.Fatalf("%s: unexpected types: %+v", name, cfg.Types)
		}
		if len(cfg.Disabled.Columns) != 1 || cfg.Disabled.Columns[0] != 5 {
			t.Fatalf("%s: unexpected disabled columns: %+v", name, cfg.Disabled)
		}
		if len(cfg.Selected) != 3 || cfg.Selected[2] != (model.SeatIndex{Row: 9, Col: 3}) {
			t.Fatalf("%s: unexpected selected seats: %+v", name, cfg.Selected)
		}
	}
}

func TestLoad_NameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small-room.yaml")
	body := "rows: 2\ncolumns: 3\nreserved:\n  - {row: 1, col: 2}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Name != "small-room" {
		t.Fatalf("expected name from file, got %q", cfg.Name)
	}
	if len(cfg.Reserved) != 1 || cfg.Reserved[0] != (model.SeatIndex{Row: 1, Col: 2}) {
		t.Fatalf("unexpected reserved seats: %+v", cfg.Reserved)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}

	txt := filepath.Join(dir, "hall.txt")
	if err := os.WriteFile(txt, []byte("rows: 1"), 0o644); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := Load(txt); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{rows"), 0o644); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := Load(broken); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDemo_BuildsStore(t *testing.T) {
	s, err := store.New(Demo())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if s.CountCartItems() != 3 {
		t.Fatalf("expected 3 seeded seats, got %d", s.CountCartItems())
	}
	if got := s.CartTotal(); got != 25+10+7.5 {
		t.Fatalf("expected total 42.5, got %v", got)
	}
}

func TestRememberLayout_Dedupe(t *testing.T) {
	setTestConfigDir(t)

	recent, err := LoadRecentLayouts()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected no recent layouts, got %+v", recent)
	}

	if err := RememberLayout("Main Hall", "/tmp/main.json"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := RememberLayout("Side Room", "/tmp/side.json"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := RememberLayout("main hall", "/tmp/main-v2.json"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	recent, err = LoadRecentLayouts()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent layouts, got %+v", recent)
	}
	if recent[0].Key != "main-hall" || recent[0].Path != "/tmp/main-v2.json" {
		t.Fatalf("expected refreshed main hall first, got %+v", recent[0])
	}
	if recent[1].Name != "Side Room" {
		t.Fatalf("expected side room second, got %+v", recent[1])
	}
}

func TestRememberLayout_Cap(t *testing.T) {
	setTestConfigDir(t)

	for i := 0; i < maxRecentLayouts+3; i++ {
		name := "Hall " + string(rune('A'+i))
		if err := RememberLayout(name, filepath.Join("/tmp", name+".json")); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	recent, err := LoadRecentLayouts()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(recent) != maxRecentLayouts {
		t.Fatalf("expected %d layouts, got %d", maxRecentLayouts, len(recent))
	}
}

func TestRememberLayout_KeepsCorruptHistory(t *testing.T) {
	setTestConfigDir(t)

	path, err := configPath("layouts.json")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	err = RememberLayout("Main Hall", "/tmp/main.json")
	if !errors.Is(err, ErrInvalidHistory) {
		t.Fatalf("expected invalid history error, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if string(data) != "{not json" {
		t.Fatalf("expected history file untouched, got %q", data)
	}
}

func TestRememberLayout_InvalidInput(t *testing.T) {
	setTestConfigDir(t)

	if err := RememberLayout("", "/tmp/a.json"); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := RememberLayout("A", " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
