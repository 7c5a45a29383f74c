package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SEATPICKER_LAYOUT",
		"SEATPICKER_ALLOW_GAPS",
		"SEATPICKER_CURRENCY",
		"SEATPICKER_LOG_LEVEL",
		"SEATPICKER_LOG_FORMAT",
		"SEATPICKER_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := fromEnv()
	if cfg.Layout != "" || cfg.AllowGaps || cfg.Currency != "" {
		t.Fatalf("expected empty defaults, got %+v", cfg)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" || cfg.Log.File != "" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestFromEnv_Values(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEATPICKER_LAYOUT", "halls/main.yaml")
	t.Setenv("SEATPICKER_ALLOW_GAPS", "true")
	t.Setenv("SEATPICKER_CURRENCY", "€")
	t.Setenv("SEATPICKER_LOG_LEVEL", "debug")
	t.Setenv("SEATPICKER_LOG_FORMAT", "JSON")
	t.Setenv("SEATPICKER_LOG_FILE", "/tmp/seatpicker.log")

	cfg := fromEnv()
	if cfg.Layout != "halls/main.yaml" {
		t.Fatalf("expected layout from env, got %q", cfg.Layout)
	}
	if !cfg.AllowGaps {
		t.Fatal("expected gaps to be allowed")
	}
	if cfg.Currency != "€" {
		t.Fatalf("expected currency from env, got %q", cfg.Currency)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.Log.File != "/tmp/seatpicker.log" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestGetEnvBool_InvalidFallsBack(t *testing.T) {
	t.Setenv("SEATPICKER_ALLOW_GAPS", "maybe")
	if getEnvBool("SEATPICKER_ALLOW_GAPS", true) != true {
		t.Fatal("expected default for unparsable bool")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SEATPICKER_LAYOUT")
	os.Unsetenv("SEATPICKER_ALLOW_GAPS")

	path := filepath.Join(t.TempDir(), "test.env")
	body := "SEATPICKER_LAYOUT=demo.json\nSEATPICKER_ALLOW_GAPS=1\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Layout != "demo.json" || !cfg.AllowGaps {
		t.Fatalf("expected values from env file, got %+v", cfg)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for missing env file")
	}
}
