package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the CLI. Command-line flags override
// these values.
type Config struct {
	// Layout file opened when none is given on the command line.
	Layout    string
	AllowGaps bool
	// Currency overrides the layout's own currency symbol when set.
	Currency string

	Log LogConfig
}

type LogConfig struct {
	Level  string
	Format string
	// File receives the log output; empty discards it.
	File string
}

// Load reads an optional .env file from the working directory, then the
// SEATPICKER_* environment variables.
func Load() Config {
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFile is Load with an explicit env file. A missing file is an error.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil {
		return Config{}, err
	}
	return fromEnv(), nil
}

func fromEnv() Config {
	return Config{
		Layout:    getEnv("SEATPICKER_LAYOUT", ""),
		AllowGaps: getEnvBool("SEATPICKER_ALLOW_GAPS", false),
		Currency:  getEnv("SEATPICKER_CURRENCY", ""),
		Log: LogConfig{
			Level:  getEnv("SEATPICKER_LOG_LEVEL", "info"),
			Format: strings.ToLower(getEnv("SEATPICKER_LOG_FORMAT", "text")),
			File:   getEnv("SEATPICKER_LOG_FILE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
