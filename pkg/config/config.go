// Package config holds the runtime settings and the persisted state of the
// schedule viewer.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
)

// Application identity shown in the About view and written to config.json
const (
	AppName     = "Schedule Manager"
	Version     = "1.0.0"
	Description = "University Schedule Management App"
)

const (
	DefaultLogFile = "schedule_app.log"
	DefaultAddr    = "127.0.0.1:8765"
)

// Config holds all application configuration
type Config struct {
	// Dir is where config.json lives
	Dir       string
	LogFile   string
	LogLevel  string
	LogFormat string
	Addr      string
}

// Load reads configuration from environment variables. Values from the
// given .env files (".env" when none are named) fill variables that are not
// already set; a missing file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	dir := getEnv("SCHEDULE_CONFIG_DIR", "")
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	return &Config{
		Dir:       dir,
		LogFile:   getEnv("SCHEDULE_LOG_FILE", DefaultLogFile),
		LogLevel:  getEnv("SCHEDULE_LOG_LEVEL", "info"),
		LogFormat: getEnv("SCHEDULE_LOG_FORMAT", "text"),
		Addr:      getEnv("SCHEDULE_ADDR", DefaultAddr),
	}, nil
}

// DefaultDir returns %APPDATA%\ScheduleManager on Windows (the home
// directory when APPDATA is unset) and ~/.config/schedulemanager elsewhere
func DefaultDir() (string, error) {
	if runtime.GOOS == "windows" {
		base := os.Getenv("APPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = home
		}
		return filepath.Join(base, "ScheduleManager"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "schedulemanager"), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
