package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const fileName = "config.json"

// state is the content of config.json
type state struct {
	LastPDFPath string `json:"last_pdf_path"`
	Version     string `json:"version"`
}

// Store persists the last opened PDF in the config directory
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir. The directory is created on the
// first save.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Path returns the location of config.json
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// SaveLastPDFPath records path as the last opened schedule
func (s *Store) SaveLastPDFPath(path string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(state{LastPDFPath: path, Version: Version}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		s.logger.Error("Failed to save configuration", "path", s.Path(), "error", err)
		return fmt.Errorf("write config: %w", err)
	}

	s.logger.Info("Configuration saved successfully", "path", s.Path())
	return nil
}

// LoadLastPDFPath returns the last opened schedule if that file still
// exists. Unreadable or corrupt config yields "".
func (s *Store) LoadLastPDFPath() string {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("Error loading configuration", "path", s.Path(), "error", err)
		}
		return ""
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Error("Error loading configuration", "path", s.Path(), "error", err)
		return ""
	}

	if st.LastPDFPath == "" {
		return ""
	}
	if _, err := os.Stat(st.LastPDFPath); err != nil {
		return ""
	}

	s.logger.Info("Loaded last PDF path", "path", st.LastPDFPath)
	return st.LastPDFPath
}
