// Package prefs persists operator preferences between engine sessions.
// Only the language is stored; game state never is.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

// Store loads and saves the preferred language.
type Store interface {
	// Language returns the saved language code, or "" when none is saved.
	Language(ctx context.Context) (string, error)

	// SaveLanguage records the language code.
	SaveLanguage(ctx context.Context, code string) error

	// Close releases the store's resources.
	Close() error
}

type fileConfig struct {
	Language string `json:"language"`
	LastUsed string `json:"last_used"`
}

// FileStore keeps preferences in a small JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// Ensure FileStore implements Store interface
var _ Store = (*FileStore)(nil)

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger, now: time.Now}
}

func (f *FileStore) Language(_ context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg fileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg.Language, nil
}

func (f *FileStore) SaveLanguage(_ context.Context, code string) error {
	cfg := fileConfig{
		Language: code,
		LastUsed: f.now().Format(time.DateTime),
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	f.logger.Debug("Saved language preference", "path", f.path, "language", code)
	return nil
}

func (f *FileStore) Close() error { return nil }
