// Package library finds and loads .txr game files from the games directory.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/txr-engine/pkg/script"
)

// Extension is the only file extension the engine runs.
const Extension = ".txr"

// SysPrefix is accepted in front of run targets and removed.
const SysPrefix = "sys://"

var (
	ErrInvalidExtension = errors.New("file must have .txr extension")
	ErrNotFound         = errors.New("game file not found")
)

// Library is a directory of game files.
type Library struct {
	Dir string
}

func New(dir string) *Library {
	return &Library{Dir: dir}
}

// HasExtension reports whether name ends in .txr, ignoring case.
func HasExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), Extension)
}

// StripSysPrefix removes a leading sys:// and reports whether it was present.
func StripSysPrefix(name string) (string, bool) {
	if rest, ok := strings.CutPrefix(name, SysPrefix); ok {
		return rest, true
	}
	return name, false
}

// Path returns where name is looked up.
func (l *Library) Path(name string) string {
	return filepath.Join(l.Dir, name)
}

// ensureDir creates the games directory when it does not exist yet.
func (l *Library) ensureDir() error {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create games directory: %w", err)
	}
	return nil
}

// List returns the .txr file names in the directory, sorted.
func (l *Library) List() ([]string, error) {
	if err := l.ensureDir(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read games directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !HasExtension(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load reads name from the directory and preprocesses it. name must
// already be free of any sys:// prefix.
func (l *Library) Load(name string) ([]script.Statement, error) {
	if !HasExtension(name) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, name)
	}
	if err := l.ensureDir(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read game file: %w", err)
	}
	return script.Preprocess(string(data)), nil
}
