package i18n

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLanguage = "en"
	nameKey         = "language_name"
)

//go:embed locales/en.json
var defaultEnglish []byte

// Catalog is the message set for one language.
type Catalog struct {
	Code     string
	Name     string
	Messages map[string]string
}

// DefaultCatalog returns the built-in English catalog.
func DefaultCatalog() *Catalog {
	c, err := parseCatalog(DefaultLanguage, ".json", defaultEnglish)
	if err != nil {
		// the embedded file is part of the build
		panic(fmt.Sprintf("i18n: embedded catalog: %v", err))
	}
	return c
}

// LoadDir reads every *.json, *.yaml and *.yml file in dir as a catalog
// named after the file. The directory is created if missing, and the
// default English catalog is written to it when no catalog exists.
// Files that cannot be read or decoded are skipped with a warning.
func LoadDir(dir string, logger *slog.Logger) ([]*Catalog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create langs directory: %w", err)
	}

	catalogs, err := readCatalogs(dir, logger)
	if err != nil {
		return nil, err
	}
	if len(catalogs) > 0 {
		return catalogs, nil
	}

	path := filepath.Join(dir, DefaultLanguage+".json")
	if err := os.WriteFile(path, defaultEnglish, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write default catalog: %w", err)
	}
	logger.Info("Wrote default language file", "path", path)
	return []*Catalog{DefaultCatalog()}, nil
}

func readCatalogs(dir string, logger *slog.Logger) ([]*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read langs directory: %w", err)
	}

	var catalogs []*Catalog
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable language file", "path", path, "error", err)
			continue
		}
		code := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		c, err := parseCatalog(code, ext, data)
		if err != nil {
			logger.Warn("Skipping invalid language file", "path", path, "error", err)
			continue
		}
		catalogs = append(catalogs, c)
	}

	sort.Slice(catalogs, func(i, j int) bool { return catalogs[i].Code < catalogs[j].Code })
	return catalogs, nil
}

func parseCatalog(code, ext string, data []byte) (*Catalog, error) {
	msgs := make(map[string]string)
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("failed to decode %s catalog: %w", code, err)
		}
	default:
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("failed to decode %s catalog: %w", code, err)
		}
	}

	name := msgs[nameKey]
	if name == "" {
		name = displayName(code)
	}
	return &Catalog{Code: code, Name: name, Messages: msgs}, nil
}

// displayName returns the language's own name for its code, e.g.
// "Deutsch" for "de", falling back to the upper-cased code.
func displayName(code string) string {
	tag, err := language.Parse(code)
	if err == nil {
		if name := display.Self.Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(code)
}
