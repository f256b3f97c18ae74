// Package i18n looks up and formats user facing messages.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnknownLanguage = errors.New("unknown language")

// Translator resolves message keys in the active language.
type Translator struct {
	catalogs map[string]*Catalog
	order    []string
	current  string
}

// New builds a translator over the given catalogs. The first catalog
// is active until SetLanguage is called.
func New(catalogs ...*Catalog) *Translator {
	t := &Translator{catalogs: make(map[string]*Catalog)}
	for _, c := range catalogs {
		if _, dup := t.catalogs[c.Code]; !dup {
			t.order = append(t.order, c.Code)
		}
		t.catalogs[c.Code] = c
	}
	if len(t.order) > 0 {
		t.current = t.order[0]
	}
	if _, ok := t.catalogs[DefaultLanguage]; ok {
		t.current = DefaultLanguage
	}
	return t
}

// T returns the message for key formatted with args. An unknown key is
// returned unchanged, and a template that cannot be formatted is
// returned without substitution.
func (t *Translator) T(key string, args ...any) string {
	c, ok := t.catalogs[t.current]
	if !ok {
		return key
	}
	tmpl, ok := c.Messages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	s, err := Format(tmpl, args...)
	if err != nil {
		return tmpl
	}
	return s
}

// SetLanguage switches the active catalog.
func (t *Translator) SetLanguage(code string) error {
	if _, ok := t.catalogs[code]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLanguage, code)
	}
	t.current = code
	return nil
}

// Language returns the active language code.
func (t *Translator) Language() string {
	return t.current
}

// LanguageName returns the display name of the active language.
func (t *Translator) LanguageName() string {
	if c, ok := t.catalogs[t.current]; ok {
		return c.Name
	}
	return displayName(DefaultLanguage)
}

// Available lists the loaded languages as "code (Name)".
func (t *Translator) Available() string {
	parts := make([]string, 0, len(t.order))
	for _, code := range t.order {
		parts = append(parts, fmt.Sprintf("%s (%s)", code, t.catalogs[code].Name))
	}
	return strings.Join(parts, ", ")
}

// Upper upper-cases s using the active language's casing rules.
func (t *Translator) Upper(s string) string {
	tag, err := language.Parse(t.current)
	if err != nil {
		tag = language.Und
	}
	return cases.Upper(tag).String(s)
}
