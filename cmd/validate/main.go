package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/txr-engine/internal/library"
	"github.com/jwebster45206/txr-engine/pkg/actor"
	"github.com/jwebster45206/txr-engine/pkg/script"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <game.txr> [more.txr...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &ScriptValidator{}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}

	fmt.Println("Game files are valid!")
}

type ScriptValidator struct {
	errors []string
}

func (v *ScriptValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !library.HasExtension(baseName) {
		return fmt.Errorf("game file must have .txr extension: %s", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil
	v.validateScript(script.Preprocess(string(data)))

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *ScriptValidator) validateScript(stmts []script.Statement) {
	cmds := script.ParseAll(stmts)
	for i, cmd := range cmds {
		stmt := stmts[i]
		switch c := cmd.(type) {
		case script.Unrecognized:
			v.addError(stmt, "unrecognized statement %q", c.Text)
		case script.Fight:
			if _, err := actor.NewEnemy(c.HP, c.Damage, c.Name); err != nil {
				v.addError(stmt, "fight stats must be whole numbers: %v", err)
			}
		case script.SetPlayer:
			v.validateStat(stmt, "hp", c.HP)
			v.validateStat(stmt, "damage", c.Damage)
		case script.Select:
			v.validateSelect(stmt, c, cmds[i+1:])
		}
	}
}

func (v *ScriptValidator) validateStat(stmt script.Statement, field, raw string) {
	if _, err := actor.ParseStatSpec(raw); err != nil {
		v.addError(stmt, "player %s must be a whole number or 'add N': %q", field, raw)
	}
}

// validateSelect checks that every choice has a marker somewhere after
// the select.
func (v *ScriptValidator) validateSelect(stmt script.Statement, sel script.Select, rest []script.Command) {
	if len(sel.Options) < 2 {
		v.addError(stmt, "select needs at least 2 options, has %d", len(sel.Options))
		return
	}

	markers := make(map[int]bool)
	for _, cmd := range rest {
		if bm, ok := cmd.(script.BlockMarker); ok {
			markers[bm.Number] = true
		}
	}

	var missing []string
	for n := 1; n <= len(sel.Options); n++ {
		if !markers[n] {
			missing = append(missing, fmt.Sprintf("%d", n))
		}
	}
	if len(missing) > 0 {
		v.addError(stmt, "select has no block for choice %s", strings.Join(missing, ", "))
	}
}

func (v *ScriptValidator) addError(stmt script.Statement, format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf("  - line %d: ", stmt.Line)+fmt.Sprintf(format, args...))
}
