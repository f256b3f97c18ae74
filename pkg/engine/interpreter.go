package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/txr-engine/pkg/script"
)

type run struct {
	*Session
	stmts []script.Statement
	cmds  []script.Command
}

// block executes commands from position from onward. A branch body
// (body == true) stops at the next block marker; the top level treats
// markers as no-ops. It returns false as soon as a fight is lost.
func (r *run) block(ctx context.Context, from int, body bool) (bool, error) {
	for i := from; i < len(r.cmds); {
		switch cmd := r.cmds[i].(type) {
		case script.BlockMarker:
			if body {
				return true, nil
			}
			i++
		case script.Select:
			next, survived, err := r.branch(ctx, i, cmd)
			if err != nil || !survived {
				return survived, err
			}
			i = next
		default:
			survived, err := r.exec(ctx, i)
			if err != nil || !survived {
				return survived, err
			}
			i++
		}
	}
	return true, nil
}

// branch resolves the select at position i and returns where the
// cursor continues.
//
// Markers are matched by number wherever they appear after the select,
// so "2:" before "1:" still finds "1:". Every other marker, lower or
// higher than the choice, has its body scanned past without running.
// The scan consumes the rest of the script: after the chosen body runs
// the remaining blocks are never revisited, and when no marker matches
// the select silently does nothing.
func (r *run) branch(ctx context.Context, i int, sel script.Select) (int, bool, error) {
	if len(sel.Options) < 2 {
		r.out.Error(r.tr.T("select_min_options"))
		r.logger.Warn("Select needs at least two options", "line", r.stmts[i].Line, "options", len(sel.Options))
		return i + 1, true, nil
	}

	choice, err := r.choose(ctx, sel.Options)
	if err != nil {
		return 0, false, err
	}

	for j := i + 1; j < len(r.cmds); j++ {
		bm, ok := r.cmds[j].(script.BlockMarker)
		if !ok || bm.Number != choice {
			continue
		}
		r.logger.Debug("Entering branch", "choice", choice, "line", r.stmts[j].Line)
		survived, err := r.block(ctx, j+1, true)
		return len(r.cmds), survived, err
	}

	r.logger.Debug("No block for choice", "choice", choice, "line", r.stmts[i].Line)
	return len(r.cmds), true, nil
}

// choose prints the options and reads a 1-based choice, asking again
// until the answer is a number in range.
func (r *run) choose(ctx context.Context, options []string) (int, error) {
	r.out.Title(r.tr.T("choice_title"))
	for n, opt := range options {
		r.out.Line(fmt.Sprintf("%d. %s", n+1, opt))
	}

	for {
		line, err := r.read(ctx, r.tr.T("choose_option", len(options)))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil:
			r.out.Error(r.tr.T("enter_number"))
		case n < 1 || n > len(options):
			r.out.Error(r.tr.T("number_range", len(options)))
		default:
			r.out.Line(r.tr.T("chosen_option", options[n-1]))
			return n, nil
		}
	}
}

// exec runs a single non-branching command.
func (r *run) exec(ctx context.Context, i int) (bool, error) {
	stmt := r.stmts[i]
	switch cmd := r.cmds[i].(type) {
	case script.Say:
		r.out.Dialogue(r.tr.T("dialogue_format", cmd.Speaker, cmd.Text))
		if err := r.sleep(ctx, cmd.Delay); err != nil {
			return false, err
		}
	case script.Fight:
		return r.fight(ctx, stmt, cmd)
	case script.SetPlayer:
		if err := r.Player.SetRaw(cmd.HP, cmd.Damage); err != nil {
			r.out.Error(r.tr.T("invalid_player", stmt.Text))
			r.logger.Warn("Skipping player statement", "line", stmt.Line, "error", err)
		}
	case script.Unrecognized:
		r.logger.Debug("Skipping unrecognized statement", "line", stmt.Line, "text", stmt.Text)
	}
	return true, nil
}

// read wraps Input.ReadLine so that every failure maps to either the
// context's error or ErrInputClosed.
func (r *run) read(ctx context.Context, prompt string) (string, error) {
	line, err := r.in.ReadLine(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %w", ErrInputClosed, err)
	}
	return line, nil
}
