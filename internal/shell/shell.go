// Package shell is the interactive command loop around the engine: it
// lists, picks and runs game files and manages the session language.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/jwebster45206/txr-engine/internal/library"
	"github.com/jwebster45206/txr-engine/internal/logger"
	"github.com/jwebster45206/txr-engine/internal/prefs"
	"github.com/jwebster45206/txr-engine/pkg/actor"
	"github.com/jwebster45206/txr-engine/pkg/engine"
	"github.com/jwebster45206/txr-engine/pkg/i18n"
)

// syntaxExamples is the second help page.
var syntaxExamples = []string{
	"say(Hello world!, Character, 2) -> Character say: Hello world! (with 2 sec delay)",
	"fight(50, 10, Goblin) -> Start fight with Goblin",
	"player(100, 15) -> Set player health 100 and damage 15",
	"select(Go left, Go right)",
	"    1:",
	"    say(You went left, System, 1)",
	"    2:",
	"    say(You went right, System, 1)",
}

// Display is the engine output plus the transcript the copy command
// reads.
type Display interface {
	engine.Output
	Transcript() string
	ResetTranscript()
}

// PickFunc lets the operator choose one of names. ok is false when the
// choice was cancelled.
type PickFunc func(ctx context.Context, title string, names []string) (choice string, ok bool, err error)

type Shell struct {
	lib    *library.Library
	tr     *i18n.Translator
	prefs  prefs.Store
	in     engine.Input
	out    Display
	pick   PickFunc
	copy   func(string) error
	opts   []engine.Option
	logger *slog.Logger

	// player holds the stats left by the most recent run.
	player actor.Player
}

type Option func(*Shell)

func WithPicker(p PickFunc) Option {
	return func(s *Shell) { s.pick = p }
}

func WithClipboard(f func(string) error) Option {
	return func(s *Shell) { s.copy = f }
}

// WithSessionOptions passes options to every engine session the shell starts.
func WithSessionOptions(opts ...engine.Option) Option {
	return func(s *Shell) { s.opts = append(s.opts, opts...) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

func New(lib *library.Library, tr *i18n.Translator, store prefs.Store, in engine.Input, out Display, opts ...Option) *Shell {
	s := &Shell{
		lib:    lib,
		tr:     tr,
		prefs:  store,
		in:     in,
		out:    out,
		copy:   clipboard.WriteAll,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Banner prints the welcome text.
func (s *Shell) Banner() {
	s.out.Title(s.tr.T("emulator_title"))
	s.out.Line(s.tr.T("only_txr"))
	s.out.Line(s.tr.T("enter_help"))
	s.out.Line(s.tr.T("enter_list"))
	s.out.Line(s.tr.T("current_lang", s.tr.LanguageName()))
}

// Run reads and executes commands until the operator exits, the input
// ends or ctx is cancelled. Only unexpected input failures are returned.
func (s *Shell) Run(ctx context.Context) error {
	s.Banner()
	for {
		line, err := s.in.ReadLine(ctx, s.tr.T("enter_command"))
		if err != nil {
			return s.shutdown(ctx, err)
		}

		quit, err := s.Execute(ctx, line)
		if err != nil {
			return s.shutdown(ctx, err)
		}
		if quit {
			return s.shutdown(ctx, nil)
		}
	}
}

func (s *Shell) shutdown(ctx context.Context, err error) error {
	s.out.Line(s.tr.T("emulator_shutdown"))
	switch {
	case err == nil, ctx.Err() != nil, errors.Is(err, io.EOF), errors.Is(err, engine.ErrInputClosed):
		s.logger.Info("Shell stopped", "reason", err)
		return nil
	default:
		logger.WithError(s.logger, err).Error("Shell stopped unexpectedly")
		return err
	}
}

// Execute runs one shell command. It reports true when the operator
// asked to leave. A returned error means input ended or ctx is done.
func (s *Shell) Execute(ctx context.Context, line string) (bool, error) {
	cmd := strings.TrimSpace(line)
	lower := strings.ToLower(cmd)

	switch {
	case cmd == "":
		return false, nil
	case lower == "help":
		return false, s.help(ctx)
	case strings.HasPrefix(lower, "run "):
		return false, s.runFile(ctx, strings.TrimSpace(cmd[4:]))
	case strings.HasPrefix(lower, "lang "):
		s.changeLanguage(ctx, strings.TrimSpace(cmd[5:]))
	case lower == "lang":
		s.out.Line(s.tr.T("current_lang", s.tr.LanguageName()))
		s.out.Line(s.tr.T("available_languages", s.tr.Available()))
	case lower == "list":
		s.list()
	case lower == "pick":
		return false, s.pickFile(ctx)
	case lower == "test":
		s.out.Line(s.tr.T("test_params", s.player.HP, s.player.Damage))
	case lower == "copy":
		s.copyTranscript()
	case lower == "exit", lower == "quit":
		return true, nil
	case library.HasExtension(lower):
		s.out.Line(s.tr.T("use_run_cmd"))
		s.out.Line(strings.Replace(s.tr.T("example_usage"), "game1.txr", cmd, 1))
	default:
		s.out.Error(s.tr.T("unknown_cmd", cmd))
		s.out.Line(s.tr.T("available_cmds"))
	}
	return false, nil
}

func (s *Shell) help(ctx context.Context) error {
	answer, err := s.in.ReadLine(ctx, s.tr.T("help_page"))
	if err != nil {
		return err
	}
	page, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		s.out.Error(s.tr.T("enter_number"))
		return nil
	}

	switch page {
	case 1:
		for _, key := range []string{
			"help_title", "run_cmd", "list_cmd", "pick_cmd", "say_cmd", "fight_cmd",
			"player_cmd", "player_add_cmd", "select_cmd", "lang_cmd", "copy_cmd", "exit_cmd",
		} {
			s.out.Line(s.tr.T(key))
		}
		s.out.Line(s.tr.T("available_languages", s.tr.Available()))
	case 2:
		s.out.Title(s.tr.T("syntax_title"))
		for _, ex := range syntaxExamples {
			s.out.Line(ex)
		}
	}
	return nil
}

// runFile validates name, loads it and runs it in a fresh session.
func (s *Shell) runFile(ctx context.Context, name string) error {
	if !library.HasExtension(name) {
		s.out.Error(s.tr.T("invalid_file_ext", name))
		s.out.Line(s.tr.T("example_usage"))
		return nil
	}

	name, stripped := library.StripSysPrefix(name)
	if stripped {
		s.out.Line(s.tr.T("sys_prefix_removed"))
	}

	stmts, err := s.lib.Load(name)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			s.out.Error(s.tr.T("file_not_found", name))
			s.out.Line(s.tr.T("file_lookup", s.lib.Path(name)))
			return nil
		}
		s.out.Error(s.tr.T("error", err))
		return nil
	}

	s.out.ResetTranscript()
	opts := append([]engine.Option{engine.WithLogger(s.logger)}, s.opts...)
	sess := engine.NewSession(s.in, s.out, s.tr, opts...)
	logger.WithRunID(s.logger, sess.ID.String()).Info("Running game file", "file", name, "statements", len(stmts))

	survived, err := sess.Run(ctx, stmts)
	s.player = *sess.Player
	if err != nil {
		return err
	}
	if survived {
		s.out.Line(s.tr.T("run_finished", name))
	} else {
		s.out.Line(s.tr.T("run_lost", name))
	}
	return nil
}

func (s *Shell) changeLanguage(ctx context.Context, code string) {
	if err := s.tr.SetLanguage(code); err != nil {
		s.out.Error(s.tr.T("invalid_lang", s.tr.Available()))
		return
	}
	s.out.Line(s.tr.T("lang_changed", s.tr.LanguageName()))

	if s.prefs == nil {
		return
	}
	if err := s.prefs.SaveLanguage(ctx, code); err != nil {
		logger.WithError(s.logger, err).Warn("Failed to save language preference", "language", code)
	}
}

func (s *Shell) list() {
	names, err := s.lib.List()
	if err != nil {
		s.out.Error(s.tr.T("error", err))
		return
	}

	s.out.Line(s.tr.T("available_files"))
	if len(names) == 0 {
		s.out.Line(s.tr.T("no_txr_files"))
		s.out.Line(s.tr.T("no_games_found"))
		return
	}
	for _, n := range names {
		s.out.Line(fmt.Sprintf("  - %s", n))
	}
}

func (s *Shell) pickFile(ctx context.Context) error {
	names, err := s.lib.List()
	if err != nil {
		s.out.Error(s.tr.T("error", err))
		return nil
	}
	if len(names) == 0 || s.pick == nil {
		s.out.Line(s.tr.T("no_games_found"))
		return nil
	}

	name, ok, err := s.pick(ctx, s.tr.T("available_files"), names)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.out.Error(s.tr.T("error", err))
		return nil
	}
	if !ok {
		s.out.Line(s.tr.T("pick_cancelled"))
		return nil
	}
	return s.runFile(ctx, name)
}

func (s *Shell) copyTranscript() {
	text := s.out.Transcript()
	if strings.TrimSpace(text) == "" {
		s.out.Line(s.tr.T("transcript_empty"))
		return
	}
	if err := s.copy(text); err != nil {
		s.out.Error(s.tr.T("error", err))
		return
	}
	s.out.Line(s.tr.T("transcript_copied"))
}
