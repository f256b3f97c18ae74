// Package engine runs preprocessed .txr scripts: it walks the statement
// cursor, dispatches commands and resolves select branches.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/txr-engine/pkg/actor"
	"github.com/jwebster45206/txr-engine/pkg/combat"
	"github.com/jwebster45206/txr-engine/pkg/script"
)

// ErrInputClosed is returned when the operator's input ends mid-run.
var ErrInputClosed = errors.New("input closed")

// Input acquires one line from the operator. It blocks until a line is
// available, the input ends, or ctx is done.
type Input interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Output receives everything the engine shows the operator.
type Output interface {
	Title(text string)
	Line(text string)
	Dialogue(text string)
	Error(text string)
}

// Translator localizes message keys.
type Translator interface {
	T(key string, args ...any) string
	Upper(s string) string
}

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Session is one script run. It owns the player for the run's duration.
type Session struct {
	ID     uuid.UUID
	Player *actor.Player

	in     Input
	out    Output
	tr     Translator
	dice   combat.Dice
	sleep  SleepFunc
	logger *slog.Logger
}

type Option func(*Session)

// WithDice replaces the enemy's random action source.
func WithDice(d combat.Dice) Option {
	return func(s *Session) { s.dice = d }
}

// WithSleep replaces the pause used by say delays.
func WithSleep(f SleepFunc) Option {
	return func(s *Session) { s.sleep = f }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session with a fresh zeroed player.
func NewSession(in Input, out Output, tr Translator, opts ...Option) *Session {
	s := &Session{
		ID:     uuid.New(),
		Player: &actor.Player{},
		in:     in,
		out:    out,
		tr:     tr,
		dice:   combat.NewRandomDice(),
		sleep:  Sleep,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("run_id", s.ID.String())
	return s
}

// Sleep waits for d unless ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes the statements from the top. It returns false when the
// player lost a fight, which ends the run early. A non-nil error means
// the operator's input ended or ctx was cancelled.
func (s *Session) Run(ctx context.Context, stmts []script.Statement) (bool, error) {
	r := &run{Session: s, stmts: stmts, cmds: script.ParseAll(stmts)}
	s.logger.Info("Script run started", "statements", len(stmts))

	survived, err := r.block(ctx, 0, false)
	if err != nil {
		s.logger.Info("Script run interrupted", "error", err)
		return false, err
	}
	s.logger.Info("Script run finished", "survived", survived, "hp", s.Player.HP, "damage", s.Player.Damage)
	return survived, nil
}
