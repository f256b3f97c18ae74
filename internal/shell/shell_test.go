package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jwebster45206/txr-engine/internal/console"
	"github.com/jwebster45206/txr-engine/internal/library"
	"github.com/jwebster45206/txr-engine/internal/prefs"
	"github.com/jwebster45206/txr-engine/pkg/combat"
	"github.com/jwebster45206/txr-engine/pkg/engine"
	"github.com/jwebster45206/txr-engine/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedInput struct {
	lines []string
}

func (s *scriptedInput) ReadLine(_ context.Context, _ string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

type alwaysAttack struct{}

func (alwaysAttack) EnemyAction() combat.Action { return combat.Attack }

type testShell struct {
	shell  *Shell
	buf    *bytes.Buffer
	out    *console.Styled
	games  string
	prefs  string
	copied []string
}

func newTestShell(t *testing.T, inputs []string, opts ...Option) *testShell {
	t.Helper()

	ts := &testShell{
		buf:   &bytes.Buffer{},
		games: filepath.Join(t.TempDir(), "games"),
		prefs: filepath.Join(t.TempDir(), "engine_config.json"),
	}
	ts.out = console.NewStyled(ts.buf, 0)

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	de := &i18n.Catalog{Code: "de", Name: "Deutsch", Messages: map[string]string{
		"lang_changed": "Sprache geändert: {}",
	}}
	tr := i18n.New(i18n.DefaultCatalog(), de)

	base := []Option{
		WithLogger(log),
		WithClipboard(func(s string) error { ts.copied = append(ts.copied, s); return nil }),
		WithSessionOptions(
			engine.WithDice(alwaysAttack{}),
			engine.WithSleep(func(context.Context, time.Duration) error { return nil }),
		),
	}
	ts.shell = New(library.New(ts.games), tr, prefs.NewFileStore(ts.prefs, log),
		&scriptedInput{lines: inputs}, ts.out, append(base, opts...)...)
	return ts
}

func (ts *testShell) addGame(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(ts.games, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ts.games, name), []byte(content), 0o644))
}

func TestShellBannerAndExit(t *testing.T) {
	ts := newTestShell(t, []string{"exit", "help"})

	require.NoError(t, ts.shell.Run(context.Background()))

	got := ts.buf.String()
	assert.Contains(t, got, "=== TXR GAME SYSTEM ===")
	assert.Contains(t, got, "Current language: English")
	assert.Contains(t, got, "Emulator shutting down...")
	assert.NotContains(t, got, "Page number", "nothing runs after exit")
}

func TestShellEndOfInput(t *testing.T) {
	ts := newTestShell(t, nil)
	require.NoError(t, ts.shell.Run(context.Background()))
	assert.Contains(t, ts.buf.String(), "Emulator shutting down...")
}

func TestShellRunGame(t *testing.T) {
	ts := newTestShell(t, []string{"run game1.txr", "test"})
	ts.addGame(t, "game1.txr", "# intro\nplayer(10, 3)\nsay(Hello, Bob)\n")

	require.NoError(t, ts.shell.Run(context.Background()))

	got := ts.buf.String()
	assert.Contains(t, got, "Bob say: Hello")
	assert.Contains(t, got, "--- game1.txr finished ---")
	assert.Contains(t, got, "Current parameters: HP=10, Damage=3")
}

func TestShellRunLost(t *testing.T) {
	ts := newTestShell(t, []string{"run dead.txr"})
	ts.addGame(t, "dead.txr", "fight(5, 1, Rat)\nsay(never, Bob)\n")

	require.NoError(t, ts.shell.Run(context.Background()))

	got := ts.buf.String()
	assert.Contains(t, got, "DEFEAT! Rat defeated you!")
	assert.Contains(t, got, "--- dead.txr ended in defeat ---")
	assert.NotContains(t, got, "never")
}

func TestShellRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []string
	}{
		{
			name:    "wrong extension",
			command: "run game1.txt",
			want:    []string{"Error: file 'game1.txt' must have .txr extension", "Example: run game1.txr"},
		},
		{
			name:    "missing file",
			command: "run nope.txr",
			want:    []string{"Error: file 'nope.txr' not found in 'games' directory", "Looked for file at:"},
		},
		{
			name:    "sys prefix",
			command: "run sys://nope.txr",
			want:    []string{"sys:// prefix removed", "file 'nope.txr' not found"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestShell(t, nil)
			quit, err := ts.shell.Execute(context.Background(), tt.command)
			require.NoError(t, err)
			assert.False(t, quit)
			for _, w := range tt.want {
				assert.Contains(t, ts.buf.String(), w)
			}
		})
	}
}

func TestShellRunInputEnds(t *testing.T) {
	ts := newTestShell(t, nil)
	ts.addGame(t, "ask.txr", "select(a, b)\n1:\nsay(x, y)\n")

	_, err := ts.shell.Execute(context.Background(), "run ask.txr")
	assert.ErrorIs(t, err, engine.ErrInputClosed)
}

func TestShellHelp(t *testing.T) {
	t.Run("page one", func(t *testing.T) {
		ts := newTestShell(t, []string{"1"})
		_, err := ts.shell.Execute(context.Background(), "HELP")
		require.NoError(t, err)
		assert.Contains(t, ts.buf.String(), "run [filename.txr]")
		assert.Contains(t, ts.buf.String(), "Available languages: en (English), de (Deutsch)")
	})

	t.Run("page two", func(t *testing.T) {
		ts := newTestShell(t, []string{"2"})
		_, err := ts.shell.Execute(context.Background(), "help")
		require.NoError(t, err)
		assert.Contains(t, ts.buf.String(), "Command syntax in .txr files:")
		assert.Contains(t, ts.buf.String(), "fight(50, 10, Goblin)")
	})

	t.Run("not a number", func(t *testing.T) {
		ts := newTestShell(t, []string{"two"})
		_, err := ts.shell.Execute(context.Background(), "help")
		require.NoError(t, err)
		assert.Contains(t, ts.buf.String(), "Please enter a number")
	})
}

func TestShellLanguage(t *testing.T) {
	ts := newTestShell(t, nil)
	ctx := context.Background()

	_, err := ts.shell.Execute(ctx, "lang de")
	require.NoError(t, err)
	assert.Contains(t, ts.buf.String(), "Sprache geändert: Deutsch")

	saved, err := prefs.NewFileStore(ts.prefs, slog.Default()).Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "de", saved)

	_, err = ts.shell.Execute(ctx, "lang xx")
	require.NoError(t, err)
	assert.Contains(t, ts.buf.String(), "invalid_lang", "de catalog has no message so the key is shown")
}

func TestShellList(t *testing.T) {
	ts := newTestShell(t, nil)

	_, err := ts.shell.Execute(context.Background(), "list")
	require.NoError(t, err)
	assert.Contains(t, ts.buf.String(), "(no .txr files in 'games' directory)")

	ts.addGame(t, "b.txr", "")
	ts.addGame(t, "a.txr", "")
	ts.buf.Reset()
	_, err = ts.shell.Execute(context.Background(), "list")
	require.NoError(t, err)
	assert.Contains(t, ts.buf.String(), "  - a.txr\n  - b.txr")
}

func TestShellPick(t *testing.T) {
	var offered []string
	picker := func(_ context.Context, _ string, names []string) (string, bool, error) {
		offered = names
		return "b.txr", true, nil
	}
	ts := newTestShell(t, nil, WithPicker(picker))
	ts.addGame(t, "a.txr", "")
	ts.addGame(t, "b.txr", "say(picked, Bob)")

	_, err := ts.shell.Execute(context.Background(), "pick")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txr", "b.txr"}, offered)
	assert.Contains(t, ts.buf.String(), "Bob say: picked")
}

func TestShellPickCancelled(t *testing.T) {
	picker := func(context.Context, string, []string) (string, bool, error) { return "", false, nil }
	ts := newTestShell(t, nil, WithPicker(picker))
	ts.addGame(t, "a.txr", "")

	_, err := ts.shell.Execute(context.Background(), "pick")
	require.NoError(t, err)
	assert.Contains(t, ts.buf.String(), "No file chosen")
}

func TestShellCopy(t *testing.T) {
	ts := newTestShell(t, nil)
	ctx := context.Background()

	_, err := ts.shell.Execute(ctx, "copy")
	require.NoError(t, err)
	assert.Contains(t, ts.buf.String(), "Nothing to copy yet")
	assert.Empty(t, ts.copied)

	ts.addGame(t, "g.txr", "say(Hi, Ann)")
	_, err = ts.shell.Execute(ctx, "run g.txr")
	require.NoError(t, err)
	_, err = ts.shell.Execute(ctx, "copy")
	require.NoError(t, err)

	require.Len(t, ts.copied, 1)
	assert.Contains(t, ts.copied[0], "Ann say: Hi")
	assert.Contains(t, ts.buf.String(), "Transcript copied to clipboard")
}

func TestShellCopyFails(t *testing.T) {
	ts := newTestShell(t, nil, WithClipboard(func(string) error { return errors.New("no clipboard") }))
	ts.out.Line("something")

	_, err := ts.shell.Execute(context.Background(), "copy")
	require.NoError(t, err)
	assert.Contains(t, ts.buf.String(), "Error: no clipboard")
}

func TestShellMisc(t *testing.T) {
	tests := []struct {
		command string
		want    []string
		quit    bool
	}{
		{command: "game1.txr", want: []string{"Use 'run' command to run file", "Example: run game1.txr"}},
		{command: "mygame.TXR", want: []string{"Example: run mygame.TXR"}},
		{command: "dance", want: []string{"Unknown command: dance", "Available commands:"}},
		{command: "   ", want: nil},
		{command: "QUIT", quit: true},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			ts := newTestShell(t, nil)
			quit, err := ts.shell.Execute(context.Background(), tt.command)
			require.NoError(t, err)
			assert.Equal(t, tt.quit, quit)
			for _, w := range tt.want {
				assert.Contains(t, ts.buf.String(), w)
			}
		})
	}
}

func TestShellCanceled(t *testing.T) {
	ts := newTestShell(t, []string{"list"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// scripted input ignores ctx, so cancellation is seen once input ends.
	require.NoError(t, ts.shell.Run(ctx))
}
