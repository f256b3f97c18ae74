package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/txr-engine/internal/config"
	"github.com/jwebster45206/txr-engine/internal/console"
	"github.com/jwebster45206/txr-engine/internal/library"
	"github.com/jwebster45206/txr-engine/internal/logger"
	"github.com/jwebster45206/txr-engine/internal/prefs"
	"github.com/jwebster45206/txr-engine/internal/shell"
	"github.com/jwebster45206/txr-engine/pkg/combat"
	"github.com/jwebster45206/txr-engine/pkg/engine"
	"github.com/jwebster45206/txr-engine/pkg/i18n"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Install(cfg)
	log.Info("Starting TXR engine",
		"games_dir", cfg.GamesDir,
		"langs_dir", cfg.LangsDir,
		"environment", cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogs, err := i18n.LoadDir(cfg.LangsDir, log)
	if err != nil {
		log.Error("Failed to load translations", "error", err)
		os.Exit(1)
	}
	tr := i18n.New(catalogs...)

	storeCtx, storeCancel := context.WithTimeout(ctx, 10*time.Second)
	defer storeCancel()
	store, err := prefs.Open(storeCtx, cfg.RedisURL, cfg.ConfigFile, log)
	if err != nil {
		log.Error("Failed to open preference store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing preference store", "error", err)
		}
	}()

	code := cfg.Language
	if saved, err := store.Language(storeCtx); err != nil {
		log.Warn("Failed to read saved language", "error", err)
	} else if saved != "" {
		code = saved
	}
	if err := tr.SetLanguage(code); err != nil {
		log.Warn("Language not available, keeping default", "language", code, "active", tr.Language())
	}

	lib := library.New(cfg.GamesDir)
	if _, err := lib.List(); err != nil {
		log.Warn("Games directory unavailable", "dir", cfg.GamesDir, "error", err)
	}

	in := console.NewLineReader(os.Stdin, os.Stdout)
	out := console.NewStyled(os.Stdout, cfg.WrapWidth)
	picker := func(ctx context.Context, title string, names []string) (string, bool, error) {
		return console.Pick(ctx, os.Stdin, os.Stdout, title, names)
	}

	dice := combat.NewRandomDice()
	if cfg.DiceSeed != 0 {
		dice = combat.NewRollerDice(d20.NewRoller(cfg.DiceSeed))
		log.Info("Using seeded dice", "seed", cfg.DiceSeed)
	}

	sh := shell.New(lib, tr, store, in, out,
		shell.WithPicker(picker),
		shell.WithSessionOptions(engine.WithDice(dice)),
		shell.WithLogger(log))
	if err := sh.Run(ctx); err != nil {
		log.Error("Engine stopped with error", "error", err)
		os.Exit(1)
	}
}
