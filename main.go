package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/code-trail/internal/config"
	"github.com/iburimskiy/code-trail/internal/game"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a JSON config file")
		variant    = flag.String("variant", config.VariantSymbols, "trail variant: symbols or dots")
		sound      = flag.Bool("sound", false, "play a tone when the trail is toggled")
		seed       = flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags given on the command line win over the file fields they name.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "variant":
			cfg = cfg.WithVariant(*variant)
		case "sound":
			cfg.Sound = *sound
		case "seed":
			cfg.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid settings", "err", err)
		os.Exit(1)
	}

	g, err := game.NewGame(cfg, logger)
	if err != nil {
		logger.Error("create game", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		g.Stop()
	}()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Code Trail - move the mouse, S: snapshot, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("starting", "variant", cfg.Variant, "sound", cfg.Sound)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("run game", "err", err)
		os.Exit(1)
	}
}
