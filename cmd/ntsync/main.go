package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"ntsync/internal/api"
	"ntsync/internal/app"
	"ntsync/internal/config"
	"ntsync/internal/log"
	"ntsync/internal/player"
	"ntsync/internal/progress"
	"ntsync/internal/queue"
	"ntsync/internal/store"
	"ntsync/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("ntsync %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("ntsync needs an interactive terminal")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.Setup(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting ntsync", "version", Version)

	db, err := store.Open(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer db.Close()

	state := app.New(db, logger, nil)
	tracker := progress.NewTracker(db, logger)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	q := queue.New(rng)
	pl := player.New(q, state.Settings().Autoplay && cfg.Player.Autoplay, logger)
	pl.SetVolume(cfg.Player.Volume)

	var client *api.Client
	if cfg.Backend.URL != "" {
		client = api.NewClient(cfg.Backend.URL, time.Duration(cfg.Backend.Timeout)*time.Second, logger)
	}

	model := tui.NewModel(state, q, pl, tracker, client, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
