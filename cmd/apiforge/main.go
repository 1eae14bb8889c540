package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/lwang/apiforge/internal/api"
	"github.com/lwang/apiforge/internal/app"
	"github.com/lwang/apiforge/internal/credential"
	"github.com/lwang/apiforge/internal/logging"
	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/store"
)

func main() {
	// Optional .env for local development overrides.
	_ = godotenv.Load()

	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "apiforge: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apiforge: %v\n", err)
		os.Exit(1)
	}

	s, err := store.NewSQLiteStore(store.DefaultDBPath())
	if err != nil {
		log.WithError(err).Error("opening local cache")
		fmt.Fprintf(os.Stderr, "apiforge: opening local cache: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	tokens := credential.NewStore()
	client := api.NewClient(
		cfg.Server.BaseURL,
		tokens,
		time.Duration(cfg.Server.TimeoutSec)*time.Second,
	)

	log.WithField("backend", cfg.Server.BaseURL).Info("starting apiforge")

	program := tea.NewProgram(
		app.New(cfg, log, client, tokens, s),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		log.WithError(err).Error("program exited")
		fmt.Fprintf(os.Stderr, "apiforge: %v\n", err)
		os.Exit(1)
	}
}
