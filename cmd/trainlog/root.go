// ABOUTME: Root Cobra command for trainlog CLI.
// ABOUTME: Opens config and storage in PersistentPreRunE, closes in PersistentPostRunE.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/config"
	"github.com/harperreed/trainlog/internal/identity"
	"github.com/harperreed/trainlog/internal/kv"
	"github.com/harperreed/trainlog/internal/logger"
	"github.com/harperreed/trainlog/internal/settings"
	"github.com/harperreed/trainlog/internal/store"
)

var (
	cfg       *config.Config
	backend   kv.Backend
	ident     *identity.Provider
	trainings *store.TrainingStore
	readiness *store.ReadinessStore
	prefs     *settings.Store

	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "trainlog",
	Short: "Personal training journal",
	Long: `Trainlog is a CLI training journal for athletes: log trainings,
track daily readiness, and follow monthly goals.

TRAININGS:

  $ trainlog add --category Kondice --group Silovy --duration 60
  $ trainlog add --category Led --subtype Individuál --duration 90
  $ trainlog list                      # Newest first, paginated
  $ trainlog show <id>                 # Full record
  $ trainlog edit <id> --duration 75   # Partial update
  $ trainlog delete <id>

READINESS:

  A short daily survey (sleep, fatigue, stress, ...) scored 0-10.
  One entry per day; logging again overwrites it.

  $ trainlog readiness log --sleep 8 --fatigue 3
  $ trainlog readiness show
  $ trainlog readiness range 2025-06-01 2025-06-30

STATS AND GOALS:

  $ trainlog stats                     # Weekly/monthly minute totals
  $ trainlog goals                     # Monthly goal progress
  $ trainlog goals set Kondice:Silovy 8

DATA STORAGE:

  Records live in a local Badger database under ~/.local/share/trainlog.
  Set backend to "charm" in ~/.config/trainlog/config.json to sync via
  Charm Cloud instead. Legacy single-blob data from older versions is
  migrated automatically on first read.

MCP INTEGRATION:

  Run 'trainlog mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(debugFlag || cfg.Debug)

		backend, err = cfg.OpenBackend()
		if err != nil {
			return fmt.Errorf("open storage backend: %w", err)
		}

		ident = identity.NewProvider(backend)
		trainings = store.NewTrainingStore(backend, ident)
		readiness = store.NewReadinessStore(backend, ident)
		prefs = settings.NewStore(backend)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if backend != nil {
			return backend.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}
