// ABOUTME: CLI command for running the storage migration explicitly.
// ABOUTME: Migration also happens lazily on first read; this forces it now.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate legacy data",
	Long: `Upgrade data written by older versions into the current storage layout.

Older versions stored all trainings in one JSON blob ("treninky",
later "treninky_v2") and readiness entries likewise ("readiness",
"readiness_v1", "readiness_v2"). The current layout keeps one KV cell
per record plus an ordered per-user index.

Migration normally happens automatically the first time data is read;
this command just forces it immediately. It is safe to run repeatedly:
data already in the current layout is left untouched, and the legacy
keys stay in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := trainings.EnsureIndex(); err != nil {
			return fmt.Errorf("migrate trainings: %w", err)
		}
		if err := readiness.EnsureIndex(); err != nil {
			return fmt.Errorf("migrate readiness: %w", err)
		}

		color.Green("✓ Storage is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
