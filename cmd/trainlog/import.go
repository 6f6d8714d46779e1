// ABOUTME: CLI command for importing a health-platform workout export file.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	hsync "github.com/harperreed/trainlog/internal/sync"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import workouts from a health export",
	Long: `Import workouts from a health-platform JSON export file.

The file is an array of workouts:

  [{"id": "...", "start": "2025-06-10T07:00:00Z",
    "end": "2025-06-10T07:45:00Z", "type": "running",
    "distanceMeters": 8000}]

Each workout becomes a Kondice/Kardio training with the type normalized
(running -> Beh, cycling -> Bicykel, ...). Workouts matching an existing
training on the same day with a similar duration and distance are skipped.

EXAMPLES:

  trainlog import export.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := hsync.NewImporter(trainings).ImportFile(args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		if created == 0 {
			fmt.Println("Nothing to import (all workouts already present).")
			return nil
		}
		color.Green("✓ Imported %d trainings from %s", created, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
