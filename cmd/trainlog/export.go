// ABOUTME: CLI command for exporting all live records as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/models"
)

var exportOutput string

type exportDump struct {
	Trainings []models.TrainingRecord `json:"trainings"`
	Readiness []models.ReadinessEntry `json:"readiness"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON",
	Long: `Export all live trainings and readiness entries as one JSON document,
suitable for backup.

EXAMPLES:

  trainlog export                  # Print to stdout
  trainlog export -o backup.json   # Save to file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := trainings.GetAll()
		if err != nil {
			return fmt.Errorf("load trainings: %w", err)
		}
		rs, err := readiness.GetAll()
		if err != nil {
			return fmt.Errorf("load readiness: %w", err)
		}

		data, err := json.MarshalIndent(exportDump{Trainings: ts, Readiness: rs}, "", "  ")
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
