// ABOUTME: CLI command for deleting a training.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a training",
	Long: `Delete a training by its full id.

CAUTION:

  This permanently deletes the record. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := trainings.GetByID(args[0])
		if err != nil {
			return fmt.Errorf("get training: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("training not found: %s", args[0])
		}

		if err := trainings.Remove(args[0]); err != nil {
			return fmt.Errorf("delete training: %w", err)
		}

		color.Yellow("✗ Deleted %s training", rec.Type)
		fmt.Printf("  %s %s  %d min\n",
			color.New(color.Faint).Sprint(rec.ID[:8]),
			rec.Date, rec.Duration)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
