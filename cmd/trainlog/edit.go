// ABOUTME: CLI command for partially updating a training.
// ABOUTME: Only flags that were set are applied; the type tag is re-derived.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/models"
)

var (
	editDate        string
	editDuration    int
	editDescription string
	editCategory    string
	editGroup       string
	editSubtype     string
	editType        string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a training",
	Long: `Edit a training by id. Only the flags you pass are changed; the broad
type tag is re-derived from the new classification unless --type is given.

EXAMPLES:

  trainlog edit <id> --duration 75
  trainlog edit <id> --date 2025-06-02 --desc "presunuté"
  trainlog edit <id> --group Kardio --subtype Beh`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := models.TrainingPatch{}
		if cmd.Flags().Changed("date") {
			patch.Date = &editDate
		}
		if cmd.Flags().Changed("duration") {
			patch.Duration = &editDuration
		}
		if cmd.Flags().Changed("desc") {
			patch.Description = &editDescription
		}
		if cmd.Flags().Changed("category") {
			c := models.Category(editCategory)
			patch.Category = &c
		}
		if cmd.Flags().Changed("group") {
			g := models.Group(editGroup)
			patch.Group = &g
		}
		if cmd.Flags().Changed("subtype") {
			patch.Subtype = &editSubtype
		}
		if cmd.Flags().Changed("type") {
			t := models.TrainingType(editType)
			patch.Type = &t
		}

		rec, err := trainings.Update(args[0], patch)
		if err != nil {
			return fmt.Errorf("update training: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("training not found: %s", args[0])
		}

		color.Green("✓ Updated %s training", rec.Type)
		fmt.Printf("  %s %s  %d min\n",
			color.New(color.Faint).Sprint(rec.ID[:8]),
			rec.Date, rec.Duration)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editDate, "date", "", "training date (YYYY-MM-DD)")
	editCmd.Flags().IntVarP(&editDuration, "duration", "d", 0, "duration in minutes")
	editCmd.Flags().StringVar(&editDescription, "desc", "", "free-text description")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "category")
	editCmd.Flags().StringVarP(&editGroup, "group", "g", "", "conditioning group")
	editCmd.Flags().StringVarP(&editSubtype, "subtype", "s", "", "subtype detail")
	editCmd.Flags().StringVar(&editType, "type", "", "explicit type tag")
	rootCmd.AddCommand(editCmd)
}
