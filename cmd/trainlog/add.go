// ABOUTME: CLI command for logging a training session.
// ABOUTME: The broad type tag is derived from category/group/subtype unless given.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/models"
)

var (
	addDate        string
	addDuration    int
	addDescription string
	addCategory    string
	addGroup       string
	addSubtype     string
	addType        string
)

var addCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a"},
	Short:   "Log a training",
	Long: `Log a training session.

CLASSIFICATION:

  --category   Led | Kondice | Ucebna | Jine
  --group      Led | Silovy | Kardio | Mobilita  (for Kondice)
  --subtype    free-form detail (Individuál, Tímový, Beh, Spinning, ...)

  The broad type tag (Silový, Beh, Bicykel, ...) is derived from the
  classification automatically; pass --type to override it.

EXAMPLES:

  trainlog add --category Kondice --group Silovy --duration 60
  trainlog add --category Led --subtype Individuál --duration 90
  trainlog add --category Kondice --group Kardio --subtype Beh \
      --duration 45 --desc "intervaly 6x800m"
  trainlog add --date 2025-06-01 --duration 30 --desc "joga"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addDuration <= 0 {
			return fmt.Errorf("a positive --duration (minutes) is required")
		}

		rec, err := trainings.Add(models.TrainingDraft{
			Date:        addDate,
			Duration:    addDuration,
			Description: addDescription,
			Category:    models.Category(addCategory),
			Group:       models.Group(addGroup),
			Subtype:     addSubtype,
			Type:        models.TrainingType(addType),
		})
		if err != nil {
			return fmt.Errorf("add training: %w", err)
		}

		color.Green("✓ Logged %s training", rec.Type)
		fmt.Printf("  %s %s  %d min\n",
			color.New(color.Faint).Sprint(rec.ID[:8]),
			rec.Date, rec.Duration)

		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "training date (YYYY-MM-DD, default today)")
	addCmd.Flags().IntVarP(&addDuration, "duration", "d", 0, "duration in minutes")
	addCmd.Flags().StringVar(&addDescription, "desc", "", "free-text description")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category (Led, Kondice, Ucebna, Jine)")
	addCmd.Flags().StringVarP(&addGroup, "group", "g", "", "conditioning group (Led, Silovy, Kardio, Mobilita)")
	addCmd.Flags().StringVarP(&addSubtype, "subtype", "s", "", "subtype detail")
	addCmd.Flags().StringVar(&addType, "type", "", "explicit type tag (overrides derivation)")
	rootCmd.AddCommand(addCmd)
}
