// ABOUTME: CLI command for weekly/monthly training stats.
// ABOUTME: Renders minute totals per bucket with a per-type breakdown.
package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/models"
	"github.com/harperreed/trainlog/internal/stats"
)

var statsWeekly bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Training stats",
	Long: `Show training minute totals per month (or per week with --weekly),
with a breakdown by training type.

EXAMPLES:

  trainlog stats            # Monthly totals
  trainlog stats --weekly   # Weekly totals (weeks start on Monday)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := trainings.GetAll()
		if err != nil {
			return fmt.Errorf("load trainings: %w", err)
		}
		if len(all) == 0 {
			fmt.Println("No trainings found.")
			return nil
		}

		var buckets map[string][]models.TrainingRecord
		if statsWeekly {
			buckets = stats.GroupByWeek(all)
		} else {
			buckets = stats.GroupByMonth(all)
		}

		keys := make([]string, 0, len(buckets))
		for k := range buckets {
			keys = append(keys, k)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		for _, k := range keys {
			items := buckets[k]
			bold.Printf("%s", k)
			fmt.Printf("  %s across %d trainings\n",
				stats.FormatMinutes(stats.SumMinutes(items)), len(items))

			byType := stats.MinutesByType(items)
			types := make([]string, 0, len(byType))
			for t := range byType {
				types = append(types, string(t))
			}
			sort.Slice(types, func(i, j int) bool {
				return byType[models.TrainingType(types[i])] > byType[models.TrainingType(types[j])]
			})
			for _, t := range types {
				fmt.Printf("  %s %s\n",
					faint.Sprint(padRight(t, 10)),
					stats.FormatMinutes(byType[models.TrainingType(t)]))
			}
		}

		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVarP(&statsWeekly, "weekly", "w", false, "bucket by week instead of month")
	rootCmd.AddCommand(statsCmd)
}
