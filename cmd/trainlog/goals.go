// ABOUTME: CLI commands for monthly goals: progress view and target editing.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/models"
	"github.com/harperreed/trainlog/internal/settings"
	"github.com/harperreed/trainlog/internal/stats"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Monthly goal progress",
	Long: `Show this month's progress against your session targets.

GOAL BUCKETS:

  Led:Individuál     individual ice sessions
  Led:Tímový         team ice sessions
  Kondice:Silovy     strength sessions
  Kondice:Kardio     cardio sessions
  Kondice:Mobilita   mobility sessions

EXAMPLES:

  trainlog goals                        # This month's progress
  trainlog goals set Kondice:Silovy 8   # 8 strength sessions per month
  trainlog goals set Kondice:Silovy 0   # Remove the target`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := prefs.Get()
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		all, err := trainings.GetAll()
		if err != nil {
			return fmt.Errorf("load trainings: %w", err)
		}

		month := stats.MonthKey(models.Today())
		var monthRecords []models.TrainingRecord
		for _, rec := range all {
			if stats.MonthKey(rec.Date) == month {
				monthRecords = append(monthRecords, rec)
			}
		}

		progress := settings.MonthlyProgress(cfg, monthRecords)
		if len(progress) == 0 && cfg.MonthlyMinutesTarget == 0 {
			fmt.Println("No goals set. Use 'trainlog goals set <bucket> <count>'.")
			return nil
		}

		bold := color.New(color.Bold)
		bold.Printf("%s\n", month)
		for _, p := range progress {
			mark := " "
			if p.Target > 0 && p.Done >= p.Target {
				mark = color.GreenString("✓")
			}
			if p.Target > 0 {
				fmt.Printf("%s %s %d/%d\n", mark, padRight(string(p.Key), 18), p.Done, p.Target)
			} else {
				fmt.Printf("%s %s %d\n", mark, padRight(string(p.Key), 18), p.Done)
			}
		}

		if cfg.MonthlyMinutesTarget > 0 {
			total := stats.SumMinutes(monthRecords)
			fmt.Printf("  %s %s / %s\n", padRight("minutes", 18),
				stats.FormatMinutes(total), stats.FormatMinutes(cfg.MonthlyMinutesTarget))
		}

		return nil
	},
}

var goalsSetCmd = &cobra.Command{
	Use:   "set <bucket> <count>",
	Short: "Set a monthly session target",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := settings.GoalKey(args[0])
		valid := false
		for _, k := range settings.GoalKeys {
			if k == key {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown goal bucket: %s", args[0])
		}

		count, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid count: %s", args[1])
		}

		if err := prefs.UpsertMonthlyTarget(key, count); err != nil {
			return fmt.Errorf("save target: %w", err)
		}

		if count <= 0 {
			color.Yellow("✗ Removed target for %s", key)
		} else {
			color.Green("✓ Target for %s: %.0f/month", key, count)
		}
		return nil
	},
}

var goalsMinutesCmd = &cobra.Command{
	Use:   "minutes <count>",
	Short: "Set the total monthly minutes target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count: %s", args[0])
		}

		cfg, err := prefs.Get()
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		cfg.MonthlyMinutesTarget = count
		if count < 0 {
			cfg.MonthlyMinutesTarget = 0
		}
		if err := prefs.Save(cfg); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}

		color.Green("✓ Monthly minutes target: %d", cfg.MonthlyMinutesTarget)
		return nil
	},
}

func init() {
	goalsCmd.AddCommand(goalsSetCmd)
	goalsCmd.AddCommand(goalsMinutesCmd)
	rootCmd.AddCommand(goalsCmd)
}
