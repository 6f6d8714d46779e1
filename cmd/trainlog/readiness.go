// ABOUTME: CLI commands for the daily readiness survey.
// ABOUTME: log/show/range/delete subcommands; one live entry per day.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/models"
)

var readinessDate string

var readinessCmd = &cobra.Command{
	Use:     "readiness",
	Aliases: []string{"r"},
	Short:   "Daily readiness survey",
	Long: `Track daily readiness: a short survey scored 0-10.

Questions are answered on a 0-10 scale. For load, soreness, fatigue,
stress, injury, illness, and menstrual, higher means worse; for sleep,
nutrition, mood, and energy, higher means better. Unanswered questions
take neutral defaults.

One entry per day: logging again overwrites that day's answers.

EXAMPLES:

  trainlog readiness log --sleep 8 --fatigue 3 --stress 2
  trainlog readiness show
  trainlog readiness show --date 2025-06-01
  trainlog readiness range 2025-06-01 2025-06-30
  trainlog readiness delete --date 2025-06-01`,
}

var (
	rLoad      float64
	rSoreness  float64
	rFatigue   float64
	rStress    float64
	rInjury    float64
	rIllness   float64
	rSleep     float64
	rNutrition float64
	rMood      float64
	rEnergy    float64
	rMenstrual float64
)

var readinessLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log today's readiness",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := readinessDate
		if date == "" {
			date = models.Today()
		}

		answers := models.DefaultAnswers()
		set := func(name string, dst *float64, v float64) {
			if cmd.Flags().Changed(name) {
				*dst = v
			}
		}
		set("load", &answers.TrainingLoadYesterday, rLoad)
		set("soreness", &answers.MuscleSoreness, rSoreness)
		set("fatigue", &answers.MuscleFatigue, rFatigue)
		set("stress", &answers.MentalStress, rStress)
		set("injury", &answers.Injury, rInjury)
		set("illness", &answers.Illness, rIllness)
		set("sleep", &answers.SleepLastNight, rSleep)
		set("nutrition", &answers.NutritionQuality, rNutrition)
		set("mood", &answers.Mood24h, rMood)
		set("energy", &answers.RecoveryEnergyToday, rEnergy)
		set("menstrual", &answers.Menstrual, rMenstrual)

		entry, err := readiness.UpsertForDate(date, answers)
		if err != nil {
			return fmt.Errorf("log readiness: %w", err)
		}

		color.Green("✓ Readiness for %s", entry.Date)
		fmt.Printf("  %s score %.1f/10\n",
			color.New(color.Faint).Sprint(entry.ID[:8]),
			entry.Score)
		return nil
	},
}

var readinessShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's readiness",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := readinessDate
		if date == "" {
			date = models.Today()
		}

		entry, err := readiness.GetByDate(date)
		if err != nil {
			return fmt.Errorf("get readiness: %w", err)
		}
		if entry == nil {
			fmt.Printf("No readiness entry for %s.\n", date)
			return nil
		}

		printReadiness(*entry)
		return nil
	},
}

var readinessRangeCmd = &cobra.Command{
	Use:   "range <from> <to>",
	Short: "List readiness entries in a date range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := readiness.GetRangeInclusive(args[0], args[1])
		if err != nil {
			return fmt.Errorf("readiness range: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No readiness entries in range.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range entries {
			fmt.Printf("%s %s  %.1f/10\n", faint.Sprint(e.ID[:8]), e.Date, e.Score)
		}
		return nil
	},
}

var readinessDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a day's readiness entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := readinessDate
		if date == "" {
			date = models.Today()
		}

		if err := readiness.DeleteByDate(date); err != nil {
			return fmt.Errorf("delete readiness: %w", err)
		}
		color.Yellow("✗ Deleted readiness for %s", date)
		return nil
	},
}

func printReadiness(e models.ReadinessEntry) {
	faint := color.New(color.Faint)
	fmt.Printf("%s %s  score %.1f/10\n", faint.Sprint(e.ID[:8]), e.Date, e.Score)
	a := e.Answers
	fmt.Printf("  sleep %.0f  nutrition %.0f  mood %.0f  energy %.0f\n",
		a.SleepLastNight, a.NutritionQuality, a.Mood24h, a.RecoveryEnergyToday)
	fmt.Printf("  load %.0f  soreness %.0f  fatigue %.0f  stress %.0f  injury %.0f  illness %.0f  menstrual %.0f\n",
		a.TrainingLoadYesterday, a.MuscleSoreness, a.MuscleFatigue,
		a.MentalStress, a.Injury, a.Illness, a.Menstrual)
}

func init() {
	readinessCmd.PersistentFlags().StringVar(&readinessDate, "date", "", "survey date (YYYY-MM-DD, default today)")

	readinessLogCmd.Flags().Float64Var(&rLoad, "load", 5, "yesterday's training load (0-10)")
	readinessLogCmd.Flags().Float64Var(&rSoreness, "soreness", 5, "muscle soreness (0-10)")
	readinessLogCmd.Flags().Float64Var(&rFatigue, "fatigue", 5, "muscle fatigue (0-10)")
	readinessLogCmd.Flags().Float64Var(&rStress, "stress", 5, "mental stress (0-10)")
	readinessLogCmd.Flags().Float64Var(&rInjury, "injury", 0, "injury level (0-10)")
	readinessLogCmd.Flags().Float64Var(&rIllness, "illness", 0, "illness level (0-10)")
	readinessLogCmd.Flags().Float64Var(&rSleep, "sleep", 5, "sleep quality last night (0-10)")
	readinessLogCmd.Flags().Float64Var(&rNutrition, "nutrition", 5, "nutrition quality (0-10)")
	readinessLogCmd.Flags().Float64Var(&rMood, "mood", 5, "mood over last 24h (0-10)")
	readinessLogCmd.Flags().Float64Var(&rEnergy, "energy", 5, "recovery energy today (0-10)")
	readinessLogCmd.Flags().Float64Var(&rMenstrual, "menstrual", 0, "menstrual discomfort (0-10)")

	readinessCmd.AddCommand(readinessLogCmd)
	readinessCmd.AddCommand(readinessShowCmd)
	readinessCmd.AddCommand(readinessRangeCmd)
	readinessCmd.AddCommand(readinessDeleteCmd)
	rootCmd.AddCommand(readinessCmd)
}
