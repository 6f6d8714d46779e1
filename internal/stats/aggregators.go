// ABOUTME: Pure aggregation helpers over training records for the stats views.
// ABOUTME: Week buckets start on Monday; month keys are YYYY-MM.
package stats

import (
	"fmt"
	"time"

	"github.com/harperreed/trainlog/internal/models"
)

// MonthKey returns the YYYY-MM bucket for a YYYY-MM-DD date string.
func MonthKey(date string) string {
	if len(date) >= 7 {
		return date[:7]
	}
	return date
}

// WeekStart returns the Monday of the week containing date, as YYYY-MM-DD.
// Unparseable dates come back unchanged so callers still get a stable bucket.
func WeekStart(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	wd := (int(d.Weekday()) + 6) % 7 // Monday = 0 .. Sunday = 6
	monday := d.AddDate(0, 0, -wd)
	return monday.Format("2006-01-02")
}

// SumMinutes totals the duration of all records.
func SumMinutes(items []models.TrainingRecord) int {
	total := 0
	for _, r := range items {
		total += r.Duration
	}
	return total
}

// MinutesByType buckets total minutes by the derived training type.
func MinutesByType(items []models.TrainingRecord) map[models.TrainingType]int {
	out := map[models.TrainingType]int{}
	for _, r := range items {
		t := r.Type
		if t == "" {
			t = models.TypeOther
		}
		out[t] += r.Duration
	}
	return out
}

// MinutesByCategory buckets total minutes by category; records with no
// category count under "Jine".
func MinutesByCategory(items []models.TrainingRecord) map[models.Category]int {
	out := map[models.Category]int{}
	for _, r := range items {
		c := r.Category
		if c == "" {
			c = models.CategoryOther
		}
		out[c] += r.Duration
	}
	return out
}

// GroupByDay buckets records by their date.
func GroupByDay(items []models.TrainingRecord) map[string][]models.TrainingRecord {
	out := map[string][]models.TrainingRecord{}
	for _, r := range items {
		out[r.Date] = append(out[r.Date], r)
	}
	return out
}

// GroupByWeek buckets records by the Monday of their week.
func GroupByWeek(items []models.TrainingRecord) map[string][]models.TrainingRecord {
	out := map[string][]models.TrainingRecord{}
	for _, r := range items {
		k := WeekStart(r.Date)
		out[k] = append(out[k], r)
	}
	return out
}

// GroupByMonth buckets records by their YYYY-MM month.
func GroupByMonth(items []models.TrainingRecord) map[string][]models.TrainingRecord {
	out := map[string][]models.TrainingRecord{}
	for _, r := range items {
		k := MonthKey(r.Date)
		out[k] = append(out[k], r)
	}
	return out
}

// FormatMinutes renders a minute total as "Xh Ym" (or "Ym" under an hour).
func FormatMinutes(min int) string {
	if min < 60 {
		return fmt.Sprintf("%dm", min)
	}
	if min%60 == 0 {
		return fmt.Sprintf("%dh", min/60)
	}
	return fmt.Sprintf("%dh %dm", min/60, min%60)
}
