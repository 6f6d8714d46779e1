// ABOUTME: ReadinessEntry model and the daily readiness score computation.
// ABOUTME: Score partitions the eleven answers into higher-is-better and higher-is-worse groups.
package models

import "math"

// ReadinessAnswers holds the fixed set of daily survey sub-scores, each 0-10.
type ReadinessAnswers struct {
	TrainingLoadYesterday float64 `json:"trainingLoadYesterday"` // higher = worse
	MuscleSoreness        float64 `json:"muscleSoreness"`        // worse
	MuscleFatigue         float64 `json:"muscleFatigue"`         // worse
	MentalStress          float64 `json:"mentalStress"`          // worse
	Injury                float64 `json:"injury"`                // worse
	Illness               float64 `json:"illness"`               // worse
	SleepLastNight        float64 `json:"sleepLastNight"`        // better
	NutritionQuality      float64 `json:"nutritionQuality"`      // better
	Mood24h               float64 `json:"mood24h"`               // better
	RecoveryEnergyToday   float64 `json:"recoveryEnergyToday"`   // better
	Menstrual             float64 `json:"menstrual"`             // worse; 0 when not applicable
}

// ReadinessEntry is one daily readiness survey, unique per (userId, date).
type ReadinessEntry struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Date          string           `json:"date"` // YYYY-MM-DD
	Answers       ReadinessAnswers `json:"answers"`
	Score         float64          `json:"score"` // 0..10, derived
	CreatedAt     string           `json:"createdAt"`
	UpdatedAt     string           `json:"updatedAt"`
	Deleted       bool             `json:"deleted,omitempty"`
	SchemaVersion int              `json:"schemaVersion"`
}

func positive(a ReadinessAnswers) []float64 {
	return []float64{a.SleepLastNight, a.NutritionQuality, a.Mood24h, a.RecoveryEnergyToday}
}

func negative(a ReadinessAnswers) []float64 {
	return []float64{
		a.TrainingLoadYesterday, a.MuscleSoreness, a.MuscleFatigue,
		a.MentalStress, a.Injury, a.Illness, a.Menstrual,
	}
}

// ComputeReadinessScore aggregates the answers to one 0-10 value.
// Negative answers are inverted (10 - x), the total is normalized by the
// maximum possible sum (110) and rounded to one decimal.
func ComputeReadinessScore(a ReadinessAnswers) float64 {
	var total float64
	for _, v := range positive(a) {
		total += v
	}
	for _, v := range negative(a) {
		total += 10 - v
	}
	normalized := total / 110 * 10
	return math.Round(normalized*10) / 10
}

// DefaultAnswers returns the neutral survey: 5 everywhere except the
// conditions that default to absent (injury, illness, menstrual).
func DefaultAnswers() ReadinessAnswers {
	return ReadinessAnswers{
		TrainingLoadYesterday: 5,
		MuscleSoreness:        5,
		MuscleFatigue:         5,
		MentalStress:          5,
		Injury:                0,
		Illness:               0,
		SleepLastNight:        5,
		NutritionQuality:      5,
		Mood24h:               5,
		RecoveryEnergyToday:   5,
		Menstrual:             0,
	}
}
