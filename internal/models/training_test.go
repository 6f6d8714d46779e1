// ABOUTME: Tests for training-type inference precedence and mappings.
// ABOUTME: Covers category override, group/subtype mapping, legacy synonyms, and description sweep.
package models

import "testing"

func TestInferTypeCategoryWins(t *testing.T) {
	tests := []struct {
		name string
		in   InferInput
		want TrainingType
	}{
		{"ice category", InferInput{Category: CategoryIce, Group: GroupCardio, Subtype: "Beh – tempo"}, TypeIce},
		{"classroom category", InferInput{Category: CategoryClassroom, Description: "beh"}, TypeClassroom},
		{"other category", InferInput{Category: CategoryOther, Type: "beh"}, TypeOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferType(tt.in); got != tt.want {
				t.Errorf("InferType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferTypeGroupMapping(t *testing.T) {
	tests := []struct {
		name    string
		group   Group
		subtype string
		want    TrainingType
	}{
		{"strength", GroupStrength, "", TypeStrength},
		{"mobility", GroupMobility, "Joga", TypeMobility},
		{"ice group", GroupIce, "Zápas", TypeIce},
		{"cardio no subtype", GroupCardio, "", TypeCardio},
		{"cardio run", GroupCardio, "Beh – intervaly", TypeRunning},
		{"cardio bike", GroupCardio, "Bicykel – MTB", TypeCycling},
		{"cardio spinning", GroupCardio, "Spinning", TypeCycling},
		{"cardio swim diacritic", GroupCardio, "Plávanie", TypeSwimming},
		{"cardio rowing erg", GroupCardio, "Veslo (erg)", TypeRowing},
		{"cardio elliptical", GroupCardio, "Eliptický trenažér", TypeElliptical},
		{"cardio airbike", GroupCardio, "AirBike", TypeAirBike},
		{"cardio unknown text", GroupCardio, "niečo divné", TypeCardio},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferType(InferInput{Category: CategoryConditioning, Group: tt.group, Subtype: tt.subtype})
			if got != tt.want {
				t.Errorf("InferType(%s/%s) = %q, want %q", tt.group, tt.subtype, got, tt.want)
			}
		})
	}
}

func TestInferTypeLegacySynonyms(t *testing.T) {
	tests := []struct {
		legacy string
		want   TrainingType
	}{
		{"silovy", TypeStrength},
		{"Silový", TypeStrength},
		{"hokej", TypeIce},
		{"joga", TypeMobility},
		{"plavanie", TypeSwimming},
		{"ucebna", TypeClassroom},
	}
	for _, tt := range tests {
		got := InferType(InferInput{Type: tt.legacy})
		if got != tt.want {
			t.Errorf("InferType(type=%q) = %q, want %q", tt.legacy, got, tt.want)
		}
	}
}

func TestInferTypeDescriptionFallback(t *testing.T) {
	tests := []struct {
		desc string
		want TrainingType
	}{
		{"rychly run po meste", TypeRunning},
		{"kettlebell a bench", TypeStrength},
		{"vecer yoga doma", TypeMobility},
		{"trail v lese", TypeHiking},
		{"nic konkretne", TypeOther},
		{"", TypeOther},
	}
	for _, tt := range tests {
		got := InferType(InferInput{Description: tt.desc})
		if got != tt.want {
			t.Errorf("InferType(desc=%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}

func TestInferTypeIsTotal(t *testing.T) {
	// Arbitrary garbage input still yields a value.
	got := InferType(InferInput{Category: "???", Group: "???", Type: "???", Description: "???"})
	if got != TypeOther {
		t.Errorf("InferType(garbage) = %q, want %q", got, TypeOther)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-01", "2024-03-01"},
		{"2024-03-01T10:30:00.000Z", "2024-03-01"},
		{"2024-03-01T10:30:00Z", "2024-03-01"},
	}
	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// Unparseable input falls back to today rather than failing.
	if got := NormalizeDate("garbage"); !IsYMD(got) {
		t.Errorf("NormalizeDate(garbage) = %q, want a YYYY-MM-DD string", got)
	}
}
