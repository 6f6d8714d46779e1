// ABOUTME: TrainingRecord model, closed enumerations, and training-type inference.
// ABOUTME: JSON field names match the historical wire format migrated from older installs.
package models

import (
	"regexp"
	"strings"
)

// Category is the top-level training classification.
type Category string

const (
	CategoryIce          Category = "Led"
	CategoryConditioning Category = "Kondice"
	CategoryClassroom    Category = "Ucebna"
	CategoryOther        Category = "Jine"
)

// Group is the conditioning sub-classification.
type Group string

const (
	GroupIce      Group = "Led"
	GroupStrength Group = "Silovy"
	GroupCardio   Group = "Kardio"
	GroupMobility Group = "Mobilita"
)

// TrainingType is the broad, derived type tag used for stats and goals.
type TrainingType string

const (
	TypeIce        TrainingType = "Led"
	TypeStrength   TrainingType = "Silový"
	TypeRunning    TrainingType = "Beh"
	TypeCycling    TrainingType = "Bicykel"
	TypeWalking    TrainingType = "Chôdza"
	TypeSwimming   TrainingType = "Plávanie"
	TypeRowing     TrainingType = "Veslo"
	TypeElliptical TrainingType = "Eliptický"
	TypeJumpRope   TrainingType = "Švihadlo"
	TypeAirBike    TrainingType = "AirBike"
	TypeSkiErg     TrainingType = "SkiErg"
	TypeHiking     TrainingType = "Turistika"
	TypeSkating    TrainingType = "Korčule"
	TypeXCSkiing   TrainingType = "Bežky"
	TypeMobility   TrainingType = "Mobilita"
	TypeClassroom  TrainingType = "Učebná"
	TypeCardio     TrainingType = "Kardio"
	TypeOther      TrainingType = "Iné"
)

// TrackPoint is one GPS sample on an imported route.
type TrackPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	T   int64   `json:"t"`
	Alt float64 `json:"alt,omitempty"`
}

// TrainingRecord is one logged training session.
type TrainingRecord struct {
	SchemaVersion int          `json:"schemaVersion"`
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	Date          string       `json:"date"` // YYYY-MM-DD
	Duration      int          `json:"duration"` // minutes
	Description   string       `json:"description,omitempty"`
	Category      Category     `json:"category,omitempty"`
	Group         Group        `json:"group,omitempty"`
	Subtype       string       `json:"subtype,omitempty"`
	Type          TrainingType `json:"type,omitempty"`
	CreatedAt     string       `json:"createdAt"`
	UpdatedAt     string       `json:"updatedAt"`

	// Sync/import provenance; carried through, not central to store logic.
	Deleted         bool         `json:"deleted,omitempty"`
	SyncedAt        string       `json:"syncedAt,omitempty"`
	DistanceMeters  float64      `json:"distanceMeters,omitempty"`
	DurationSeconds int          `json:"durationSeconds,omitempty"`
	AvgPaceSecPerKm float64      `json:"avgPaceSecPerKm,omitempty"`
	ElevationGainM  float64      `json:"elevationGainM,omitempty"`
	Route           []TrackPoint `json:"route,omitempty"`
}

// TrainingDraft is the caller-supplied payload prior to id/timestamp assignment.
type TrainingDraft struct {
	Date            string
	Duration        int
	Description     string
	Category        Category
	Group           Group
	Subtype         string
	Type            TrainingType
	DistanceMeters  float64
	DurationSeconds int
	AvgPaceSecPerKm float64
	ElevationGainM  float64
	Route           []TrackPoint
	SyncedAt        string
}

// TrainingPatch is a partial update; nil fields are left unchanged.
type TrainingPatch struct {
	Date        *string
	Duration    *int
	Description *string
	Category    *Category
	Group       *Group
	Subtype     *string
	Type        *TrainingType
}

// InferInput carries the fields the type inference inspects. Legacy data
// may have only a free-text Type or Description.
type InferInput struct {
	Category    Category
	Group       Group
	Subtype     string
	Type        string
	Description string
}

// DeriveNormalizedType maps (group, subtype) to a broad type. Cardio subtypes
// are matched case-insensitively against fixed keyword sets.
func DeriveNormalizedType(group Group, subtype string) TrainingType {
	switch group {
	case GroupIce:
		return TypeIce
	case GroupStrength:
		return TypeStrength
	case GroupMobility:
		return TypeMobility
	case GroupCardio:
		s := strings.TrimSpace(strings.ToLower(subtype))
		if s == "" {
			return TypeCardio
		}
		switch {
		case strings.HasPrefix(s, "beh"):
			return TypeRunning
		case strings.HasPrefix(s, "bicykel"), strings.Contains(s, "spinning"),
			strings.Contains(s, "mtb"), strings.Contains(s, "cesta"):
			return TypeCycling
		case strings.HasPrefix(s, "plav"), strings.HasPrefix(s, "pláv"):
			return TypeSwimming
		case strings.HasPrefix(s, "chôdza"), strings.HasPrefix(s, "chodza"):
			return TypeWalking
		case strings.Contains(s, "veslo"), strings.Contains(s, "erg"):
			return TypeRowing
		case strings.Contains(s, "elipt"):
			return TypeElliptical
		case strings.Contains(s, "švihad"), strings.Contains(s, "svihad"):
			return TypeJumpRope
		case strings.Contains(s, "airbike"), strings.Contains(s, "assault"):
			return TypeAirBike
		case strings.Contains(s, "skierg"):
			return TypeSkiErg
		case strings.Contains(s, "turist"), strings.Contains(s, "trail"), strings.Contains(s, "hike"):
			return TypeHiking
		case strings.Contains(s, "korč"), strings.Contains(s, "korcule"),
			strings.Contains(s, "brusle"), strings.Contains(s, "inline"):
			return TypeSkating
		case strings.Contains(s, "bežky"), strings.Contains(s, "bezky"):
			return TypeXCSkiing
		}
		return TypeCardio
	}
	return TypeOther
}

// legacyTypeSynonyms normalizes the free-text type field of old records.
var legacyTypeSynonyms = map[string]TrainingType{
	"led": TypeIce, "ice": TypeIce, "hokej": TypeIce,
	"joga":    TypeMobility,
	"silový":  TypeStrength,
	"silovy":  TypeStrength,
	"beh":     TypeRunning,
	"bicykel": TypeCycling,
	"chôdza":  TypeWalking, "chodza": TypeWalking,
	"plávanie": TypeSwimming, "plavanie": TypeSwimming,
	"korčule": TypeSkating, "korcule": TypeSkating,
	"veslo":     TypeRowing,
	"eliptický": TypeElliptical, "elipticky": TypeElliptical,
	"švihadlo": TypeJumpRope, "svihadlo": TypeJumpRope,
	"airbike": TypeAirBike, "assault bike": TypeAirBike,
	"skierg":    TypeSkiErg,
	"turistika": TypeHiking,
	"bežky":     TypeXCSkiing, "bezky": TypeXCSkiing,
	"mobilita": TypeMobility,
	"učebná":   TypeClassroom, "ucebna": TypeClassroom,
}

// descriptionKeyword pairs one type with the regex sweeping free text for it.
type descriptionKeyword struct {
	t  TrainingType
	re *regexp.Regexp
}

var descriptionKeywords = []descriptionKeyword{
	{TypeIce, regexp.MustCompile(`\b(led|ľad|ice|hokej|zapas|zápas|timovy|tímový|individual|individuál)\b`)},
	{TypeStrength, regexp.MustCompile(`\b(silov|posilka|gym|strength|drep|kettlebell|klik|bench|press|mrtv(y|y tah))\b`)},
	{TypeRunning, regexp.MustCompile(`\b(beh|behat|run|running|tempo|interval)\b`)},
	{TypeCycling, regexp.MustCompile(`\b(bicykel|bike|cyklo|cycling|spinning|mtb|cesta)\b`)},
	{TypeSwimming, regexp.MustCompile(`\b(plav|swim|kra|prsia|motyl)\b`)},
	{TypeWalking, regexp.MustCompile(`\b(chodza|chôdza|walk|walking)\b`)},
	{TypeRowing, regexp.MustCompile(`\b(vesl|row|erg)\b`)},
	{TypeElliptical, regexp.MustCompile(`\b(elipt)\b`)},
	{TypeJumpRope, regexp.MustCompile(`\b(svihad|švihad)\b`)},
	{TypeAirBike, regexp.MustCompile(`\b(air ?bike|assault)\b`)},
	{TypeSkiErg, regexp.MustCompile(`\b(skierg)\b`)},
	{TypeHiking, regexp.MustCompile(`\b(turist|hike|trail)\b`)},
	{TypeSkating, regexp.MustCompile(`\b(korču|korcule|brusle|inline)\b`)},
	{TypeXCSkiing, regexp.MustCompile(`\b(bezky|bežky|xcski)\b`)},
	{TypeMobility, regexp.MustCompile(`\b(joga|jóga|yoga|stretch|pilates|foam|fyziocv)\b`)},
}

// InferType derives the broad training type. Total and deterministic:
// explicit category wins, then the structured group/subtype mapping, then
// the legacy type synonym table, then a keyword sweep of the description.
func InferType(in InferInput) TrainingType {
	switch in.Category {
	case CategoryIce:
		return TypeIce
	case CategoryClassroom:
		return TypeClassroom
	case CategoryOther:
		return TypeOther
	}

	if in.Group != "" {
		return DeriveNormalizedType(in.Group, in.Subtype)
	}

	if t := strings.TrimSpace(in.Type); t != "" {
		if mapped, ok := legacyTypeSynonyms[strings.ToLower(t)]; ok {
			return mapped
		}
	}

	desc := strings.ToLower(in.Description)
	for _, kw := range descriptionKeywords {
		if kw.re.MatchString(desc) {
			return kw.t
		}
	}

	return TypeOther
}
