package model

import (
	"strings"

	"github.com/spf13/cast"
)

// Level is a difficulty bucket under a language.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

var allLevels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// LevelsFor returns the levels a language exposes. English has all three,
// every other language stops at intermediate.
func LevelsFor(languageID string) []Level {
	if IsEnglish(languageID) {
		return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
	}
	return []Level{LevelBeginner, LevelIntermediate}
}

func IsEnglish(languageID string) bool {
	switch strings.ToLower(strings.TrimSpace(languageID)) {
	case "english", "en":
		return true
	}
	return false
}

// ParseLevel accepts any case and surrounding whitespace.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allLevels {
		if l == known {
			return l, true
		}
	}
	return "", false
}

// Supports reports whether the level exists for the language.
func (l Level) Supports(languageID string) bool {
	for _, lv := range LevelsFor(languageID) {
		if lv == l {
			return true
		}
	}
	return false
}

// LanguageProgress mirrors users/{uid}/languages/{languageId}.
type LanguageProgress struct {
	LanguageID           string `json:"languageId"`
	Points               int    `json:"points"`
	Level                string `json:"level"`
	AssessmentCount      int    `json:"assessmentCount"`
	CompletedAssessments int    `json:"completedAssessments"`
	WordAssessment       int    `json:"wordAssessment"`
	Streak               int    `json:"streak"`
	LongestStreak        int    `json:"longestStreak"`
}

// Field names on the LanguageProgress and User documents.
const (
	FieldAssessmentCount      = "assessmentCount"
	FieldCompletedAssessments = "completedAssessments"
	FieldWordAssessment       = "wordAssessment"
	FieldTotalAssessments     = "totalAssessments"
	FieldTotalPoints          = "totalPoints"
)

func LanguageProgressFromDoc(id string, data map[string]any) LanguageProgress {
	return LanguageProgress{
		LanguageID:           id,
		Points:               cast.ToInt(data["points"]),
		Level:                cast.ToString(data["level"]),
		AssessmentCount:      cast.ToInt(data[FieldAssessmentCount]),
		CompletedAssessments: cast.ToInt(data[FieldCompletedAssessments]),
		WordAssessment:       cast.ToInt(data[FieldWordAssessment]),
		Streak:               cast.ToInt(data["streak"]),
		LongestStreak:        cast.ToInt(data["longestStreak"]),
	}
}

// ProgressResetFields is the field set written to a language document when
// a user's progress is reset. The document itself is kept.
func ProgressResetFields() map[string]any {
	return map[string]any{
		"points":                  0,
		"level":                   string(LevelBeginner),
		FieldAssessmentCount:      0,
		FieldCompletedAssessments: 0,
		FieldWordAssessment:       0,
		"streak":                  0,
		"longestStreak":           0,
	}
}

// UserCounterResetFields zeroes the aggregate counters on the user document.
func UserCounterResetFields() map[string]any {
	return map[string]any{
		FieldTotalAssessments: 0,
		FieldTotalPoints:      0,
	}
}
