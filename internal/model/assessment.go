package model

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// SchemaEra tells which document shape an assessment was read from.
type SchemaEra string

const (
	SchemaLegacy  SchemaEra = "legacy"
	SchemaCurrent SchemaEra = "current"
	SchemaUnknown SchemaEra = "unknown"
)

// Reference fields by schema era. Legacy documents name the content kind in
// the field, current ones use a generic contentId/contentValue pair.
var (
	legacyIDFields     = []string{"characterId", "wordId", "questionId"}
	legacyValueFields  = []string{"characterValue", "wordValue", "question"}
	currentIDFields    = []string{"contentId"}
	currentValueFields = []string{"contentValue"}
)

// AssessmentRecord is the canonical, schema-independent view of an
// assessment-like document.
type AssessmentRecord struct {
	ID              string
	Schema          SchemaEra
	Score           int
	ReferenceIDs    []string
	ReferenceValues []string
	LanguageID      string
	Level           Level
}

// Completed reports whether the attempt counts toward progress.
func (r AssessmentRecord) Completed() bool {
	return r.Score > 0
}

// NormalizeAssessment reads either schema era into an AssessmentRecord.
// Empty reference fields are dropped.
func NormalizeAssessment(id string, data map[string]any) AssessmentRecord {
	rec := AssessmentRecord{
		ID:         id,
		Score:      CoerceScore(data["score"]),
		LanguageID: strings.TrimSpace(cast.ToString(firstPresent(data, "languageId", "language"))),
	}
	if lv, ok := ParseLevel(cast.ToString(data["level"])); ok {
		rec.Level = lv
	}

	legacyIDs := collect(data, legacyIDFields)
	legacyValues := collect(data, legacyValueFields)
	currentIDs := collect(data, currentIDFields)
	currentValues := collect(data, currentValueFields)

	switch {
	case len(currentIDs)+len(currentValues) > 0:
		rec.Schema = SchemaCurrent
	case len(legacyIDs)+len(legacyValues) > 0:
		rec.Schema = SchemaLegacy
	default:
		rec.Schema = SchemaUnknown
	}

	// Documents migrated halfway may carry both shapes; keep every reference.
	rec.ReferenceIDs = append(currentIDs, legacyIDs...)
	rec.ReferenceValues = append(currentValues, legacyValues...)
	return rec
}

// CoerceScore turns numeric or string scores into an int. Strings are read
// as base-10 decimals, so "010" is 10 and "0x10" is not a number. Anything
// that cannot be read as a number scores 0.
func CoerceScore(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		return parseDecimalScore(strings.TrimSpace(t))
	}
	if n, err := cast.ToIntE(v); err == nil {
		return n
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return int(f)
	}
	return 0
}

func parseDecimalScore(s string) int {
	if s == "" || strings.Trim(s, "0123456789+-.eE") != "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func collect(data map[string]any, fields []string) []string {
	var out []string
	for _, f := range fields {
		raw, ok := data[f]
		if !ok || raw == nil {
			continue
		}
		s := strings.TrimSpace(cast.ToString(raw))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstPresent(data map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := data[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
