package model

import (
	"strings"

	"github.com/spf13/cast"
)

// ContentType is the catalog collection a ContentItem lives in.
type ContentType string

const (
	ContentCharacters ContentType = "characters"
	ContentWords      ContentType = "words"
	ContentSentences  ContentType = "sentences"
)

var ContentTypes = []ContentType{ContentCharacters, ContentWords, ContentSentences}

// ParseContentType accepts the collection name or its singular form.
// "question" is treated as a sentence prompt.
func ParseContentType(s string) (ContentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "character", "characters":
		return ContentCharacters, true
	case "word", "words":
		return ContentWords, true
	case "sentence", "sentences", "question", "questions":
		return ContentSentences, true
	}
	return "", false
}

// ContentItem is a canonical catalog entry under
// languages/{languageId}/levels/{level}/{type}/{id}.
type ContentItem struct {
	ID         string      `json:"id"`
	LanguageID string      `json:"languageId"`
	Level      Level       `json:"level"`
	Type       ContentType `json:"type"`
	Value      string      `json:"value"`
	Meaning    string      `json:"meaning,omitempty"`
}

func ContentItemFromDoc(languageID string, level Level, typ ContentType, id string, data map[string]any) ContentItem {
	value := cast.ToString(firstPresent(data, "value", "character", "word", "sentence", "question"))
	return ContentItem{
		ID:         id,
		LanguageID: languageID,
		Level:      level,
		Type:       typ,
		Value:      strings.TrimSpace(value),
		Meaning:    cast.ToString(firstPresent(data, "meaning", "translation")),
	}
}

// ContentIndex answers whether an assessment still points at a live item.
type ContentIndex struct {
	ids    map[string]struct{}
	values map[string]struct{}
}

func NewContentIndex(items []ContentItem) *ContentIndex {
	ix := &ContentIndex{
		ids:    make(map[string]struct{}, len(items)),
		values: make(map[string]struct{}, len(items)),
	}
	for _, it := range items {
		ix.ids[it.ID] = struct{}{}
		if it.Value != "" {
			ix.values[it.Value] = struct{}{}
		}
	}
	return ix
}

func (ix *ContentIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.ids)
}

// Resolves reports whether any reference on the record names a live item.
// A record with no references at all does not resolve.
func (ix *ContentIndex) Resolves(rec AssessmentRecord) bool {
	if ix == nil {
		return false
	}
	for _, id := range rec.ReferenceIDs {
		if _, ok := ix.ids[id]; ok {
			return true
		}
	}
	for _, v := range rec.ReferenceValues {
		if _, ok := ix.values[v]; ok {
			return true
		}
	}
	return false
}

// DuplicateGroup is a set of catalog items sharing one value.
type DuplicateGroup struct {
	LanguageID string      `json:"languageId"`
	Level      Level       `json:"level"`
	Type       ContentType `json:"type"`
	Value      string      `json:"value"`
	ItemIDs    []string    `json:"itemIds"`
}

// Badge is a read-only catalog entry.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

func BadgeFromDoc(id string, data map[string]any) Badge {
	return Badge{
		ID:          id,
		Name:        cast.ToString(data["name"]),
		Description: cast.ToString(data["description"]),
		Icon:        cast.ToString(data["icon"]),
	}
}
