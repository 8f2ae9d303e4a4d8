package purge

import (
	"strings"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/model"
)

// Target decides whether a normalized record belongs to what is being purged.
type Target interface {
	Matches(rec model.AssessmentRecord) bool
}

// UserIdentity targets everything under one user's subtree.
type UserIdentity struct {
	UserID string
}

func (UserIdentity) Matches(model.AssessmentRecord) bool { return true }

// ContentReference targets records pointing at one catalog item, by id or
// by value, under any schema era.
type ContentReference struct {
	ID    string
	Value string
}

func (t ContentReference) Matches(rec model.AssessmentRecord) bool {
	id := strings.TrimSpace(t.ID)
	value := strings.TrimSpace(t.Value)
	if id != "" {
		for _, ref := range rec.ReferenceIDs {
			if ref == id {
				return true
			}
		}
	}
	if value != "" {
		for _, ref := range rec.ReferenceValues {
			if ref == value {
				return true
			}
		}
	}
	return false
}

// Orphan targets records whose references resolve nothing in the index.
type Orphan struct {
	Index *model.ContentIndex
}

func (t Orphan) Matches(rec model.AssessmentRecord) bool {
	return !t.Index.Resolves(rec)
}

// Match normalizes doc at the read boundary and applies target.
func Match(doc docstore.Document, target Target) bool {
	return target.Matches(model.NormalizeAssessment(doc.ID, doc.Data))
}

// recorded counts every record its Target selects.
type recorded struct {
	Target
	run *Run
}

func (r recorded) Matches(rec model.AssessmentRecord) bool {
	if !r.Target.Matches(rec) {
		return false
	}
	r.run.Matched(rec)
	return true
}

// selector adapts target to Enumerator.Sweep.
func selector(run *Run, target Target) func(docstore.Document) bool {
	wrapped := recorded{Target: target, run: run}
	return func(doc docstore.Document) bool {
		return Match(doc, wrapped)
	}
}
