package purge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cast"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
)

// Counts is the result of one reconciliation.
type Counts struct {
	LanguageTotal    int
	TotalAssessments int
}

// Reconciler recomputes the summary counters derived from assessments. It
// only updates documents that exist.
type Reconciler struct {
	store docstore.Store
	enum  *Enumerator
}

func NewReconciler(store docstore.Store, enum *Enumerator) *Reconciler {
	return &Reconciler{store: store, enum: enum}
}

// Recompute counts completed assessments of one language across its
// levels, writes them to the language document, then rewrites the user's
// totalAssessments as the sum over all languages.
func (r *Reconciler) Recompute(ctx context.Context, uid, languageID string) (Counts, error) {
	logger := middleware.GetLogger(ctx).With(slog.String("uid", uid), slog.String("language", languageID))

	completed := 0
	for _, level := range model.LevelsFor(languageID) {
		_, err := r.enum.Each(ctx, AssessmentsPath(uid, languageID, level), func(doc docstore.Document) error {
			if model.NormalizeAssessment(doc.ID, doc.Data).Completed() {
				completed++
			}
			return nil
		})
		if err != nil {
			return Counts{}, fmt.Errorf("reconcile count %s/%s: %w", languageID, level, err)
		}
	}

	err := r.store.Update(ctx, LanguagePath(uid, languageID), map[string]any{
		model.FieldAssessmentCount:      completed,
		model.FieldCompletedAssessments: completed,
		model.FieldWordAssessment:       completed,
	})
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		logger.Info("Language summary missing, not recreating it")
	case err != nil:
		return Counts{}, fmt.Errorf("reconcile update language %s: %w", languageID, err)
	}

	total := 0
	_, err = r.enum.Each(ctx, UserCollectionPath(uid, LanguagesCollection), func(doc docstore.Document) error {
		if doc.ID == languageID {
			total += completed
			return nil
		}
		total += cast.ToInt(doc.Data[model.FieldAssessmentCount])
		return nil
	})
	if err != nil {
		return Counts{LanguageTotal: completed}, fmt.Errorf("reconcile sum languages: %w", err)
	}

	err = r.store.Update(ctx, UserPath(uid), map[string]any{model.FieldTotalAssessments: total})
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		logger.Info("User document missing, not recreating it")
	case err != nil:
		return Counts{LanguageTotal: completed}, fmt.Errorf("reconcile update user: %w", err)
	}

	logger.Debug("Reconciled counters", slog.Int("language_total", completed), slog.Int("total_assessments", total))
	return Counts{LanguageTotal: completed, TotalAssessments: total}, nil
}
