// Package purge deletes and resets graphs of documents in the store: a
// user's whole subtree, a user's progress, or every record pointing at a
// catalog item. Work is split per collection so that one failing collection
// does not stop the others.
package purge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/model"
)

// Options tune batching and fan-out.
type Options struct {
	// BatchLimit caps operations per commit for pure delete loops.
	BatchLimit int
	// Headroom caps operations per commit when reads and writes interleave.
	Headroom int
	// PageSize is the number of documents listed per read.
	PageSize int
	// Concurrency bounds how many users are processed at once in scans.
	Concurrency int
}

func DefaultOptions() Options {
	return Options{
		BatchLimit:  docstore.MaxBatchOps,
		Headroom:    450,
		PageSize:    docstore.MaxBatchOps,
		Concurrency: 8,
	}
}

func (o Options) normalized() Options {
	if o.BatchLimit <= 0 || o.BatchLimit > docstore.MaxBatchOps {
		o.BatchLimit = docstore.MaxBatchOps
	}
	if o.Headroom <= 0 || o.Headroom > o.BatchLimit {
		o.Headroom = o.BatchLimit
	}
	if o.PageSize <= 0 || o.PageSize > o.BatchLimit {
		o.PageSize = o.BatchLimit
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	return o
}

type Engine struct {
	store      docstore.Store
	opts       Options
	enum       *Enumerator
	reconciler *Reconciler
}

func NewEngine(store docstore.Store, opts Options) *Engine {
	opts = opts.normalized()
	enum := NewEnumerator(store, opts.PageSize)
	return &Engine{
		store:      store,
		opts:       opts,
		enum:       enum,
		reconciler: NewReconciler(store, enum),
	}
}

func (e *Engine) Options() Options { return e.opts }

func (e *Engine) newWriter() *BatchWriter {
	return NewBatchWriter(e.store, e.opts.BatchLimit)
}

func (e *Engine) newInterleavedWriter() *BatchWriter {
	return NewBatchWriter(e.store, e.opts.Headroom)
}

// UserPurgeReport is the outcome of PurgeUser.
type UserPurgeReport struct {
	Report
	RootExisted bool
	RootDeleted bool
}

// StoreDeleted reports whether this run removed anything.
func (r UserPurgeReport) StoreDeleted() bool {
	return r.RootDeleted || r.Deleted > 0
}

// PurgeUser deletes every known subcollection of the user, the documents in
// root collections that refer back to the user, and finally the user
// document itself. A missing user is not an error. Only a failed read of the
// user document aborts the run.
func (e *Engine) PurgeUser(ctx context.Context, uid string) (UserPurgeReport, error) {
	run := NewRun(ctx, "purge_user", uid)

	rootExisted := true
	if _, err := e.store.Get(ctx, UserPath(uid)); err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			return UserPurgeReport{}, fmt.Errorf("%w: read user %s: %w", model.ErrBackendUnavailable, uid, err)
		}
		rootExisted = false
		run.Logger().Info("User document not found, purging leftovers only")
	}

	for _, name := range UserSubcollections {
		if name == LanguagesCollection {
			e.purgeLanguages(ctx, run, uid)
			continue
		}
		run.Step(name, func() (int, error) {
			run.Enter(PhaseBatchDeleting, slog.String("collection", name))
			return e.enum.Drain(ctx, UserCollectionPath(uid, name), e.newWriter())
		})
	}

	for _, coll := range BackReferenceCollections {
		run.Step(coll, func() (int, error) {
			run.Enter(PhaseMatching, slog.String("collection", coll), slog.String("field", BackReferenceField))
			return e.enum.DrainWhere(ctx, coll, BackReferenceField, uid, e.newWriter())
		})
	}

	for _, coll := range SingletonCollections {
		path := docstore.Join(coll, uid)
		run.Step(path, func() (int, error) { return e.deleteIfExists(ctx, path) })
	}

	rootDeleted := false
	if rootExisted {
		rootDeleted = run.Step(UserPath(uid), func() (int, error) {
			run.Enter(PhaseBatchDeleting, slog.String("document", UserPath(uid)))
			if err := e.store.Delete(ctx, UserPath(uid)); err != nil {
				return 0, err
			}
			return 1, nil
		})
	}

	rep := run.Finish()
	return UserPurgeReport{Report: rep, RootExisted: rootExisted, RootDeleted: rootDeleted}, nil
}

// languageIDs lists a user's languages, including ones whose summary
// document was never written but whose level buckets still hold data.
func (e *Engine) languageIDs(ctx context.Context, uid string) ([]string, error) {
	coll := UserCollectionPath(uid, LanguagesCollection)
	ids, err := e.store.DocumentIDs(ctx, coll)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", coll, err)
	}
	return ids, nil
}

// purgeLanguages drains every language level as its own step, then deletes
// the language document. A language with a failed level keeps its document
// so a retry finds it again.
func (e *Engine) purgeLanguages(ctx context.Context, run *Run, uid string) {
	langs, err := e.languageIDs(ctx, uid)
	if err != nil {
		run.Fail(LanguagesCollection, err)
		return
	}
	for _, lang := range langs {
		if !e.drainLevels(ctx, run, uid, lang) {
			continue
		}
		path := LanguagePath(uid, lang)
		run.Step(path, func() (int, error) {
			run.Enter(PhaseBatchDeleting, slog.String("document", path))
			return e.deleteIfExists(ctx, path)
		})
	}
}

// drainLevels deletes the assessments and bucket document of every level
// the language exposes, one step per level. It reports whether all levels
// succeeded.
func (e *Engine) drainLevels(ctx context.Context, run *Run, uid, languageID string) bool {
	ok := true
	for _, level := range model.LevelsFor(languageID) {
		path := AssessmentsPath(uid, languageID, level)
		drained := run.Step(path, func() (int, error) {
			run.Enter(PhaseBatchDeleting, slog.String("language", languageID), slog.String("level", string(level)))
			n, err := e.enum.Drain(ctx, path, e.newWriter())
			if err != nil {
				return n, err
			}
			bucket, err := e.deleteIfExists(ctx, LevelBucketPath(uid, languageID, level))
			return n + bucket, err
		})
		ok = ok && drained
	}
	return ok
}

func (e *Engine) deleteIfExists(ctx context.Context, path string) (int, error) {
	if _, err := e.store.Get(ctx, path); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if err := e.store.Delete(ctx, path); err != nil {
		return 0, err
	}
	return 1, nil
}

// ResetProgress deletes a user's assessments and progress collections and
// zeroes the counters on the language and user documents, which are kept.
func (e *Engine) ResetProgress(ctx context.Context, uid string) Report {
	run := NewRun(ctx, "reset_progress", uid)

	langs, err := e.languageIDs(ctx, uid)
	if err != nil {
		run.Fail(LanguagesCollection, err)
	}
	for _, lang := range langs {
		if !e.drainLevels(ctx, run, uid, lang) {
			continue
		}
		path := LanguagePath(uid, lang)
		run.Step(path, func() (int, error) {
			run.Enter(PhaseReconciling, slog.String("document", path))
			err := e.store.Update(ctx, path, model.ProgressResetFields())
			if errors.Is(err, docstore.ErrNotFound) {
				return 0, nil
			}
			return 0, err
		})
	}

	for _, name := range ProgressCollections {
		run.Step(name, func() (int, error) {
			run.Enter(PhaseBatchDeleting, slog.String("collection", name))
			return e.enum.Drain(ctx, UserCollectionPath(uid, name), e.newWriter())
		})
	}

	run.Step(UserPath(uid), func() (int, error) {
		run.Enter(PhaseReconciling)
		err := e.store.Update(ctx, UserPath(uid), model.UserCounterResetFields())
		if errors.Is(err, docstore.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	})

	return run.Finish()
}
