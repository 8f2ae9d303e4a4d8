package purge

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/model"
)

// Scope narrows a scan to one language and optionally one level. The zero
// value scans everything.
type Scope struct {
	LanguageID string
	Level      model.Level
}

// levels returns the levels to visit for a language inside the scope.
func (s Scope) levels(languageID string) []model.Level {
	if s.Level == "" {
		return model.LevelsFor(languageID)
	}
	if s.Level.Supports(languageID) {
		return []model.Level{s.Level}
	}
	return nil
}

// includes filters flat records, which carry their language and level as
// fields when they carry them at all.
func (s Scope) includes(rec model.AssessmentRecord) bool {
	if s.LanguageID != "" && rec.LanguageID != "" && !strings.EqualFold(rec.LanguageID, s.LanguageID) {
		return false
	}
	if s.Level != "" && rec.Level != "" && rec.Level != s.Level {
		return false
	}
	return true
}

// CascadeReport is the outcome of CascadeContent.
type CascadeReport struct {
	Report
	UsersAffected int
}

// CascadeContent deletes every assessment-like record, across all users,
// that references target, then reconciles the counters of each affected
// language.
func (e *Engine) CascadeContent(ctx context.Context, target ContentReference, scope Scope) (CascadeReport, error) {
	run := NewRun(ctx, "cascade_content", target.ID)
	var affected atomic.Int64

	err := e.forEachUser(ctx, run, func(ctx context.Context, uid string) {
		if e.sweepUser(ctx, run, uid, target, scope) > 0 {
			affected.Add(1)
		}
	})
	if err != nil {
		return CascadeReport{}, err
	}
	return CascadeReport{Report: run.Finish(), UsersAffected: int(affected.Load())}, nil
}

func (e *Engine) sweepUser(ctx context.Context, run *Run, uid string, target Target, scope Scope) int {
	deleted := 0
	touched := make(map[string]struct{})

	for _, lang := range e.userLanguages(ctx, run, uid, scope) {
		for _, level := range scope.levels(lang) {
			path := AssessmentsPath(uid, lang, level)
			run.Step(path, func() (int, error) {
				run.Enter(PhaseMatching, slog.String("collection", path))
				scanned, n, err := e.enum.Sweep(ctx, path, e.newInterleavedWriter(), selector(run, target))
				run.AddScanned(scanned)
				deleted += n
				if n > 0 {
					touched[lang] = struct{}{}
				}
				return n, err
			})
		}
	}

	for _, coll := range ContentReferenceCollections {
		path := UserCollectionPath(uid, coll)
		run.Step(path, func() (int, error) {
			run.Enter(PhaseMatching, slog.String("collection", path))
			scanned, n, err := e.enum.Sweep(ctx, path, e.newInterleavedWriter(), func(doc docstore.Document) bool {
				rec := model.NormalizeAssessment(doc.ID, doc.Data)
				if !scope.includes(rec) || !target.Matches(rec) {
					return false
				}
				if rec.LanguageID != "" {
					touched[rec.LanguageID] = struct{}{}
				}
				run.Matched(rec)
				return true
			})
			run.AddScanned(scanned)
			deleted += n
			return n, err
		})
	}

	if deleted > 0 {
		e.reconcileAll(ctx, run, uid, touched)
	}
	return deleted
}

// userLanguages lists the languages to visit for a user. A scoped run does
// not need the listing.
func (e *Engine) userLanguages(ctx context.Context, run *Run, uid string, scope Scope) []string {
	if scope.LanguageID != "" {
		return []string{scope.LanguageID}
	}
	langs, err := e.languageIDs(ctx, uid)
	if err != nil {
		run.Fail(UserCollectionPath(uid, LanguagesCollection), err)
	}
	return langs
}

func (e *Engine) reconcileAll(ctx context.Context, run *Run, uid string, langs map[string]struct{}) {
	names := make([]string, 0, len(langs))
	for l := range langs {
		names = append(names, l)
	}
	sort.Strings(names)
	for _, lang := range names {
		run.Enter(PhaseReconciling, slog.String("uid", uid), slog.String("language", lang))
		if _, err := e.reconciler.Recompute(ctx, uid, lang); err != nil {
			run.Fail(fmt.Sprintf("reconcile %s", LanguagePath(uid, lang)), err)
		}
	}
}

// forEachUser pages through all users and runs fn for each with bounded
// concurrency. Failing to read the first page means the backend is
// unavailable; a later page failure ends the scan early and is recorded.
func (e *Engine) forEachUser(ctx context.Context, run *Run, fn func(ctx context.Context, uid string)) error {
	cursor := ""
	first := true
	for {
		page, err := e.store.List(ctx, UsersCollection, docstore.ListOptions{Limit: e.opts.PageSize, StartAfter: cursor})
		if err != nil {
			if first {
				return fmt.Errorf("%w: list users: %w", model.ErrBackendUnavailable, err)
			}
			run.Fail(fmt.Sprintf("users after %s", cursor), err)
			return nil
		}
		first = false

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.opts.Concurrency)
		for _, u := range page {
			uid := u.ID
			g.Go(func() error {
				fn(gctx, uid)
				return nil
			})
		}
		_ = g.Wait()

		if len(page) < e.opts.PageSize {
			return nil
		}
		cursor = page[len(page)-1].ID
	}
}

// CatalogFunc loads the live catalog of one language level.
type CatalogFunc func(ctx context.Context, languageID string, level model.Level) (*model.ContentIndex, error)

// OrphanReport is the outcome of CleanupOrphans.
type OrphanReport struct {
	Report
	UsersAffected int
	SkippedLevels []string
}

// CleanupOrphans deletes nested assessments that no longer resolve to a
// catalog item. Levels whose catalog is empty are skipped and reported.
func (e *Engine) CleanupOrphans(ctx context.Context, scope Scope, catalog CatalogFunc) (OrphanReport, error) {
	run := NewRun(ctx, "cleanup_orphans", scopeName(scope))
	indexes := &indexCache{load: catalog, entries: make(map[string]indexEntry)}
	var affected atomic.Int64

	err := e.forEachUser(ctx, run, func(ctx context.Context, uid string) {
		deleted := 0
		touched := make(map[string]struct{})
		for _, lang := range e.userLanguages(ctx, run, uid, scope) {
			for _, level := range scope.levels(lang) {
				ix, err := indexes.get(ctx, lang, level)
				if err != nil {
					run.Fail(fmt.Sprintf("catalog %s", CatalogPath(lang, level, "*")), err)
					continue
				}
				if ix.Len() == 0 {
					continue
				}
				path := AssessmentsPath(uid, lang, level)
				target := Orphan{Index: ix}
				run.Step(path, func() (int, error) {
					scanned, n, err := e.enum.Sweep(ctx, path, e.newInterleavedWriter(), selector(run, target))
					run.AddScanned(scanned)
					deleted += n
					if n > 0 {
						touched[lang] = struct{}{}
					}
					return n, err
				})
			}
		}
		if deleted > 0 {
			affected.Add(1)
			e.reconcileAll(ctx, run, uid, touched)
		}
	})
	if err != nil {
		return OrphanReport{}, err
	}
	return OrphanReport{
		Report:        run.Finish(),
		UsersAffected: int(affected.Load()),
		SkippedLevels: indexes.empty(),
	}, nil
}

func scopeName(s Scope) string {
	switch {
	case s.LanguageID == "" && s.Level == "":
		return "all"
	case s.Level == "":
		return s.LanguageID
	case s.LanguageID == "":
		return "*/" + string(s.Level)
	}
	return s.LanguageID + "/" + string(s.Level)
}

type indexEntry struct {
	ix  *model.ContentIndex
	err error
}

// indexCache loads each catalog once per run.
type indexCache struct {
	load    CatalogFunc
	mu      sync.Mutex
	entries map[string]indexEntry
}

func (c *indexCache) get(ctx context.Context, lang string, level model.Level) (*model.ContentIndex, error) {
	key := lang + "/" + string(level)
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.ix, e.err
	}
	ix, err := c.load(ctx, lang, level)
	c.entries[key] = indexEntry{ix: ix, err: err}
	return ix, err
}

// empty lists loaded levels that had no catalog items.
func (c *indexCache) empty() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for k, e := range c.entries {
		if e.err == nil && e.ix.Len() == 0 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
