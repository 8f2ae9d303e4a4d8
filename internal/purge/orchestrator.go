package purge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
)

// Phase is a state of one orchestrated run.
type Phase string

const (
	PhasePending          Phase = "PENDING"
	PhaseEnumerating      Phase = "ENUMERATING"
	PhaseMatching         Phase = "MATCHING"
	PhaseBatchDeleting    Phase = "BATCH_DELETING"
	PhaseReconciling      Phase = "RECONCILING"
	PhaseDone             Phase = "DONE"
	PhaseCollectionFailed Phase = "COLLECTION_FAILED"
)

// Report accumulates the outcome of a run.
type Report struct {
	Scanned            int
	Deleted            int
	DeletedCollections int
	Succeeded          int
	Failed             int
	Failures           []model.Failure
	// Matched counts records selected for deletion by the schema era they
	// were stored in.
	Matched  map[model.SchemaEra]int
	Duration time.Duration
}

// Success is true when nothing failed or at least one unit got through.
func (r Report) Success() bool {
	return r.Failed == 0 || r.Succeeded > 0
}

// Run tracks one orchestrated operation. Steps may run from several
// goroutines.
type Run struct {
	logger  *slog.Logger
	started time.Time

	mu     sync.Mutex
	phase  Phase
	report Report
}

func NewRun(ctx context.Context, operation, subject string) *Run {
	r := &Run{
		logger:  middleware.GetLogger(ctx).With(slog.String("operation", operation), slog.String("subject", subject)),
		started: time.Now(),
		phase:   PhasePending,
	}
	r.logger.Debug("Purge run created", slog.String("phase", string(PhasePending)))
	return r
}

func (r *Run) Logger() *slog.Logger { return r.logger }

// Enter moves the run to phase p.
func (r *Run) Enter(p Phase, attrs ...any) {
	r.mu.Lock()
	r.phase = p
	r.mu.Unlock()
	r.logger.Debug("Purge phase", append([]any{slog.String("phase", string(p))}, attrs...)...)
}

// Step runs one collection-sized unit. fn returns the number of documents
// it deleted. A failing unit is logged and recorded, then the run moves on.
func (r *Run) Step(scope string, fn func() (int, error)) bool {
	r.Enter(PhaseEnumerating, slog.String("scope", scope))
	n, err := fn()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Deleted += n
	if err != nil {
		failedIn := r.phase
		r.phase = PhaseCollectionFailed
		r.report.Failed++
		r.report.Failures = append(r.report.Failures, model.Failure{Scope: scope, Error: err.Error()})
		r.logger.Warn("Collection failed, continuing",
			slog.String("phase", string(PhaseCollectionFailed)),
			slog.String("failed_in_phase", string(failedIn)),
			slog.String("scope", scope),
			slog.Int("deleted_before_failure", n),
			slog.Any("error", err),
		)
		return false
	}
	r.report.Succeeded++
	if n > 0 {
		r.report.DeletedCollections++
	}
	return true
}

// Fail records a failure that did not go through Step.
func (r *Run) Fail(scope string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Failed++
	r.report.Failures = append(r.report.Failures, model.Failure{Scope: scope, Error: err.Error()})
	r.logger.Warn("Purge unit failed", slog.String("scope", scope), slog.Any("error", err))
}

// Matched records a record chosen for deletion.
func (r *Run) Matched(rec model.AssessmentRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.report.Matched == nil {
		r.report.Matched = make(map[model.SchemaEra]int)
	}
	r.report.Matched[rec.Schema]++
}

func (r *Run) AddScanned(n int) {
	r.mu.Lock()
	r.report.Scanned += n
	r.mu.Unlock()
}

// Finish moves the run to DONE and returns its report.
func (r *Run) Finish() Report {
	r.mu.Lock()
	r.phase = PhaseDone
	r.report.Duration = time.Since(r.started)
	rep := r.report
	rep.Failures = append([]model.Failure(nil), r.report.Failures...)
	if r.report.Matched != nil {
		rep.Matched = make(map[model.SchemaEra]int, len(r.report.Matched))
		for era, n := range r.report.Matched {
			rep.Matched[era] = n
		}
	}
	r.mu.Unlock()

	r.logger.Info("Purge run finished",
		slog.String("phase", string(PhaseDone)),
		slog.Int("deleted", rep.Deleted),
		slog.Int("scanned", rep.Scanned),
		slog.Int("failed", rep.Failed),
		slog.Any("matched_by_schema", rep.Matched),
		slog.Bool("success", rep.Success()),
		slog.Duration("duration", rep.Duration),
	)
	return rep
}
