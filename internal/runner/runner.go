// Package runner executes benchmark targets sequentially and collects one
// uniform result per target. Targets never run concurrently: contention from
// one measurement must not perturb the next.
package runner

import (
	"context"
	"log/slog"
	"time"

	"hubbench/internal/result"
	"hubbench/internal/target"
)

// Runner executes sets of benchmark targets.
type Runner struct {
	// Observer, when set, receives the status and wall-clock duration of
	// every completed target. Used to feed execution metrics.
	Observer func(targetID, status string, elapsed time.Duration)
}

func New() *Runner {
	return &Runner{}
}

func (r *Runner) observe(targetID, status string, elapsed time.Duration) {
	if r.Observer != nil {
		r.Observer(targetID, status, elapsed)
	}
}

// Run executes the targets in order and returns exactly one result each,
// success or not. A target's internal failure becomes a failure-flavored
// metrics record; it never aborts the batch.
func (r *Runner) Run(ctx context.Context, targets []target.Target) []result.Result {
	results := make([]result.Result, 0, len(targets))

	slog.Info("starting benchmark suite", "targets", len(targets))

	for _, t := range targets {
		slog.Info("running benchmark", "target", t.ID())

		start := time.Now()
		metrics, err := t.Run(ctx)
		elapsed := time.Since(start)

		if err != nil {
			slog.Warn("benchmark failed", "target", t.ID(), "error", err)
			results = append(results, result.Failure(t.ID(), err))
			r.observe(t.ID(), "failed", elapsed)
			continue
		}

		slog.Info("benchmark completed", "target", t.ID(), "elapsed", elapsed)
		results = append(results, result.New(t.ID(), metrics))
		r.observe(t.ID(), "ok", elapsed)
	}

	slog.Info("benchmark suite completed", "results", len(results))
	return results
}

// RunIDs executes only the targets matching ids, preserving registry order.
func (r *Runner) RunIDs(ctx context.Context, reg *target.Registry, ids []string) []result.Result {
	return r.Run(ctx, reg.ByIDs(ids))
}
