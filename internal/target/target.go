// Package target defines the unit of benchmarking work and the catalogue of
// connector-hub operations measured by the harness.
//
// Each target first attempts to delegate to the external toolchain through
// the bridge; when the bridge is unavailable it falls back to an in-process
// simulated workload approximating the real operation's cost shape. One
// bridge attempt, one simulated run, no retries.
package target

import (
	"context"
	"log/slog"
	"time"

	"hubbench/internal/bridge"
	"hubbench/internal/result"
)

// Target is a named unit of benchmarking work.
type Target interface {
	// ID is the unique identifier used in result reporting.
	ID() string

	// Run executes the benchmark and returns a metrics record. An error
	// is only returned for invariant violations in the simulated path;
	// bridge problems degrade, they do not fail.
	Run(ctx context.Context) (result.Map, error)
}

// Delegate abstracts the bridge client so tests can force either path.
type Delegate interface {
	Invoke(ctx context.Context, args []string, dir string) bridge.Outcome
}

// Config fixes the iteration counts for one target instance. Immutable after
// construction; every Run reuses it.
type Config struct {
	Iterations       int
	WarmupIterations int
}

// DefaultConfig mirrors the iteration counts used by all historical runs.
func DefaultConfig() Config {
	return Config{Iterations: 1000, WarmupIterations: 100}
}

func (c Config) normalized() Config {
	if c.Iterations <= 0 {
		c.Iterations = 1000
	}
	if c.WarmupIterations < 0 {
		c.WarmupIterations = 100
	}
	return c
}

// sink keeps simulated workload results observable so the compiler cannot
// eliminate the measured loops.
var sink uint64

// tryDelegate runs one bridge attempt for the given bench script. A false
// return means the caller should run its simulated workload.
func tryDelegate(ctx context.Context, d Delegate, script, dir string) (result.Map, bool) {
	if d == nil {
		return nil, false
	}

	out := d.Invoke(ctx, []string{"run", script, "--", "--json"}, dir)
	if !out.Delegated {
		slog.Info("bridge unavailable, running simulated workload",
			"script", script, "reason", out.Reason, "overhead", out.Overhead)
		return nil, false
	}
	return out.Metrics, true
}

// measure times a single operation, flooring zero readings to 1ns.
func measure(fn func()) uint64 {
	start := time.Now()
	fn()
	ns := uint64(time.Since(start).Nanoseconds())
	if ns == 0 {
		ns = 1
	}
	return ns
}
