// Package stats turns raw nanosecond latency samples into summary records.
//
// Percentiles use the nearest-rank estimator: sort ascending and index at
// floor(count*p), clamped to count-1. No interpolation. This is deliberately
// simple and matches the shape of previously saved result files.
package stats

import (
	"errors"
	"sort"
	"time"

	"hubbench/internal/result"
)

// ErrEmptySamples is returned when a summary is requested over zero samples.
// Reaching it is a programming error in the caller, not a measurement outcome.
var ErrEmptySamples = errors.New("stats: empty sample set")

// Summary holds the derived statistics for one sample set.
type Summary struct {
	MeanNs     uint64
	P50Ns      uint64
	P95Ns      uint64
	P99Ns      uint64
	MinNs      uint64
	MaxNs      uint64
	Throughput float64
}

// Compute sorts samples in place and derives the summary. The slice must not
// be reused afterward. Samples are expected to be >= 1ns (Collect floors
// zero readings), so the mean is always positive.
func Compute(samples []uint64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrEmptySamples
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })

	var sum uint64
	for _, s := range samples {
		sum += s
	}
	mean := sum / uint64(len(samples))
	if mean == 0 {
		mean = 1
	}

	return Summary{
		MeanNs:     mean,
		P50Ns:      Percentile(samples, 0.50),
		P95Ns:      Percentile(samples, 0.95),
		P99Ns:      Percentile(samples, 0.99),
		MinNs:      samples[0],
		MaxNs:      samples[len(samples)-1],
		Throughput: 1e9 / float64(mean),
	}, nil
}

// Percentile selects the value at rank floor(len*p) from an ascending-sorted
// slice, clamped to the last element. p=0 yields the minimum, p=1 the maximum.
func Percentile(sorted []uint64, p float64) uint64 {
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// CombineMeans is the unweighted arithmetic mean of per-phase means. Combined
// top-level figures average phase means rather than pooling raw samples; this
// matches historical result files and must not be "fixed" in isolation.
func CombineMeans(means ...uint64) uint64 {
	if len(means) == 0 {
		return 0
	}
	var sum uint64
	for _, m := range means {
		sum += m
	}
	return sum / uint64(len(means))
}

// Collect runs fn for a discarded warm-up phase and then iterations timed
// passes, returning one sample per timed pass. Zero-nanosecond readings are
// floored to 1ns so downstream throughput math never divides by zero.
func Collect(warmup, iterations int, fn func()) []uint64 {
	for i := 0; i < warmup; i++ {
		fn()
	}

	samples := make([]uint64, 0, iterations)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		fn()
		ns := uint64(time.Since(start).Nanoseconds())
		if ns == 0 {
			ns = 1
		}
		samples = append(samples, ns)
	}
	return samples
}

// Map renders the summary with the conventional metric keys.
func (s Summary) Map() result.Map {
	return result.Map{
		"mean_ns":    s.MeanNs,
		"p50_ns":     s.P50Ns,
		"p95_ns":     s.P95Ns,
		"p99_ns":     s.P99Ns,
		"min_ns":     s.MinNs,
		"max_ns":     s.MaxNs,
		"throughput": s.Throughput,
	}
}
