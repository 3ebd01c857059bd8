package result

import (
	"encoding/json"
	"fmt"
	"time"
)

// Map is the open-schema metrics record produced by one target execution.
// There is no fixed shape across targets; well-known keys like "mean_ns",
// "p99_ns" and "throughput" are conventions. Nested phase breakdowns are
// themselves Maps after a JSON round-trip.
type Map map[string]any

// Number reads a metric as float64, coercing the numeric types that show up
// after JSON decoding or direct construction.
func (m Map) Number(key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// String reads a metric as a string value.
func (m Map) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// Result pairs a target identifier with its metrics record and the UTC time
// of execution. Immutable after creation.
type Result struct {
	TargetID  string    `json:"target_id"`
	Metrics   Map       `json:"metrics"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a result stamped with the current UTC time.
func New(targetID string, metrics Map) Result {
	return Result{
		TargetID:  targetID,
		Metrics:   metrics,
		Timestamp: time.Now().UTC(),
	}
}

// WithTimestamp creates a result with an explicit timestamp.
func WithTimestamp(targetID string, metrics Map, ts time.Time) Result {
	return Result{
		TargetID:  targetID,
		Metrics:   metrics,
		Timestamp: ts.UTC(),
	}
}

// Failure wraps an error into the uniform failure-flavored metrics record.
func Failure(targetID string, err error) Result {
	return New(targetID, Map{
		"error":  err.Error(),
		"status": "failed",
	})
}

// IsSuccess reports whether the metrics carry a "failed" status. Absence of
// the status key, or any other value, counts as success.
func (r Result) IsSuccess() bool {
	s, ok := r.Metrics.String("status")
	return !ok || s != "failed"
}

// MeanNs returns the mean latency in nanoseconds if present.
func (r Result) MeanNs() (uint64, bool) {
	f, ok := r.Metrics.Number("mean_ns")
	if !ok || f < 0 {
		return 0, false
	}
	return uint64(f), true
}

// P99Ns returns the p99 latency in nanoseconds if present.
func (r Result) P99Ns() (uint64, bool) {
	f, ok := r.Metrics.Number("p99_ns")
	if !ok || f < 0 {
		return 0, false
	}
	return uint64(f), true
}

// Throughput returns operations per second if present.
func (r Result) Throughput() (float64, bool) {
	return r.Metrics.Number("throughput")
}

func (r Result) String() string {
	status := "OK"
	if !r.IsSuccess() {
		status = "FAIL"
	}
	return fmt.Sprintf("[%s] %s @ %s", status, r.TargetID, r.Timestamp.Format("2006-01-02 15:04:05 UTC"))
}
