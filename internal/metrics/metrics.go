// Package metrics exposes harness execution counters over Prometheus.
//
// The listener is optional: nothing is served unless the run command asks
// for it, so metrics collection never sits on the measurement path.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the collection of harness-level Prometheus metrics. Each
// instance carries its own registry so repeated construction in tests never
// trips duplicate registration.
type Metrics struct {
	registry *prometheus.Registry

	TargetsRun      *prometheus.CounterVec
	BridgeFallbacks prometheus.Counter
	TargetDuration  *prometheus.GaugeVec
	RunsSaved       prometheus.Counter

	SpansStarted     *prometheus.CounterVec
	SpansFinished    *prometheus.CounterVec
	PromptTokens     *prometheus.CounterVec
	CompletionTokens *prometheus.CounterVec
}

// New creates and registers all harness metrics.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.TargetsRun = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubbench_targets_run_total",
			Help: "Benchmark target executions by target id and status",
		},
		[]string{"target", "status"},
	)

	m.BridgeFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hubbench_bridge_fallbacks_total",
			Help: "Bridge attempts that fell back to simulated workloads",
		},
	)

	m.TargetDuration = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hubbench_target_duration_seconds",
			Help: "Wall-clock duration of the last execution per target",
		},
		[]string{"target"},
	)

	m.RunsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hubbench_runs_saved_total",
			Help: "Result sets persisted to the output layout",
		},
	)

	m.SpansStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubbench_spans_started_total",
			Help: "Telemetry spans started by provider",
		},
		[]string{"provider"},
	)

	m.SpansFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubbench_spans_finished_total",
			Help: "Telemetry spans finished by provider and success",
		},
		[]string{"provider", "success"},
	)

	m.PromptTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubbench_prompt_tokens_total",
			Help: "Prompt tokens recorded against spans",
		},
		[]string{"provider"},
	)

	m.CompletionTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubbench_completion_tokens_total",
			Help: "Completion tokens recorded against spans",
		},
		[]string{"provider"},
	)

	m.registry.MustRegister(
		m.TargetsRun,
		m.BridgeFallbacks,
		m.TargetDuration,
		m.RunsSaved,
		m.SpansStarted,
		m.SpansFinished,
		m.PromptTokens,
		m.CompletionTokens,
	)

	return m
}

// ObserveTarget records the outcome of one target execution.
func (m *Metrics) ObserveTarget(target, status string, elapsed time.Duration) {
	m.TargetsRun.WithLabelValues(target, status).Inc()
	m.TargetDuration.WithLabelValues(target).Set(elapsed.Seconds())
}

// Handler serves this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts a metrics listener on addr. It blocks, so callers run it in
// a goroutine; errors after shutdown are the caller's to ignore.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(addr, mux)
}
