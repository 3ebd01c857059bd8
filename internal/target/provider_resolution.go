package target

import (
	"context"

	"hubbench/internal/result"
	"hubbench/internal/stats"
)

// ProviderResolution measures provider selection and endpoint resolution.
// The bridge path runs the hub's own benchmark suite; the simulated path
// approximates the selection logic with a small deterministic hash over the
// provider table.
type ProviderResolution struct {
	cfg      Config
	delegate Delegate
	hubDir   string
}

func NewProviderResolution(d Delegate, hubDir string, cfg Config) *ProviderResolution {
	return &ProviderResolution{cfg: cfg.normalized(), delegate: d, hubDir: hubDir}
}

func (t *ProviderResolution) ID() string { return "provider-resolution" }

func (t *ProviderResolution) Run(ctx context.Context) (result.Map, error) {
	if m, ok := tryDelegate(ctx, t.delegate, "bench:hub", t.hubDir); ok {
		return m, nil
	}
	return t.runSimulated()
}

func (t *ProviderResolution) runSimulated() (result.Map, error) {
	samples := stats.Collect(t.cfg.WarmupIterations, t.cfg.Iterations, func() {
		sink += uint64(simulateResolution())
	})

	s, err := stats.Compute(samples)
	if err != nil {
		return nil, err
	}

	m := s.Map()
	m["iterations"] = t.cfg.Iterations
	m["warmup_iterations"] = t.cfg.WarmupIterations
	m["median_ns"] = s.P50Ns
	m["status"] = "simulated"
	return m, nil
}

var resolutionProviders = []string{"openai", "anthropic", "google", "azure", "bedrock"}

func simulateResolution() uint32 {
	var hash uint32
	for i, p := range resolutionProviders {
		hash += uint32(len(p)) * uint32(i+1)
	}
	return hash
}
