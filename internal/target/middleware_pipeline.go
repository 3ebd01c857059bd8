package target

import (
	"context"

	"hubbench/internal/result"
	"hubbench/internal/stats"
)

// pipelineDepth is the middleware count used for the composed measurement.
const pipelineDepth = 5

// MiddlewarePipeline measures the overhead of a single middleware unit and of
// a composed pipeline, deriving the marginal per-middleware cost from the
// difference between the two.
type MiddlewarePipeline struct {
	cfg      Config
	delegate Delegate
	hubDir   string
}

func NewMiddlewarePipeline(d Delegate, hubDir string, cfg Config) *MiddlewarePipeline {
	return &MiddlewarePipeline{cfg: cfg.normalized(), delegate: d, hubDir: hubDir}
}

func (t *MiddlewarePipeline) ID() string { return "middleware-pipeline" }

func (t *MiddlewarePipeline) Run(ctx context.Context) (result.Map, error) {
	if m, ok := tryDelegate(ctx, t.delegate, "bench:middleware", t.hubDir); ok {
		return m, nil
	}
	return t.runSimulated()
}

func (t *MiddlewarePipeline) runSimulated() (result.Map, error) {
	for i := 0; i < t.cfg.WarmupIterations; i++ {
		sink += uint64(simulateMiddleware())
		sink += uint64(simulatePipeline(pipelineDepth))
	}

	singleTimes := make([]uint64, 0, t.cfg.Iterations)
	pipelineTimes := make([]uint64, 0, t.cfg.Iterations)

	for i := 0; i < t.cfg.Iterations; i++ {
		singleTimes = append(singleTimes, measure(func() {
			sink += uint64(simulateMiddleware())
		}))
	}
	for i := 0; i < t.cfg.Iterations; i++ {
		pipelineTimes = append(pipelineTimes, measure(func() {
			sink += uint64(simulatePipeline(pipelineDepth))
		}))
	}

	single, err := stats.Compute(singleTimes)
	if err != nil {
		return nil, err
	}
	pipeline, err := stats.Compute(pipelineTimes)
	if err != nil {
		return nil, err
	}

	var perMiddleware uint64
	if pipeline.MeanNs > single.MeanNs {
		perMiddleware = (pipeline.MeanNs - single.MeanNs) / (pipelineDepth - 1)
	}

	return result.Map{
		"iterations": t.cfg.Iterations,
		"single_middleware": result.Map{
			"mean_ns": single.MeanNs,
			"p99_ns":  single.P99Ns,
			"min_ns":  single.MinNs,
			"max_ns":  single.MaxNs,
		},
		"pipeline_5_middlewares": result.Map{
			"mean_ns":                    pipeline.MeanNs,
			"p99_ns":                     pipeline.P99Ns,
			"min_ns":                     pipeline.MinNs,
			"max_ns":                     pipeline.MaxNs,
			"overhead_per_middleware_ns": perMiddleware,
		},
		"mean_ns":    pipeline.MeanNs,
		"p99_ns":     pipeline.P99Ns,
		"throughput": pipeline.Throughput,
		"status":     "simulated",
	}, nil
}

// simulateMiddleware is the cost shape of one middleware unit: a short fixed
// accumulation loop.
func simulateMiddleware() uint32 {
	var acc uint32
	for i := uint32(0); i < 10; i++ {
		acc += i
	}
	return acc
}

func simulatePipeline(count int) uint32 {
	var acc uint32
	for i := 0; i < count; i++ {
		acc += simulateMiddleware()
	}
	return acc
}
