package target

import (
	"context"

	"hubbench/internal/result"
	"hubbench/internal/stats"
)

// RequestTransformation measures the reshaping between the hub's unified
// request/response format and provider-specific formats. The simulated
// transforms select and rename a fixed subset of fields without validation,
// matching the cost shape of the real mapping code.
type RequestTransformation struct {
	cfg      Config
	delegate Delegate
	hubDir   string
}

func NewRequestTransformation(d Delegate, hubDir string, cfg Config) *RequestTransformation {
	return &RequestTransformation{cfg: cfg.normalized(), delegate: d, hubDir: hubDir}
}

func (t *RequestTransformation) ID() string { return "request-transformation" }

func (t *RequestTransformation) Run(ctx context.Context) (result.Map, error) {
	if m, ok := tryDelegate(ctx, t.delegate, "bench:provider", t.hubDir); ok {
		return m, nil
	}
	return t.runSimulated()
}

func (t *RequestTransformation) runSimulated() (result.Map, error) {
	request := sampleRequest()
	response := sampleResponse()

	for i := 0; i < t.cfg.WarmupIterations; i++ {
		sink += uint64(len(transformRequest(request)))
		sink += uint64(len(transformResponse(response)))
	}

	requestTimes := make([]uint64, 0, t.cfg.Iterations)
	responseTimes := make([]uint64, 0, t.cfg.Iterations)

	for i := 0; i < t.cfg.Iterations; i++ {
		requestTimes = append(requestTimes, measure(func() {
			sink += uint64(len(transformRequest(request)))
		}))
	}
	for i := 0; i < t.cfg.Iterations; i++ {
		responseTimes = append(responseTimes, measure(func() {
			sink += uint64(len(transformResponse(response)))
		}))
	}

	req, err := stats.Compute(requestTimes)
	if err != nil {
		return nil, err
	}
	resp, err := stats.Compute(responseTimes)
	if err != nil {
		return nil, err
	}

	combinedMean := stats.CombineMeans(req.MeanNs, resp.MeanNs)

	return result.Map{
		"iterations": t.cfg.Iterations,
		"request_transform": result.Map{
			"mean_ns":    req.MeanNs,
			"p99_ns":     req.P99Ns,
			"min_ns":     req.MinNs,
			"max_ns":     req.MaxNs,
			"throughput": req.Throughput,
		},
		"response_transform": result.Map{
			"mean_ns":    resp.MeanNs,
			"p99_ns":     resp.P99Ns,
			"min_ns":     resp.MinNs,
			"max_ns":     resp.MaxNs,
			"throughput": resp.Throughput,
		},
		"mean_ns":    combinedMean,
		"p99_ns":     stats.CombineMeans(req.P99Ns, resp.P99Ns),
		"throughput": 1e9 / float64(combinedMean),
		"status":     "simulated",
	}, nil
}

func sampleRequest() map[string]any {
	return map[string]any{
		"model": "gpt-4",
		"messages": []any{
			map[string]any{"role": "system", "content": "You are a helpful assistant."},
			map[string]any{"role": "user", "content": "Hello, how are you?"},
		},
		"max_tokens":  1000,
		"temperature": 0.7,
	}
}

func sampleResponse() map[string]any {
	return map[string]any{
		"id":     "chatcmpl-123",
		"object": "chat.completion",
		"choices": []any{
			map[string]any{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "I'm doing well, thank you!"},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 8, "total_tokens": 18},
	}
}

// transformRequest maps the unified request to a provider payload.
func transformRequest(request map[string]any) map[string]any {
	return map[string]any{
		"model":                request["model"],
		"prompt":               request["messages"],
		"max_tokens_to_sample": request["max_tokens"],
	}
}

// transformResponse maps a provider response back to the unified shape.
func transformResponse(response map[string]any) map[string]any {
	var message any
	if choices, ok := response["choices"].([]any); ok && len(choices) > 0 {
		if first, ok := choices[0].(map[string]any); ok {
			message = first["message"]
		}
	}
	return map[string]any{
		"content": message,
		"usage":   response["usage"],
		"id":      response["id"],
	}
}
