package target

import (
	"context"
	"encoding/json"
	"strings"

	"hubbench/internal/result"
	"hubbench/internal/stats"
)

const (
	streamDataPrefix = "data: "
	streamDoneMarker = "data: [DONE]"
)

// StreamParsing measures SSE chunk parsing and full-stream aggregation for
// the hub's streamed responses.
type StreamParsing struct {
	cfg      Config
	delegate Delegate
	hubDir   string
}

func NewStreamParsing(d Delegate, hubDir string, cfg Config) *StreamParsing {
	return &StreamParsing{cfg: cfg.normalized(), delegate: d, hubDir: hubDir}
}

func (t *StreamParsing) ID() string { return "stream-parsing" }

func (t *StreamParsing) Run(ctx context.Context) (result.Map, error) {
	if m, ok := tryDelegate(ctx, t.delegate, "bench:provider", t.hubDir); ok {
		return m, nil
	}
	return t.runSimulated()
}

func (t *StreamParsing) runSimulated() (result.Map, error) {
	chunks := sampleChunks()

	for i := 0; i < t.cfg.WarmupIterations; i++ {
		for _, chunk := range chunks {
			content, _ := parseSSEChunk(chunk)
			sink += uint64(len(content))
		}
		sink += uint64(len(aggregateChunks(chunks)))
	}

	parseTimes := make([]uint64, 0, t.cfg.Iterations)
	aggregateTimes := make([]uint64, 0, t.cfg.Iterations)

	for i := 0; i < t.cfg.Iterations; i++ {
		parseTimes = append(parseTimes, measure(func() {
			for _, chunk := range chunks {
				content, _ := parseSSEChunk(chunk)
				sink += uint64(len(content))
			}
		}))
	}
	for i := 0; i < t.cfg.Iterations; i++ {
		aggregateTimes = append(aggregateTimes, measure(func() {
			sink += uint64(len(aggregateChunks(chunks)))
		}))
	}

	parse, err := stats.Compute(parseTimes)
	if err != nil {
		return nil, err
	}
	aggregate, err := stats.Compute(aggregateTimes)
	if err != nil {
		return nil, err
	}

	return result.Map{
		"iterations":        t.cfg.Iterations,
		"chunks_per_stream": len(chunks),
		"chunk_parsing": result.Map{
			"mean_ns":      parse.MeanNs,
			"p99_ns":       parse.P99Ns,
			"min_ns":       parse.MinNs,
			"max_ns":       parse.MaxNs,
			"per_chunk_ns": parse.MeanNs / uint64(len(chunks)),
		},
		"stream_aggregation": result.Map{
			"mean_ns": aggregate.MeanNs,
			"p99_ns":  aggregate.P99Ns,
			"min_ns":  aggregate.MinNs,
			"max_ns":  aggregate.MaxNs,
		},
		"mean_ns":    parse.MeanNs,
		"p99_ns":     parse.P99Ns,
		"throughput": parse.Throughput * float64(len(chunks)),
		"status":     "simulated",
	}, nil
}

func sampleChunks() []string {
	return []string{
		"data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\n",
		"data: {\"choices\":[{\"delta\":{\"content\":\" world\"}}]}\n\n",
		"data: {\"choices\":[{\"delta\":{\"content\":\"!\"}}]}\n\n",
		"data: [DONE]\n\n",
	}
}

// parseSSEChunk strips the stream marker, parses the payload and extracts the
// delta text at choices[0].delta.content. The terminal sentinel and anything
// unparsable yield no content.
func parseSSEChunk(chunk string) (string, bool) {
	if strings.HasPrefix(chunk, streamDoneMarker) {
		return "", false
	}

	payload, found := strings.CutPrefix(chunk, streamDataPrefix)
	if !found {
		return "", false
	}

	var value struct {
		Choices []struct {
			Delta struct {
				Content *string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &value); err != nil {
		return "", false
	}
	if len(value.Choices) == 0 || value.Choices[0].Delta.Content == nil {
		return "", false
	}
	return *value.Choices[0].Delta.Content, true
}

// aggregateChunks concatenates the extracted text across an ordered stream.
func aggregateChunks(chunks []string) string {
	var b strings.Builder
	for _, chunk := range chunks {
		if content, ok := parseSSEChunk(chunk); ok {
			b.WriteString(content)
		}
	}
	return b.String()
}
