package target

import (
	"context"
	"testing"

	"hubbench/internal/bridge"
	"hubbench/internal/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDelegate forces either bridge path without spawning anything.
type stubDelegate struct {
	outcome bridge.Outcome
	calls   int
}

func (s *stubDelegate) Invoke(ctx context.Context, args []string, dir string) bridge.Outcome {
	s.calls++
	return s.outcome
}

var smallConfig = Config{Iterations: 100, WarmupIterations: 10}

func TestRunPrefersBridge(t *testing.T) {
	d := &stubDelegate{outcome: bridge.Outcome{
		Delegated: true,
		Metrics:   result.Map{"mean_ns": 42.0, "source": "bridge"},
	}}

	m, err := NewCacheOperations(d, ".", smallConfig).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, d.calls)
	mean, _ := m.Number("mean_ns")
	assert.Equal(t, 42.0, mean)
	// nothing simulated when the bridge delivered
	_, hasStatus := m["key_generation"]
	assert.False(t, hasStatus)
}

func TestRunFallsBackToSimulation(t *testing.T) {
	d := &stubDelegate{outcome: bridge.Outcome{Reason: "npm not found"}}

	m, err := NewProviderResolution(d, ".", smallConfig).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, d.calls, "exactly one bridge attempt, no retries")
	status, _ := m.String("status")
	assert.Equal(t, "simulated", status)
}

func TestProviderResolutionSimulated(t *testing.T) {
	m, err := NewProviderResolution(nil, ".", smallConfig).Run(context.Background())
	require.NoError(t, err)

	for _, key := range []string{"mean_ns", "median_ns", "p95_ns", "p99_ns", "min_ns", "max_ns", "throughput"} {
		_, ok := m.Number(key)
		assert.True(t, ok, key)
	}
	assert.Equal(t, smallConfig.Iterations, m["iterations"])
}

func TestCacheOperationsSimulated(t *testing.T) {
	m, err := NewCacheOperations(nil, ".", smallConfig).Run(context.Background())
	require.NoError(t, err)

	for _, phase := range []string{"key_generation", "set_operation", "get_hit", "get_miss"} {
		nested, ok := m[phase].(result.Map)
		require.True(t, ok, phase)
		mean, ok := nested.Number("mean_ns")
		assert.True(t, ok, phase)
		assert.Greater(t, mean, 0.0, phase)
	}

	_, ok := m.Number("mean_ns")
	assert.True(t, ok)
}

func TestMiddlewarePipelineSimulated(t *testing.T) {
	m, err := NewMiddlewarePipeline(nil, ".", smallConfig).Run(context.Background())
	require.NoError(t, err)

	single, ok := m["single_middleware"].(result.Map)
	require.True(t, ok)
	pipeline, ok := m["pipeline_5_middlewares"].(result.Map)
	require.True(t, ok)

	_, ok = single.Number("mean_ns")
	assert.True(t, ok)
	_, ok = pipeline.Number("overhead_per_middleware_ns")
	assert.True(t, ok)
}

func TestRequestTransformationSimulated(t *testing.T) {
	m, err := NewRequestTransformation(nil, ".", smallConfig).Run(context.Background())
	require.NoError(t, err)

	_, ok := m["request_transform"].(result.Map)
	assert.True(t, ok)
	_, ok = m["response_transform"].(result.Map)
	assert.True(t, ok)
}

func TestStreamParsingSimulated(t *testing.T) {
	m, err := NewStreamParsing(nil, ".", smallConfig).Run(context.Background())
	require.NoError(t, err)

	parsing, ok := m["chunk_parsing"].(result.Map)
	require.True(t, ok)
	_, ok = parsing.Number("per_chunk_ns")
	assert.True(t, ok)
	_, ok = m["stream_aggregation"].(result.Map)
	assert.True(t, ok)
	assert.Equal(t, 4, m["chunks_per_stream"])
}

func TestGenerateCacheKeyDeterministic(t *testing.T) {
	assert.Equal(t, generateCacheKey(7), generateCacheKey(7))

	seen := make(map[string]bool, 1000)
	for i := uint32(0); i < 1000; i++ {
		key := generateCacheKey(i)
		assert.False(t, seen[key], "collision at seed %d", i)
		seen[key] = true
	}
}

func TestCacheHitAndMissPaths(t *testing.T) {
	cache := make(map[string]string)
	for i := 0; i < 100; i++ {
		key := generateCacheKey(uint32(i))
		cache[key] = "value"
	}
	for i := 0; i < 100; i++ {
		_, hit := cache[generateCacheKey(uint32(i))]
		assert.True(t, hit)
		_, miss := cache["unused-key"]
		assert.False(t, miss)
	}
}

func TestTransformRequestShape(t *testing.T) {
	out := transformRequest(sampleRequest())

	assert.Equal(t, "gpt-4", out["model"])
	assert.Equal(t, 1000, out["max_tokens_to_sample"])
	assert.NotNil(t, out["prompt"])
	assert.NotContains(t, out, "messages")
}

func TestTransformResponseShape(t *testing.T) {
	out := transformResponse(sampleResponse())

	assert.Equal(t, "chatcmpl-123", out["id"])
	message, ok := out["content"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "assistant", message["role"])
}

func TestParseSSEChunk(t *testing.T) {
	content, ok := parseSSEChunk("data: {\"choices\":[{\"delta\":{\"content\":\"test\"}}]}\n\n")
	assert.True(t, ok)
	assert.Equal(t, "test", content)

	_, ok = parseSSEChunk("data: [DONE]\n\n")
	assert.False(t, ok)

	_, ok = parseSSEChunk("event: ping\n\n")
	assert.False(t, ok)

	_, ok = parseSSEChunk("data: {not json}\n\n")
	assert.False(t, ok)
}

func TestAggregateChunks(t *testing.T) {
	assert.Equal(t, "Hello world!", aggregateChunks(sampleChunks()))
	assert.Equal(t, "", aggregateChunks(nil))
}
