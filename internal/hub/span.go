package hub

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"hubbench/internal/metrics"
)

// SpanAdapter records coarse per-call telemetry. Unknown span ids are
// ignored rather than treated as errors.
type SpanAdapter struct {
	m *metrics.Metrics

	mu    sync.Mutex
	next  atomic.Uint64
	spans map[string]spanInfo
}

type spanInfo struct {
	provider string
	model    string
}

func NewSpanAdapter(m *metrics.Metrics) *SpanAdapter {
	return &SpanAdapter{m: m, spans: make(map[string]spanInfo)}
}

// StartSpan opens a span for one provider call and returns its id.
func (s *SpanAdapter) StartSpan(provider, model string) string {
	id := fmt.Sprintf("span-%d", s.next.Add(1))
	s.mu.Lock()
	s.spans[id] = spanInfo{provider: provider, model: model}
	s.mu.Unlock()
	if s.m != nil {
		s.m.SpansStarted.WithLabelValues(provider).Inc()
	}
	return id
}

// RecordUsage attributes token counts to an open span.
func (s *SpanAdapter) RecordUsage(spanID string, promptTokens, completionTokens int) {
	s.mu.Lock()
	info, ok := s.spans[spanID]
	s.mu.Unlock()
	if !ok || s.m == nil {
		return
	}
	s.m.PromptTokens.WithLabelValues(info.provider).Add(float64(promptTokens))
	s.m.CompletionTokens.WithLabelValues(info.provider).Add(float64(completionTokens))
}

// FinishSpan closes a span. Finishing an unknown id is a no-op.
func (s *SpanAdapter) FinishSpan(spanID string, success bool) {
	s.mu.Lock()
	info, ok := s.spans[spanID]
	if ok {
		delete(s.spans, spanID)
	}
	s.mu.Unlock()
	if !ok || s.m == nil {
		return
	}
	s.m.SpansFinished.WithLabelValues(info.provider, strconv.FormatBool(success)).Inc()
}

// Open reports how many spans are currently in flight.
func (s *SpanAdapter) Open() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spans)
}
