package store

import (
	"fmt"
	"sort"
	"strings"

	"hubbench/internal/result"
)

// GenerateMarkdown renders the human-readable report: one section per result
// with the well-known metric fields when present, including nested phase
// breakdowns.
func GenerateMarkdown(results []result.Result, title string) string {
	var b strings.Builder

	if title == "" {
		title = "Benchmark Results"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(results) > 0 {
		fmt.Fprintf(&b, "Run at: %s\n\n", results[0].Timestamp.Format("2006-01-02 15:04:05 UTC"))
	}

	successful := 0
	for _, r := range results {
		if r.IsSuccess() {
			successful++
		}
	}
	fmt.Fprintf(&b, "Total: %d | Successful: %d | Failed: %d\n\n", len(results), successful, len(results)-successful)

	for _, r := range results {
		status := "OK"
		if !r.IsSuccess() {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "## [%s] %s\n\n", status, r.TargetID)

		if msg, ok := r.Metrics.String("error"); ok {
			fmt.Fprintf(&b, "Error: %s\n\n", msg)
			continue
		}

		writeMetricLines(&b, r.Metrics, "")
		b.WriteString("\n")
	}

	return b.String()
}

// wellKnownOrder fixes the rendering order for conventional keys; everything
// else follows alphabetically.
var wellKnownOrder = []string{"mean_ns", "p50_ns", "p95_ns", "p99_ns", "min_ns", "max_ns", "throughput", "iterations", "status"}

func writeMetricLines(b *strings.Builder, m result.Map, indent string) {
	rank := make(map[string]int, len(wellKnownOrder))
	for i, k := range wellKnownOrder {
		rank[k] = i + 1
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank[keys[i]], rank[keys[j]]
		if ri != rj {
			if ri == 0 {
				return false
			}
			if rj == 0 {
				return true
			}
			return ri < rj
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		switch v := m[k].(type) {
		case result.Map:
			fmt.Fprintf(b, "%s- **%s**:\n", indent, k)
			writeMetricLines(b, v, indent+"  ")
		case map[string]any:
			fmt.Fprintf(b, "%s- **%s**:\n", indent, k)
			writeMetricLines(b, result.Map(v), indent+"  ")
		case float64:
			fmt.Fprintf(b, "%s- **%s**: %.2f\n", indent, k, v)
		default:
			fmt.Fprintf(b, "%s- **%s**: %v\n", indent, k, v)
		}
	}
}
