// Package ui renders benchmark results for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"hubbench/internal/result"
)

// RenderResults formats one line per result for the run command's console
// output.
func RenderResults(results []result.Result) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Benchmark Results"))
	sb.WriteString("\n\n")

	for _, res := range results {
		if res.IsSuccess() {
			sb.WriteString(okStyle.Render("  OK"))
		} else {
			sb.WriteString(failStyle.Render("FAIL"))
		}
		sb.WriteString("  ")
		sb.WriteString(targetStyle.Render(res.TargetID))

		if !res.IsSuccess() {
			if msg, ok := res.Metrics.String("error"); ok {
				sb.WriteString("  ")
				sb.WriteString(dimStyle.Render(msg))
			}
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(dimStyle.Render(metricSummary(res)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderFooter formats the closing count line for a batch of results.
func RenderFooter(results []result.Result) string {
	failed := 0
	for _, res := range results {
		if !res.IsSuccess() {
			failed++
		}
	}
	line := fmt.Sprintf("%d targets, %d succeeded, %d failed",
		len(results), len(results)-failed, failed)
	return footerStyle.Render(line)
}

func metricSummary(res result.Result) string {
	var parts []string
	if mean, ok := res.MeanNs(); ok {
		parts = append(parts, fmt.Sprintf("mean %s", formatNs(float64(mean))))
	}
	if p99, ok := res.P99Ns(); ok {
		parts = append(parts, fmt.Sprintf("p99 %s", formatNs(float64(p99))))
	}
	if tp, ok := res.Throughput(); ok {
		parts = append(parts, fmt.Sprintf("%.0f ops/s", tp))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, "  ")
}

func formatNs(ns float64) string {
	switch {
	case ns >= 1e9:
		return fmt.Sprintf("%.2fs", ns/1e9)
	case ns >= 1e6:
		return fmt.Sprintf("%.2fms", ns/1e6)
	case ns >= 1e3:
		return fmt.Sprintf("%.2fµs", ns/1e3)
	default:
		return fmt.Sprintf("%.0fns", ns)
	}
}

// RenderMarkdown renders a markdown document for the terminal. On any
// renderer failure it falls back to the raw text.
func RenderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}
