// Package notify posts run-completion messages to Slack. Notification is
// strictly after-the-fact: nothing here runs while targets are measuring.
package notify

import (
	"context"
	"fmt"
	"os"

	"hubbench/internal/result"
)

// Notifier delivers a message about a finished run.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// FromEnv picks a notifier from the environment: the API client when a bot
// token is present, the webhook fallback otherwise. Returns nil when neither
// is configured.
func FromEnv(channel string) Notifier {
	if token := os.Getenv("SLACK_BOT_TOKEN"); token != "" {
		return NewAPINotifier(token, channel)
	}
	if url := os.Getenv("SLACK_WEBHOOK_URL"); url != "" {
		return NewWebhookNotifier(url)
	}
	return nil
}

// RunMessage formats the completion summary for a result set.
func RunMessage(results []result.Result) string {
	failed := 0
	for _, r := range results {
		if !r.IsSuccess() {
			failed++
		}
	}
	if failed == 0 {
		return fmt.Sprintf("hubbench run completed: %d targets, all successful", len(results))
	}
	return fmt.Sprintf("hubbench run completed: %d targets, %d failed", len(results), failed)
}
