package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// APINotifier posts via the Slack Web API using a bot token.
type APINotifier struct {
	client  *slack.Client
	channel string
}

func NewAPINotifier(token, channel string) *APINotifier {
	return &APINotifier{
		client:  slack.New(token),
		channel: channel,
	}
}

func (n *APINotifier) Notify(ctx context.Context, message string) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel, slack.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("failed to post slack message: %w", err)
	}
	return nil
}

// WebhookNotifier posts to an incoming-webhook URL; no token required.
type WebhookNotifier struct {
	url string
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{url: url}
}

func (n *WebhookNotifier) Notify(ctx context.Context, message string) error {
	err := slack.PostWebhookContext(ctx, n.url, &slack.WebhookMessage{Text: message})
	if err != nil {
		return fmt.Errorf("failed to post slack webhook: %w", err)
	}
	return nil
}
