package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SlackNotifier posts chart notifications to a Slack incoming webhook.
// Dispatch is strictly best-effort: callers fire it from a goroutine and
// only log failures, so a broken webhook never fails a render request.
type SlackNotifier struct {
	client     *resty.Client
	webhookURL string
	log        *zap.Logger
}

// NewSlackNotifier creates a notifier for the given webhook URL.
func NewSlackNotifier(webhookURL string, log *zap.Logger) *SlackNotifier {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(1 * time.Second)

	return &SlackNotifier{
		client:     client,
		webhookURL: webhookURL,
		log:        log,
	}
}

type slackMessage struct {
	Channel     string            `json:"channel"`
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Fallback string `json:"fallback"`
	ImageURL string `json:"image_url"`
}

// Send posts a message referencing the chart URL to the given channel.
func (n *SlackNotifier) Send(ctx context.Context, channel, text, imageURL string) error {
	payload := slackMessage{
		Channel: channel,
		Text:    text,
		Attachments: []slackAttachment{
			{Fallback: text, ImageURL: imageURL},
		},
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("slack webhook request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("slack webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}

	n.log.Info("notification sent",
		zap.String("channel", channel),
		zap.String("image_url", imageURL))
	return nil
}
