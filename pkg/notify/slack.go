package notify

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// Webhook posts to a Slack incoming webhook.
type Webhook struct {
	url        string
	httpClient *http.Client
}

// NewWebhook creates a Webhook. A nil httpClient uses http.DefaultClient.
func NewWebhook(url string, httpClient *http.Client) *Webhook {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Webhook{url: url, httpClient: httpClient}
}

func (w *Webhook) Post(ctx context.Context, text string) (Result, error) {
	msg := &slack.WebhookMessage{Text: text}
	if err := slack.PostWebhookCustomHTTPContext(ctx, w.url, w.httpClient, msg); err != nil {
		return Result{}, errors.Wrap(err, "post slack webhook")
	}
	return Result{Destination: "slack-webhook"}, nil
}

// Bot posts to a channel as a Slack app using a bot token.
type Bot struct {
	api     *slack.Client
	channel string
}

// NewBot creates a Bot. apiURL may be empty for Slack's default; it must end
// in a slash otherwise.
func NewBot(token, channel, apiURL string, httpClient *http.Client) *Bot {
	opts := []slack.Option{}
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	if httpClient != nil {
		opts = append(opts, slack.OptionHTTPClient(httpClient))
	}
	return &Bot{
		api:     slack.New(token, opts...),
		channel: channel,
	}
}

func (b *Bot) Post(ctx context.Context, text string) (Result, error) {
	channel, ts, err := b.api.PostMessageContext(ctx, b.channel, slack.MsgOptionText(text, false))
	if err != nil {
		return Result{}, errors.Wrapf(err, "post to slack channel %q", b.channel)
	}
	return Result{
		Destination: "slack-bot",
		Channel:     channel,
		Timestamp:   ts,
	}, nil
}
