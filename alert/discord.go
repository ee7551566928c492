package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/skywatch-go/skywatch/monitoring"
)

// DiscordNotifier posts alert embeds to a Discord webhook, the
// notifier shape this pipeline was designed against.
type DiscordNotifier struct {
	webhookID    string
	webhookToken string
	baseURL      string
	client       *http.Client
}

// NewDiscordNotifier builds a notifier against
// https://discord.com/api/webhooks/<id>/<token>. An empty id or token
// makes every Notify call a no-op failure, so a deployment without
// Discord credentials configured still runs the rest of the pipeline.
func NewDiscordNotifier(webhookID, webhookToken string, client *http.Client) *DiscordNotifier {
	return &DiscordNotifier{
		webhookID:    webhookID,
		webhookToken: webhookToken,
		baseURL:      "https://discord.com/api/webhooks",
		client:       client,
	}
}

type discordPayload struct {
	Content string  `json:"content"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Notify posts content and embed to the configured webhook.
func (d *DiscordNotifier) Notify(ctx context.Context, content string, embed Embed) error {
	if d.webhookID == "" || d.webhookToken == "" {
		return fmt.Errorf("discord: webhook not configured")
	}

	url := fmt.Sprintf("%s/%s/%s", d.baseURL, d.webhookID, d.webhookToken)
	ctx, end := monitoring.StartClientSpan(ctx, "discord", "notify", url, http.MethodPost)
	defer end()

	body, err := json.Marshal(discordPayload{Content: content, Embeds: []Embed{embed}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord: HTTP %d", resp.StatusCode)
	}
	return nil
}
