package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"blkout_community_go/internal/model"

	"github.com/google/uuid"
)

// WebhookNotifier announces moderation approvals to the community platform.
// A non-2xx response is an error; the outbox worker owns retries. deliveryID
// identifies the logical delivery so the receiver can dedup retried
// attempts; the worker passes the outbox task id.
type WebhookNotifier interface {
	Notify(ctx context.Context, deliveryID string, payload model.WebhookTaskPayload) error
}

type webhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string, timeout time.Duration) WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &webhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// notificationBody is the wire shape the receiving platform expects.
type notificationBody struct {
	Action      string `json:"action"`
	ContentType string `json:"contentType"`
	ContentID   uint   `json:"contentId"`
	ModeratorID string `json:"moderatorId"`
}

func (n *webhookNotifier) Notify(ctx context.Context, deliveryID string, payload model.WebhookTaskPayload) error {
	if n.url == "" {
		return fmt.Errorf("webhook url is not configured")
	}
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}

	body, err := json.Marshal(notificationBody{
		Action:      payload.Action,
		ContentType: payload.ContentType,
		ContentID:   payload.ContentID,
		ModeratorID: payload.ModeratorID,
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-ID", deliveryID)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
