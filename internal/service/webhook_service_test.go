package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blkout_community_go/internal/model"
)

func TestWebhookNotifier_DeliversPayload(t *testing.T) {
	var gotBody map[string]interface{}
	var gotDeliveryID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected JSON content type, got %q", ct)
		}
		gotDeliveryID = r.Header.Get("X-Delivery-ID")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(srv.URL, 5*time.Second)
	err := notifier.Notify(context.Background(), "delivery-1", model.WebhookTaskPayload{
		Action:      "approved",
		ContentType: model.ContentTypeEvent,
		ContentID:   7,
		ModeratorID: "mod-1",
	})
	if err != nil {
		t.Fatalf("Notify() error: %v", err)
	}

	if gotDeliveryID != "delivery-1" {
		t.Fatalf("expected delivery id to be forwarded, got %q", gotDeliveryID)
	}
	if gotBody["action"] != "approved" ||
		gotBody["contentType"] != "event" ||
		gotBody["contentId"] != float64(7) ||
		gotBody["moderatorId"] != "mod-1" {
		t.Fatalf("unexpected payload: %v", gotBody)
	}
}

func TestWebhookNotifier_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(srv.URL, 5*time.Second)
	err := notifier.Notify(context.Background(), "delivery-1", model.WebhookTaskPayload{Action: "approved"})
	if err == nil {
		t.Fatal("expected an error for a 502 response")
	}
}

func TestWebhookNotifier_MissingURL(t *testing.T) {
	notifier := NewWebhookNotifier("", time.Second)
	if err := notifier.Notify(context.Background(), "", model.WebhookTaskPayload{}); err == nil {
		t.Fatal("expected an error without a configured url")
	}
}
