package service

import (
	"encoding/json"
	"time"

	"blkout_community_go/internal/model"

	"github.com/google/uuid"
)

// newSyncTask builds a pending knowledge_sync outbox task for the content.
func newSyncTask(contentType string, contentID uint, now time.Time) *model.OutboxTask {
	payload, _ := json.Marshal(model.SyncTaskPayload{
		ContentType: contentType,
		ContentID:   contentID,
	})
	return &model.OutboxTask{
		ID:            uuid.NewString(),
		Kind:          model.TaskKindKnowledgeSync,
		Payload:       string(payload),
		Status:        model.TaskStatusPending,
		NextAttemptAt: now,
	}
}

// newWebhookTask builds a pending webhook outbox task announcing an
// approval to the community platform.
func newWebhookTask(contentType string, contentID uint, moderatorID string, now time.Time) *model.OutboxTask {
	payload, _ := json.Marshal(model.WebhookTaskPayload{
		Action:      "approved",
		ContentType: contentType,
		ContentID:   contentID,
		ModeratorID: moderatorID,
	})
	return &model.OutboxTask{
		ID:            uuid.NewString(),
		Kind:          model.TaskKindWebhook,
		Payload:       string(payload),
		Status:        model.TaskStatusPending,
		NextAttemptAt: now,
	}
}
