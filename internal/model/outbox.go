package model

import "time"

// Outbox task kinds.
const (
	TaskKindKnowledgeSync = "knowledge_sync"
	TaskKindWebhook       = "webhook"
)

// Outbox task states. A task goes pending -> processing -> done, back to
// pending on a retryable failure, or to dead once attempts are exhausted.
const (
	TaskStatusPending    = "pending"
	TaskStatusProcessing = "processing"
	TaskStatusDone       = "done"
	TaskStatusDead       = "dead"
)

// OutboxTask is a durable side-effect record. Approving a submission writes
// the status flip and its tasks in one transaction, so a moderation decision
// can never be committed without its downstream work being recorded.
type OutboxTask struct {
	ID            string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Kind          string     `gorm:"type:varchar(32);index;not null" json:"kind"`
	Payload       string     `gorm:"type:text;not null" json:"payload"`
	Status        string     `gorm:"type:varchar(16);index;not null" json:"status"`
	Attempts      int        `gorm:"default:0" json:"attempts"`
	NextAttemptAt time.Time  `gorm:"index" json:"next_attempt_at"`
	LastError     string     `gorm:"type:text" json:"last_error"`
	ProcessedAt   *time.Time `json:"processed_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OutboxTask) TableName() string {
	return "outbox_tasks"
}

// SyncTaskPayload is the payload of a knowledge_sync task.
type SyncTaskPayload struct {
	ContentType string `json:"content_type"`
	ContentID   uint   `json:"content_id"`
}

// WebhookTaskPayload is the payload of a webhook task.
type WebhookTaskPayload struct {
	Action      string `json:"action"`
	ContentType string `json:"content_type"`
	ContentID   uint   `json:"content_id"`
	ModeratorID string `json:"moderator_id"`
}
