package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blkout_community_go/internal/model"
	"blkout_community_go/internal/repository"
	"blkout_community_go/pkg/log"
)

// OutboxWorker drains the durable side-effect queue: knowledge syncs and
// webhook notifications recorded by submissions and moderation decisions.
// Failed tasks retry with exponential backoff until maxAttempts, then park
// as dead. Task execution is at-least-once; both task kinds tolerate
// repeats (sync is idempotent, webhook deliveries carry a dedup id).
type OutboxWorker struct {
	outboxRepo  repository.OutboxRepository
	knowledge   KnowledgeService
	notifier    WebhookNotifier
	interval    time.Duration
	batchSize   int
	maxAttempts int
	baseBackoff time.Duration
}

func NewOutboxWorker(
	outboxRepo repository.OutboxRepository,
	knowledge KnowledgeService,
	notifier WebhookNotifier,
	interval time.Duration,
	batchSize, maxAttempts int,
) *OutboxWorker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &OutboxWorker{
		outboxRepo:  outboxRepo,
		knowledge:   knowledge,
		notifier:    notifier,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		baseBackoff: 30 * time.Second,
	}
}

// Start polls until the context is cancelled. Run it in its own goroutine.
func (w *OutboxWorker) Start(ctx context.Context) {
	log.Infof("outbox worker started, polling every %s", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce claims and processes one batch of due tasks, returning how many
// tasks it handled. Split out from Start so tests can drive the worker
// without timing.
func (w *OutboxWorker) RunOnce(ctx context.Context) int {
	tasks, err := w.outboxRepo.ClaimDue(w.batchSize, time.Now())
	if err != nil {
		log.Error("failed to claim outbox tasks", err)
		return 0
	}

	for _, task := range tasks {
		if err := w.process(ctx, &task); err != nil {
			w.recordFailure(&task, err)
			continue
		}
		if err := w.outboxRepo.MarkDone(task.ID, time.Now()); err != nil {
			log.Error("failed to mark outbox task done", err)
		}
	}
	return len(tasks)
}

func (w *OutboxWorker) process(ctx context.Context, task *model.OutboxTask) error {
	switch task.Kind {
	case model.TaskKindKnowledgeSync:
		var payload model.SyncTaskPayload
		if err := json.Unmarshal([]byte(task.Payload), &payload); err != nil {
			return fmt.Errorf("decode sync payload: %w", err)
		}
		switch payload.ContentType {
		case model.ContentTypeEvent:
			return w.knowledge.SyncEvent(ctx, payload.ContentID)
		case model.ContentTypeArticle:
			return w.knowledge.SyncArticle(ctx, payload.ContentID)
		default:
			return fmt.Errorf("unknown content type %q", payload.ContentType)
		}

	case model.TaskKindWebhook:
		var payload model.WebhookTaskPayload
		if err := json.Unmarshal([]byte(task.Payload), &payload); err != nil {
			return fmt.Errorf("decode webhook payload: %w", err)
		}
		return w.notifier.Notify(ctx, task.ID, payload)

	default:
		return fmt.Errorf("unknown task kind %q", task.Kind)
	}
}

func (w *OutboxWorker) recordFailure(task *model.OutboxTask, taskErr error) {
	attempts := task.Attempts + 1
	dead := attempts >= w.maxAttempts
	next := time.Now().Add(w.backoff(attempts))

	if dead {
		log.Warnw("outbox task dead after max attempts",
			"task_id", task.ID, "kind", task.Kind, "attempts", attempts, "error", taskErr)
	} else {
		log.Warnw("outbox task failed, will retry",
			"task_id", task.ID, "kind", task.Kind, "attempts", attempts,
			"next_attempt_at", next, "error", taskErr)
	}

	if err := w.outboxRepo.MarkFailed(task.ID, taskErr.Error(), next, dead); err != nil {
		log.Error("failed to record outbox task failure", err)
	}
}

// backoff doubles per attempt from the base, capped at 30 minutes.
func (w *OutboxWorker) backoff(attempts int) time.Duration {
	d := w.baseBackoff
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= 30*time.Minute {
			return 30 * time.Minute
		}
	}
	return d
}
