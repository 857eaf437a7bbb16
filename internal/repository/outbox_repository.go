package repository

import (
	"fmt"
	"time"

	"blkout_community_go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OutboxRepository manages the durable side-effect queue. Tasks are normally
// enqueued inside the content repositories' transactions; Enqueue exists for
// standalone use.
type OutboxRepository interface {
	Enqueue(task *model.OutboxTask) error
	// ClaimDue atomically moves up to limit due pending tasks to processing
	// and returns them. A claimed task is invisible to other workers. Tasks
	// left in processing by a worker that died mid-batch are handed back to
	// pending once their claim is older than staleClaimAge, so execution
	// stays at-least-once across crashes.
	ClaimDue(limit int, now time.Time) ([]model.OutboxTask, error)
	MarkDone(id string, now time.Time) error
	// MarkFailed records the error and either reschedules the task for
	// nextAttempt or, when dead, parks it permanently.
	MarkFailed(id string, taskErr string, nextAttempt time.Time, dead bool) error
	CountByStatus(status string) (int64, error)
}

// staleClaimAge bounds how long a task may sit in processing. A healthy
// worker finishes its batch well inside this; a claim older than it belongs
// to a dead process.
const staleClaimAge = 5 * time.Minute

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Enqueue(task *model.OutboxTask) error {
	if task == nil {
		return fmt.Errorf("task is nil")
	}
	return r.db.Create(task).Error
}

func (r *outboxRepository) ClaimDue(limit int, now time.Time) ([]model.OutboxTask, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	var claimed []model.OutboxTask
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Requeue orphaned claims before selecting, so a crashed worker's
		// tasks become eligible again on the next poll.
		if err := tx.Model(&model.OutboxTask{}).
			Where("status = ? AND updated_at < ?", model.TaskStatusProcessing, now.Add(-staleClaimAge)).
			Updates(map[string]interface{}{
				"status":          model.TaskStatusPending,
				"next_attempt_at": now,
			}).Error; err != nil {
			return err
		}

		var due []model.OutboxTask
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND next_attempt_at <= ?", model.TaskStatusPending, now).
			Order("next_attempt_at ASC").
			Limit(limit).
			Find(&due).Error; err != nil {
			return err
		}
		if len(due) == 0 {
			return nil
		}

		ids := make([]string, 0, len(due))
		for _, task := range due {
			ids = append(ids, task.ID)
		}
		if err := tx.Model(&model.OutboxTask{}).
			Where("id IN ?", ids).
			Update("status", model.TaskStatusProcessing).Error; err != nil {
			return err
		}

		for i := range due {
			due[i].Status = model.TaskStatusProcessing
		}
		claimed = due
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *outboxRepository) MarkDone(id string, now time.Time) error {
	res := r.db.Model(&model.OutboxTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       model.TaskStatusDone,
			"processed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *outboxRepository) MarkFailed(id string, taskErr string, nextAttempt time.Time, dead bool) error {
	status := model.TaskStatusPending
	if dead {
		status = model.TaskStatusDead
	}

	res := r.db.Model(&model.OutboxTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"attempts":        gorm.Expr("attempts + 1"),
			"next_attempt_at": nextAttempt,
			"last_error":      taskErr,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *outboxRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.OutboxTask{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
