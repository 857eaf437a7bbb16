package repository

import (
	"errors"
	"testing"
	"time"

	"blkout_community_go/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockOutboxRepo(t *testing.T) (OutboxRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() error: %v", err)
	}

	return NewOutboxRepository(gdb), mock
}

func outboxRows(ids ...string) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "kind", "payload", "status", "attempts",
		"next_attempt_at", "last_error", "processed_at", "created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(id, model.TaskKindKnowledgeSync, "{}", model.TaskStatusPending, 0,
			now.Add(-time.Minute), "", nil, now, now)
	}
	return rows
}

func TestOutboxRepository_ClaimDue(t *testing.T) {
	repo, mock := newMockOutboxRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `outbox_tasks` SET .* WHERE status = \\? AND updated_at < \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM `outbox_tasks` WHERE status = \\? AND next_attempt_at <= \\? ORDER BY next_attempt_at ASC LIMIT \\? FOR UPDATE").
		WithArgs(model.TaskStatusPending, sqlmock.AnyArg(), 10).
		WillReturnRows(outboxRows("task-1", "task-2"))
	mock.ExpectExec("UPDATE `outbox_tasks` SET .* WHERE id IN \\(\\?,\\?\\)").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	claimed, err := repo.ClaimDue(10, time.Now())
	if err != nil {
		t.Fatalf("ClaimDue() error: %v", err)
	}
	if len(claimed) != 2 {
		t.Fatalf("expected 2 claimed tasks, got %d", len(claimed))
	}
	for _, task := range claimed {
		if task.Status != model.TaskStatusProcessing {
			t.Fatalf("claimed task %s should be processing, got %q", task.ID, task.Status)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOutboxRepository_ClaimDue_Empty(t *testing.T) {
	repo, mock := newMockOutboxRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `outbox_tasks` SET .* WHERE status = \\? AND updated_at < \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM `outbox_tasks` WHERE status = \\? AND next_attempt_at <= \\? ORDER BY next_attempt_at ASC LIMIT \\? FOR UPDATE").
		WillReturnRows(outboxRows())
	mock.ExpectCommit()

	claimed, err := repo.ClaimDue(10, time.Now())
	if err != nil {
		t.Fatalf("ClaimDue() error: %v", err)
	}
	if len(claimed) != 0 {
		t.Fatalf("expected no claimed tasks, got %d", len(claimed))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A task claimed by a worker that then crashed must not stay in processing
// forever: the next ClaimDue returns stale claims to pending so they run
// again.
func TestOutboxRepository_ClaimDue_RequeuesStaleProcessing(t *testing.T) {
	repo, mock := newMockOutboxRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `outbox_tasks` SET .* WHERE status = \\? AND updated_at < \\?").
		WithArgs(sqlmock.AnyArg(), model.TaskStatusPending, sqlmock.AnyArg(),
			model.TaskStatusProcessing, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM `outbox_tasks` WHERE status = \\? AND next_attempt_at <= \\? ORDER BY next_attempt_at ASC LIMIT \\? FOR UPDATE").
		WithArgs(model.TaskStatusPending, sqlmock.AnyArg(), 10).
		WillReturnRows(outboxRows("stale-task"))
	mock.ExpectExec("UPDATE `outbox_tasks` SET .* WHERE id IN \\(\\?\\)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	claimed, err := repo.ClaimDue(10, time.Now())
	if err != nil {
		t.Fatalf("ClaimDue() error: %v", err)
	}
	if len(claimed) != 1 || claimed[0].ID != "stale-task" {
		t.Fatalf("expected the requeued task to be claimed, got: %+v", claimed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOutboxRepository_MarkDone(t *testing.T) {
	repo, mock := newMockOutboxRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `outbox_tasks` SET .* WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.MarkDone("task-1", time.Now()); err != nil {
		t.Fatalf("MarkDone() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	repo, mock := newMockOutboxRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `outbox_tasks` SET `attempts`=attempts \\+ 1,.* WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.MarkFailed("task-1", "connection refused", time.Now().Add(30*time.Second), false); err != nil {
		t.Fatalf("MarkFailed() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOutboxRepository_MarkFailed_MissingTask(t *testing.T) {
	repo, mock := newMockOutboxRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `outbox_tasks` SET .* WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.MarkFailed("missing", "boom", time.Now(), true)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got: %v", err)
	}
}
