package service

import (
	"errors"
	"testing"
	"time"

	"blkout_community_go/internal/model"
	"blkout_community_go/internal/repository"

	"gorm.io/gorm"
)

func TestModerationQueue_MergesAndSorts(t *testing.T) {
	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	eventRepo := &fakeEventRepo{
		searchFn: func(status, query string) ([]model.Event, error) {
			if status != model.EventStatusPending {
				t.Fatalf("expected event status filter %q, got %q", model.EventStatusPending, status)
			}
			return []model.Event{{ID: 1, Title: "Workshop", Status: status, SubmittedAt: older}}, nil
		},
	}
	articleRepo := &fakeArticleRepo{
		searchFn: func(status, query string) ([]model.NewsroomArticle, error) {
			// The logical "pending" filter maps to the article literal.
			if status != model.ArticleStatusReview {
				t.Fatalf("expected article status filter %q, got %q", model.ArticleStatusReview, status)
			}
			return []model.NewsroomArticle{{
				ID:          2,
				Title:       "Update",
				Status:      status,
				SubmittedAt: newer,
				Author:      &model.CommunityMember{ID: 5, Name: "Ade"},
				Category:    &model.Category{ID: 9, Name: "Housing"},
			}}, nil
		},
	}

	svc := NewModerationService(eventRepo, articleRepo)
	items, err := svc.Queue("pending", "", "")
	if err != nil {
		t.Fatalf("Queue() error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 queue items, got %d", len(items))
	}
	if items[0].Type != model.ContentTypeArticle || items[1].Type != model.ContentTypeEvent {
		t.Fatalf("expected newest-first ordering, got: %+v", items)
	}
	if items[0].Author != "Ade" || items[0].Category != "Housing" {
		t.Fatalf("expected article author and category names on the queue item, got: %+v", items[0])
	}
}

func TestModerationQueue_UnknownType(t *testing.T) {
	svc := NewModerationService(&fakeEventRepo{}, &fakeArticleRepo{})

	if _, err := svc.Queue("pending", "podcast", ""); !errors.Is(err, ErrUnknownContentType) {
		t.Fatalf("expected ErrUnknownContentType, got: %v", err)
	}
}

func TestModerationApprove_Event(t *testing.T) {
	var gotFrom []string
	var gotTo string
	var gotTasks []*model.OutboxTask
	eventRepo := &fakeEventRepo{
		updateStatusFn: func(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error {
			gotFrom, gotTo, gotTasks = from, to, tasks
			if updates["moderation_notes"] != "solid event" {
				t.Fatalf("expected moderation notes update, got: %v", updates)
			}
			return nil
		},
	}

	svc := NewModerationService(eventRepo, &fakeArticleRepo{})
	if err := svc.Approve(model.ContentTypeEvent, 7, "solid event", "mod-1"); err != nil {
		t.Fatalf("Approve() error: %v", err)
	}
	if len(gotFrom) != 1 || gotFrom[0] != model.EventStatusPending || gotTo != model.EventStatusApproved {
		t.Fatalf("unexpected transition %v -> %q", gotFrom, gotTo)
	}
	if len(gotTasks) != 2 {
		t.Fatalf("expected sync and webhook tasks, got %d", len(gotTasks))
	}
}

func TestModerationApprove_ArticleUsesPublishLiterals(t *testing.T) {
	articleRepo := &fakeArticleRepo{
		updateStatusFn: func(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error {
			if len(from) != 1 || from[0] != model.ArticleStatusReview || to != model.ArticleStatusPublished {
				t.Fatalf("unexpected transition %v -> %q", from, to)
			}
			return nil
		},
	}

	svc := NewModerationService(&fakeEventRepo{}, articleRepo)
	if err := svc.Approve(model.ContentTypeArticle, 3, "", "mod-1"); err != nil {
		t.Fatalf("Approve() error: %v", err)
	}
}

func TestModerationApprove_AlreadyDecided(t *testing.T) {
	eventRepo := &fakeEventRepo{
		updateStatusFn: func(uint, []string, string, map[string]interface{}, []*model.OutboxTask) error {
			return repository.ErrInvalidTransition
		},
	}

	svc := NewModerationService(eventRepo, &fakeArticleRepo{})
	if err := svc.Approve(model.ContentTypeEvent, 7, "", "mod-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got: %v", err)
	}
}

func TestModerationApprove_NotFound(t *testing.T) {
	eventRepo := &fakeEventRepo{
		updateStatusFn: func(uint, []string, string, map[string]interface{}, []*model.OutboxTask) error {
			return gorm.ErrRecordNotFound
		},
	}

	svc := NewModerationService(eventRepo, &fakeArticleRepo{})
	if err := svc.Approve(model.ContentTypeEvent, 404, "", "mod-1"); !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got: %v", err)
	}
}

func TestModerationReject_NoTasks(t *testing.T) {
	eventRepo := &fakeEventRepo{
		updateStatusFn: func(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error {
			if to != model.EventStatusRejected {
				t.Fatalf("expected rejected status, got %q", to)
			}
			if tasks != nil {
				t.Fatal("rejection must not enqueue downstream tasks")
			}
			if updates["flagged_reasons"] != "duplicate listing" {
				t.Fatalf("expected flagged reason update, got: %v", updates)
			}
			return nil
		},
	}

	svc := NewModerationService(eventRepo, &fakeArticleRepo{})
	if err := svc.Reject(model.ContentTypeEvent, 7, "duplicate listing"); err != nil {
		t.Fatalf("Reject() error: %v", err)
	}
}

func TestModerationApproveReject_UnknownType(t *testing.T) {
	svc := NewModerationService(&fakeEventRepo{}, &fakeArticleRepo{})

	if err := svc.Approve("podcast", 1, "", "mod-1"); !errors.Is(err, ErrUnknownContentType) {
		t.Fatalf("expected ErrUnknownContentType, got: %v", err)
	}
	if err := svc.Reject("podcast", 1, ""); !errors.Is(err, ErrUnknownContentType) {
		t.Fatalf("expected ErrUnknownContentType, got: %v", err)
	}
}
