package service

import (
	"errors"
	"testing"
	"time"

	"blkout_community_go/internal/model"
)

func TestSubmitEvent_Pending(t *testing.T) {
	var created *model.Event
	repo := &fakeEventRepo{
		createFn: func(event *model.Event) error {
			event.ID = 1
			created = event
			return nil
		},
	}
	svc := NewSubmissionService(repo, &fakeArticleRepo{})

	event, err := svc.SubmitEvent(SubmitEventRequest{
		Title:       "Housing Workshop",
		Description: "Know your rights",
		Date:        time.Now(),
	})
	if err != nil {
		t.Fatalf("SubmitEvent() error: %v", err)
	}
	if event.Status != model.EventStatusPending {
		t.Fatalf("expected status %q, got %q", model.EventStatusPending, event.Status)
	}
	if created == nil {
		t.Fatal("expected the event to be stored")
	}
}

func TestSubmitEvent_MissingFields(t *testing.T) {
	svc := NewSubmissionService(&fakeEventRepo{}, &fakeArticleRepo{})

	cases := []SubmitEventRequest{
		{Description: "no title", Date: time.Now()},
		{Title: "no description", Date: time.Now()},
		{Title: "no date", Description: "missing"},
		{Title: "   ", Description: "blank title", Date: time.Now()},
	}
	for _, req := range cases {
		if _, err := svc.SubmitEvent(req); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %+v, got: %v", req, err)
		}
	}
}

func TestSubmitEvent_AutoApprove_EnqueuesTasks(t *testing.T) {
	var tasks []*model.OutboxTask
	repo := &fakeEventRepo{
		createWithTasksFn: func(event *model.Event, buildTasks func(eventID uint) []*model.OutboxTask) error {
			event.ID = 42
			tasks = buildTasks(event.ID)
			return nil
		},
	}
	svc := NewSubmissionService(repo, &fakeArticleRepo{})

	event, err := svc.SubmitEvent(SubmitEventRequest{
		Title:       "Housing Workshop",
		Description: "Know your rights",
		Date:        time.Now(),
		AutoApprove: true,
	})
	if err != nil {
		t.Fatalf("SubmitEvent() error: %v", err)
	}
	if event.Status != model.EventStatusApproved {
		t.Fatalf("expected status %q, got %q", model.EventStatusApproved, event.Status)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 outbox tasks, got %d", len(tasks))
	}
	kinds := map[string]bool{}
	for _, task := range tasks {
		kinds[task.Kind] = true
		if task.Status != model.TaskStatusPending {
			t.Fatalf("task %s should be pending, got %q", task.ID, task.Status)
		}
	}
	if !kinds[model.TaskKindKnowledgeSync] || !kinds[model.TaskKindWebhook] {
		t.Fatalf("expected one sync and one webhook task, got: %v", kinds)
	}
}

func TestSubmitArticle_Review(t *testing.T) {
	var gotTags []string
	repo := &fakeArticleRepo{
		createWithTagsFn: func(article *model.NewsroomArticle, tagNames []string, buildTasks func(uint) []*model.OutboxTask) error {
			article.ID = 5
			gotTags = tagNames
			if buildTasks != nil {
				t.Fatal("no outbox tasks expected without auto-approval")
			}
			return nil
		},
	}
	svc := NewSubmissionService(&fakeEventRepo{}, repo)

	article, err := svc.SubmitArticle(SubmitArticleRequest{
		Title:       "Community Update",
		Body:        "What happened this month",
		AuthorName:  "Ade",
		AuthorEmail: "ade@example.org",
		Category:    "News",
		Tags:        []string{"Housing", "housing", " Health "},
	})
	if err != nil {
		t.Fatalf("SubmitArticle() error: %v", err)
	}
	if article.Status != model.ArticleStatusReview {
		t.Fatalf("expected status %q, got %q", model.ArticleStatusReview, article.Status)
	}
	if len(gotTags) != 2 || gotTags[0] != "housing" || gotTags[1] != "health" {
		t.Fatalf("expected normalized tags [housing health], got %v", gotTags)
	}
	if article.AuthorID == nil || article.CategoryID == nil {
		t.Fatal("expected author and category to be resolved")
	}
}

func TestSubmitArticle_MissingFields(t *testing.T) {
	svc := NewSubmissionService(&fakeEventRepo{}, &fakeArticleRepo{})

	if _, err := svc.SubmitArticle(SubmitArticleRequest{Body: "no title"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got: %v", err)
	}
	if _, err := svc.SubmitArticle(SubmitArticleRequest{Title: "no body"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got: %v", err)
	}
}

func TestSubmitArticle_AutoApprove(t *testing.T) {
	var tasks []*model.OutboxTask
	repo := &fakeArticleRepo{
		createWithTagsFn: func(article *model.NewsroomArticle, tagNames []string, buildTasks func(uint) []*model.OutboxTask) error {
			article.ID = 9
			if buildTasks != nil {
				tasks = buildTasks(article.ID)
			}
			return nil
		},
	}
	svc := NewSubmissionService(&fakeEventRepo{}, repo)

	article, err := svc.SubmitArticle(SubmitArticleRequest{
		Title:       "Community Update",
		Body:        "What happened this month",
		AutoApprove: true,
	})
	if err != nil {
		t.Fatalf("SubmitArticle() error: %v", err)
	}
	if article.Status != model.ArticleStatusPublished {
		t.Fatalf("expected status %q, got %q", model.ArticleStatusPublished, article.Status)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 outbox tasks, got %d", len(tasks))
	}
}
