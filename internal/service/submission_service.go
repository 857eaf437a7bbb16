package service

import (
	"strings"
	"time"

	"blkout_community_go/internal/model"
	"blkout_community_go/internal/repository"
	"blkout_community_go/pkg/log"
)

// SubmissionService accepts community content submissions and serves the
// public listings.
type SubmissionService interface {
	SubmitEvent(req SubmitEventRequest) (*model.Event, error)
	SubmitArticle(req SubmitArticleRequest) (*model.NewsroomArticle, error)
	ListEvents() ([]model.Event, error)
	ListNews() ([]model.NewsroomArticle, error)
}

// SubmitEventRequest is the validated input for an event submission.
type SubmitEventRequest struct {
	Title           string
	Description     string
	Date            time.Time
	Location        string
	Organizer       string
	EventType       string
	Category        string
	CommunityValues []string
	TraumaInformed  bool
	AutoApprove     bool
}

// SubmitArticleRequest is the validated input for a newsroom submission.
type SubmitArticleRequest struct {
	Title           string
	Excerpt         string
	Body            string
	AuthorName      string
	AuthorEmail     string
	Category        string
	Tags            []string
	CommunityValues []string
	TraumaInformed  bool
	AutoApprove     bool
}

type submissionService struct {
	eventRepo   repository.EventRepository
	articleRepo repository.ArticleRepository
}

func NewSubmissionService(eventRepo repository.EventRepository, articleRepo repository.ArticleRepository) SubmissionService {
	return &submissionService{eventRepo: eventRepo, articleRepo: articleRepo}
}

// SubmitEvent stores an event submission.
// Key rules:
//  1. title, description and date are required.
//  2. status is "pending" unless auto-approval is requested, then "approved".
//  3. an auto-approved event enqueues its knowledge-sync and webhook tasks
//     in the same transaction as the insert; nothing is written on failure.
func (s *submissionService) SubmitEvent(req SubmitEventRequest) (*model.Event, error) {
	if s.eventRepo == nil {
		return nil, ErrInternal
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Description == "" || req.Date.IsZero() {
		return nil, ErrMissingFields
	}

	status := model.EventStatusPending
	if req.AutoApprove {
		status = model.EventStatusApproved
	}

	event := &model.Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Location:        strings.TrimSpace(req.Location),
		Organizer:       strings.TrimSpace(req.Organizer),
		EventType:       strings.ToLower(strings.TrimSpace(req.EventType)),
		Category:        strings.TrimSpace(req.Category),
		CommunityValues: model.JoinList(req.CommunityValues),
		TraumaInformed:  req.TraumaInformed,
		Status:          status,
	}

	if !req.AutoApprove {
		if err := s.eventRepo.Create(event); err != nil {
			return nil, err
		}
		return event, nil
	}

	now := time.Now()
	err := s.eventRepo.CreateWithTasks(event, func(eventID uint) []*model.OutboxTask {
		return []*model.OutboxTask{
			newSyncTask(model.ContentTypeEvent, eventID, now),
			newWebhookTask(model.ContentTypeEvent, eventID, "auto-approval", now),
		}
	})
	if err != nil {
		return nil, err
	}
	log.Infow("event auto-approved", "event_id", event.ID, "title", event.Title)
	return event, nil
}

// SubmitArticle stores a newsroom submission. Articles use different status
// literals from events: "review" while waiting, "published" when approved.
func (s *submissionService) SubmitArticle(req SubmitArticleRequest) (*model.NewsroomArticle, error) {
	if s.articleRepo == nil {
		return nil, ErrInternal
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Body = strings.TrimSpace(req.Body)
	if req.Title == "" || req.Body == "" {
		return nil, ErrMissingFields
	}

	status := model.ArticleStatusReview
	if req.AutoApprove {
		status = model.ArticleStatusPublished
	}

	article := &model.NewsroomArticle{
		Title:           req.Title,
		Excerpt:         strings.TrimSpace(req.Excerpt),
		Body:            req.Body,
		CommunityValues: model.JoinList(req.CommunityValues),
		TraumaInformed:  req.TraumaInformed,
		Status:          status,
	}

	if name := strings.TrimSpace(req.Category); name != "" {
		category, err := s.articleRepo.FindOrCreateCategory(name)
		if err != nil {
			return nil, err
		}
		article.CategoryID = &category.ID
		article.Category = category
	}
	if email := strings.TrimSpace(req.AuthorEmail); email != "" {
		author, err := s.articleRepo.FindOrCreateAuthor(strings.TrimSpace(req.AuthorName), email)
		if err != nil {
			return nil, err
		}
		article.AuthorID = &author.ID
		article.Author = author
	}

	tagNames := normalizeTagNames(req.Tags)

	var buildTasks func(articleID uint) []*model.OutboxTask
	if req.AutoApprove {
		now := time.Now()
		buildTasks = func(articleID uint) []*model.OutboxTask {
			return []*model.OutboxTask{
				newSyncTask(model.ContentTypeArticle, articleID, now),
				newWebhookTask(model.ContentTypeArticle, articleID, "auto-approval", now),
			}
		}
	}

	if err := s.articleRepo.CreateWithTags(article, tagNames, buildTasks); err != nil {
		return nil, err
	}
	if req.AutoApprove {
		log.Infow("article auto-published", "article_id", article.ID, "title", article.Title)
	}
	return article, nil
}

func (s *submissionService) ListEvents() ([]model.Event, error) {
	if s.eventRepo == nil {
		return nil, ErrInternal
	}
	return s.eventRepo.FindAll()
}

func (s *submissionService) ListNews() ([]model.NewsroomArticle, error) {
	if s.articleRepo == nil {
		return nil, ErrInternal
	}
	return s.articleRepo.FindPublished()
}

// normalizeTagNames lowercases, trims and dedupes submitted tag names.
func normalizeTagNames(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, name := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
