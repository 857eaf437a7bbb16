package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"blkout_community_go/internal/model"
	"blkout_community_go/internal/repository"
	"blkout_community_go/pkg/log"

	"gorm.io/gorm"
)

// ModerationService drives the human review queue. Approvals flip the status
// and enqueue downstream work transactionally; rejections are terminal with
// no downstream calls.
type ModerationService interface {
	// Queue lists submissions of both content types, filtered by logical
	// status ("pending"/"approved"/"rejected"), content type and a search
	// string, newest first.
	Queue(status, contentType, query string) ([]model.ModerationItem, error)
	Approve(contentType string, id uint, notes, moderatorID string) error
	Reject(contentType string, id uint, reason string) error
}

type moderationService struct {
	eventRepo   repository.EventRepository
	articleRepo repository.ArticleRepository
}

func NewModerationService(eventRepo repository.EventRepository, articleRepo repository.ArticleRepository) ModerationService {
	return &moderationService{eventRepo: eventRepo, articleRepo: articleRepo}
}

// queueStatus maps the logical queue filter onto each content type's status
// literal. Events wait as "pending", articles as "review"; approved articles
// are "published".
func queueStatus(logical, contentType string) string {
	if contentType == model.ContentTypeArticle {
		switch logical {
		case "pending":
			return model.ArticleStatusReview
		case "approved":
			return model.ArticleStatusPublished
		}
	}
	return logical
}

func (s *moderationService) Queue(status, contentType, query string) ([]model.ModerationItem, error) {
	if s.eventRepo == nil || s.articleRepo == nil {
		return nil, ErrInternal
	}

	status = strings.ToLower(strings.TrimSpace(status))
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	query = strings.TrimSpace(query)

	items := make([]model.ModerationItem, 0)

	if contentType == "" || contentType == model.ContentTypeEvent {
		events, err := s.eventRepo.Search(queueStatus(status, model.ContentTypeEvent), query)
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			items = append(items, model.ModerationItem{
				ID:              e.ID,
				Type:            model.ContentTypeEvent,
				Title:           e.Title,
				Body:            e.Description,
				Author:          e.Organizer,
				Category:        e.Category,
				Status:          e.Status,
				FlaggedReasons:  model.SplitList(e.FlaggedReasons),
				ModerationNotes: e.ModerationNotes,
				SubmittedAt:     e.SubmittedAt,
			})
		}
	}

	if contentType == "" || contentType == model.ContentTypeArticle {
		articles, err := s.articleRepo.Search(queueStatus(status, model.ContentTypeArticle), query)
		if err != nil {
			return nil, err
		}
		for _, a := range articles {
			item := model.ModerationItem{
				ID:              a.ID,
				Type:            model.ContentTypeArticle,
				Title:           a.Title,
				Body:            a.Body,
				Status:          a.Status,
				FlaggedReasons:  model.SplitList(a.FlaggedReasons),
				ModerationNotes: a.ModerationNotes,
				SubmittedAt:     a.SubmittedAt,
			}
			if a.Author != nil {
				item.Author = a.Author.Name
			}
			if a.Category != nil {
				item.Category = a.Category.Name
			}
			items = append(items, item)
		}
	}

	if contentType != "" && contentType != model.ContentTypeEvent && contentType != model.ContentTypeArticle {
		return nil, ErrUnknownContentType
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].SubmittedAt.After(items[j].SubmittedAt)
	})
	return items, nil
}

// Approve flips a waiting submission to its approved literal and enqueues
// the knowledge-sync and webhook tasks in the same transaction. Approving an
// item that is no longer waiting returns ErrInvalidTransition, so two
// moderators racing on the same item cannot trigger the sync twice.
func (s *moderationService) Approve(contentType string, id uint, notes, moderatorID string) error {
	if s.eventRepo == nil || s.articleRepo == nil {
		return ErrInternal
	}
	if id == 0 {
		return ErrInvalidInput
	}

	now := time.Now()
	tasks := []*model.OutboxTask{
		newSyncTask(contentType, id, now),
		newWebhookTask(contentType, id, moderatorID, now),
	}
	updates := map[string]interface{}{"moderation_notes": strings.TrimSpace(notes)}

	var err error
	switch contentType {
	case model.ContentTypeEvent:
		err = s.eventRepo.UpdateStatusWithTasks(id,
			[]string{model.EventStatusPending}, model.EventStatusApproved, updates, tasks)
	case model.ContentTypeArticle:
		err = s.articleRepo.UpdateStatusWithTasks(id,
			[]string{model.ArticleStatusReview}, model.ArticleStatusPublished, updates, tasks)
	default:
		return ErrUnknownContentType
	}

	if err != nil {
		return mapModerationRepoError(err)
	}
	log.Infow("submission approved", "type", contentType, "id", id, "moderator", moderatorID)
	return nil
}

// Reject marks a waiting submission rejected, recording the reason. No
// downstream tasks are enqueued.
func (s *moderationService) Reject(contentType string, id uint, reason string) error {
	if s.eventRepo == nil || s.articleRepo == nil {
		return ErrInternal
	}
	if id == 0 {
		return ErrInvalidInput
	}

	updates := map[string]interface{}{"flagged_reasons": strings.TrimSpace(reason)}

	var err error
	switch contentType {
	case model.ContentTypeEvent:
		err = s.eventRepo.UpdateStatusWithTasks(id,
			[]string{model.EventStatusPending}, model.EventStatusRejected, updates, nil)
	case model.ContentTypeArticle:
		err = s.articleRepo.UpdateStatusWithTasks(id,
			[]string{model.ArticleStatusReview}, model.ArticleStatusRejected, updates, nil)
	default:
		return ErrUnknownContentType
	}

	if err != nil {
		return mapModerationRepoError(err)
	}
	log.Infow("submission rejected", "type", contentType, "id", id)
	return nil
}

func mapModerationRepoError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrSubmissionNotFound
	case errors.Is(err, repository.ErrInvalidTransition):
		return ErrInvalidTransition
	default:
		return err
	}
}
