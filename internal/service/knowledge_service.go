package service

import (
	"context"
	"errors"
	"fmt"

	"blkout_community_go/internal/model"
	"blkout_community_go/internal/repository"
	"blkout_community_go/pkg/log"
	"blkout_community_go/pkg/search"

	"gorm.io/gorm"
)

// Knowledge-base category names, one fixed category per content type.
const (
	eventCategoryName   = "Community Events"
	articleCategoryName = "Community News"
)

// ResourceIndex is the slice of the search client knowledge sync needs.
type ResourceIndex interface {
	IndexResource(ctx context.Context, doc search.ResourceDoc) error
	SearchResources(ctx context.Context, query string, size int) ([]search.ResourceDoc, error)
}

// KnowledgeService translates approved submissions into IVOR knowledge-base
// resources. Sync is idempotent per submission: running it twice creates one
// resource, and the second run is a no-op.
type KnowledgeService interface {
	SyncEvent(ctx context.Context, id uint) error
	SyncArticle(ctx context.Context, id uint) error
	SearchResources(ctx context.Context, query string, size int) ([]search.ResourceDoc, error)
}

type knowledgeService struct {
	eventRepo     repository.EventRepository
	articleRepo   repository.ArticleRepository
	knowledgeRepo repository.KnowledgeRepository
	// index is nil when search is disabled; indexing is best-effort either way.
	index ResourceIndex
}

func NewKnowledgeService(
	eventRepo repository.EventRepository,
	articleRepo repository.ArticleRepository,
	knowledgeRepo repository.KnowledgeRepository,
	index ResourceIndex,
) KnowledgeService {
	return &knowledgeService{
		eventRepo:     eventRepo,
		articleRepo:   articleRepo,
		knowledgeRepo: knowledgeRepo,
		index:         index,
	}
}

// SyncEvent derives a knowledge resource from an approved event.
// Not-yet-approved content is a logged no-op, not an error: the moderation
// queue is the only gate, sync just refuses to publish early.
func (s *knowledgeService) SyncEvent(ctx context.Context, id uint) error {
	if s.eventRepo == nil || s.knowledgeRepo == nil {
		return ErrInternal
	}

	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}

	switch event.Status {
	case model.EventStatusApproved, model.EventStatusUpcoming:
	default:
		log.Infow("skipping knowledge sync for unapproved event", "event_id", id, "status", event.Status)
		return nil
	}

	category, err := s.knowledgeRepo.FindOrCreateCategory(eventCategoryName, "Events from the community calendar")
	if err != nil {
		return err
	}

	values := model.SplitList(event.CommunityValues)
	explicit := append([]string{event.Category, event.EventType}, values...)
	keywords := extractKeywords(explicit, event.Title, event.Description)

	content := fmt.Sprintf(
		"%s\n\nWhen: %s\nWhere: %s\nOrganized by: %s\n\n%s",
		event.Title,
		event.Date.Format("Monday, 2 January 2006 15:04"),
		event.Location,
		event.Organizer,
		event.Description,
	)

	resource := &model.IvorResource{
		Title:       event.Title,
		Description: event.Description,
		Content:     content,
		Keywords:    model.JoinList(keywords),
		CategoryID:  category.ID,
		Priority:    resourcePriority(event.EventType, values, event.TraumaInformed),
		IsActive:    true,
		SourceType:  model.ContentTypeEvent,
		SourceID:    event.ID,
	}

	return s.storeAndIndex(ctx, resource, keywords, category.Name)
}

// SyncArticle derives a knowledge resource from a published article.
func (s *knowledgeService) SyncArticle(ctx context.Context, id uint) error {
	if s.articleRepo == nil || s.knowledgeRepo == nil {
		return ErrInternal
	}

	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}

	if article.Status != model.ArticleStatusPublished {
		log.Infow("skipping knowledge sync for unpublished article", "article_id", id, "status", article.Status)
		return nil
	}

	category, err := s.knowledgeRepo.FindOrCreateCategory(articleCategoryName, "Stories from the community newsroom")
	if err != nil {
		return err
	}

	values := model.SplitList(article.CommunityValues)
	explicit := make([]string, 0, len(article.Tags)+len(values)+1)
	if article.Category != nil {
		explicit = append(explicit, article.Category.Name)
	}
	for _, tag := range article.Tags {
		explicit = append(explicit, tag.Name)
	}
	explicit = append(explicit, values...)
	keywords := extractKeywords(explicit, article.Title, article.Body)

	author := ""
	if article.Author != nil {
		author = article.Author.Name
	}
	content := fmt.Sprintf("%s\n\nBy: %s\n\n%s", article.Title, author, article.Body)

	description := article.Excerpt
	if description == "" {
		description = article.Title
	}

	resource := &model.IvorResource{
		Title:       article.Title,
		Description: description,
		Content:     content,
		Keywords:    model.JoinList(keywords),
		CategoryID:  category.ID,
		Priority:    resourcePriority("", values, article.TraumaInformed),
		IsActive:    true,
		SourceType:  model.ContentTypeArticle,
		SourceID:    article.ID,
	}

	return s.storeAndIndex(ctx, resource, keywords, category.Name)
}

func (s *knowledgeService) storeAndIndex(ctx context.Context, resource *model.IvorResource, keywords []string, categoryName string) error {
	stored, created, err := s.knowledgeRepo.CreateResourceWithTags(resource, keywords)
	if err != nil {
		return err
	}
	if !created {
		log.Infow("knowledge resource already exists, sync skipped",
			"source_type", resource.SourceType, "source_id", resource.SourceID, "resource_id", stored.ID)
		return nil
	}

	log.Infow("knowledge resource created",
		"resource_id", stored.ID, "source_type", stored.SourceType,
		"source_id", stored.SourceID, "priority", stored.Priority, "keywords", len(keywords))

	if s.index == nil {
		return nil
	}
	doc := search.ResourceDoc{
		ResourceID:  stored.ID,
		Title:       stored.Title,
		Description: stored.Description,
		Content:     stored.Content,
		Keywords:    keywords,
		Category:    categoryName,
		Priority:    stored.Priority,
	}
	if err := s.index.IndexResource(ctx, doc); err != nil {
		// The database row is authoritative; a failed index write only
		// degrades search until a reindex.
		log.Warnw("failed to index knowledge resource", "resource_id", stored.ID, "error", err)
	}
	return nil
}

func (s *knowledgeService) SearchResources(ctx context.Context, query string, size int) ([]search.ResourceDoc, error) {
	if s.index == nil {
		return nil, ErrSearchUnavailable
	}
	if query == "" {
		return nil, ErrInvalidInput
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.index.SearchResources(ctx, query, size)
}
