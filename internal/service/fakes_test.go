package service

import (
	"context"
	"testing"

	"blkout_community_go/internal/model"
	applog "blkout_community_go/pkg/log"
	"blkout_community_go/pkg/search"
)

func TestMain(m *testing.M) {
	applog.Init("error", "console", "")
	m.Run()
}

type fakeEventRepo struct {
	createFn          func(event *model.Event) error
	createWithTasksFn func(event *model.Event, buildTasks func(eventID uint) []*model.OutboxTask) error
	findAllFn         func() ([]model.Event, error)
	findByIDFn        func(id uint) (*model.Event, error)
	searchFn          func(status, query string) ([]model.Event, error)
	updateStatusFn    func(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error
}

func (f *fakeEventRepo) Create(event *model.Event) error {
	if f.createFn != nil {
		return f.createFn(event)
	}
	return nil
}

func (f *fakeEventRepo) CreateWithTasks(event *model.Event, buildTasks func(eventID uint) []*model.OutboxTask) error {
	if f.createWithTasksFn != nil {
		return f.createWithTasksFn(event, buildTasks)
	}
	return nil
}

func (f *fakeEventRepo) FindAll() ([]model.Event, error) {
	if f.findAllFn != nil {
		return f.findAllFn()
	}
	return nil, nil
}

func (f *fakeEventRepo) FindByID(id uint) (*model.Event, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeEventRepo) Search(status, query string) ([]model.Event, error) {
	if f.searchFn != nil {
		return f.searchFn(status, query)
	}
	return nil, nil
}

func (f *fakeEventRepo) UpdateStatusWithTasks(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(id, from, to, updates, tasks)
	}
	return nil
}

type fakeArticleRepo struct {
	createWithTagsFn       func(article *model.NewsroomArticle, tagNames []string, buildTasks func(articleID uint) []*model.OutboxTask) error
	findPublishedFn        func() ([]model.NewsroomArticle, error)
	findByIDFn             func(id uint) (*model.NewsroomArticle, error)
	searchFn               func(status, query string) ([]model.NewsroomArticle, error)
	updateStatusFn         func(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error
	findOrCreateCategoryFn func(name string) (*model.Category, error)
	findOrCreateAuthorFn   func(name, email string) (*model.CommunityMember, error)
}

func (f *fakeArticleRepo) CreateWithTags(article *model.NewsroomArticle, tagNames []string, buildTasks func(articleID uint) []*model.OutboxTask) error {
	if f.createWithTagsFn != nil {
		return f.createWithTagsFn(article, tagNames, buildTasks)
	}
	return nil
}

func (f *fakeArticleRepo) FindPublished() ([]model.NewsroomArticle, error) {
	if f.findPublishedFn != nil {
		return f.findPublishedFn()
	}
	return nil, nil
}

func (f *fakeArticleRepo) FindByID(id uint) (*model.NewsroomArticle, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeArticleRepo) Search(status, query string) ([]model.NewsroomArticle, error) {
	if f.searchFn != nil {
		return f.searchFn(status, query)
	}
	return nil, nil
}

func (f *fakeArticleRepo) UpdateStatusWithTasks(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(id, from, to, updates, tasks)
	}
	return nil
}

func (f *fakeArticleRepo) FindOrCreateCategory(name string) (*model.Category, error) {
	if f.findOrCreateCategoryFn != nil {
		return f.findOrCreateCategoryFn(name)
	}
	return &model.Category{ID: 1, Name: name}, nil
}

func (f *fakeArticleRepo) FindOrCreateAuthor(name, email string) (*model.CommunityMember, error) {
	if f.findOrCreateAuthorFn != nil {
		return f.findOrCreateAuthorFn(name, email)
	}
	return &model.CommunityMember{ID: 1, Name: name, Email: email}, nil
}

type fakeKnowledgeRepo struct {
	findOrCreateCategoryFn   func(name, description string) (*model.IvorCategory, error)
	createResourceWithTagsFn func(resource *model.IvorResource, tagNames []string) (*model.IvorResource, bool, error)
	findResourceBySourceFn   func(sourceType string, sourceID uint) (*model.IvorResource, error)
	findCategoryByIDFn       func(id uint) (*model.IvorCategory, error)
}

func (f *fakeKnowledgeRepo) FindOrCreateCategory(name, description string) (*model.IvorCategory, error) {
	if f.findOrCreateCategoryFn != nil {
		return f.findOrCreateCategoryFn(name, description)
	}
	return &model.IvorCategory{ID: 1, Name: name, Description: description}, nil
}

func (f *fakeKnowledgeRepo) CreateResourceWithTags(resource *model.IvorResource, tagNames []string) (*model.IvorResource, bool, error) {
	if f.createResourceWithTagsFn != nil {
		return f.createResourceWithTagsFn(resource, tagNames)
	}
	resource.ID = 1
	return resource, true, nil
}

func (f *fakeKnowledgeRepo) FindResourceBySource(sourceType string, sourceID uint) (*model.IvorResource, error) {
	if f.findResourceBySourceFn != nil {
		return f.findResourceBySourceFn(sourceType, sourceID)
	}
	return nil, nil
}

func (f *fakeKnowledgeRepo) FindCategoryByID(id uint) (*model.IvorCategory, error) {
	if f.findCategoryByIDFn != nil {
		return f.findCategoryByIDFn(id)
	}
	return nil, nil
}

type fakeIndex struct {
	indexFn  func(ctx context.Context, doc search.ResourceDoc) error
	searchFn func(ctx context.Context, query string, size int) ([]search.ResourceDoc, error)
	indexed  []search.ResourceDoc
}

func (f *fakeIndex) IndexResource(ctx context.Context, doc search.ResourceDoc) error {
	f.indexed = append(f.indexed, doc)
	if f.indexFn != nil {
		return f.indexFn(ctx, doc)
	}
	return nil
}

func (f *fakeIndex) SearchResources(ctx context.Context, query string, size int) ([]search.ResourceDoc, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, query, size)
	}
	return nil, nil
}

type fakeKnowledgeService struct {
	syncEventFn   func(ctx context.Context, id uint) error
	syncArticleFn func(ctx context.Context, id uint) error
}

func (f *fakeKnowledgeService) SyncEvent(ctx context.Context, id uint) error {
	if f.syncEventFn != nil {
		return f.syncEventFn(ctx, id)
	}
	return nil
}

func (f *fakeKnowledgeService) SyncArticle(ctx context.Context, id uint) error {
	if f.syncArticleFn != nil {
		return f.syncArticleFn(ctx, id)
	}
	return nil
}

func (f *fakeKnowledgeService) SearchResources(ctx context.Context, query string, size int) ([]search.ResourceDoc, error) {
	return nil, nil
}

type fakeNotifier struct {
	notifyFn func(ctx context.Context, deliveryID string, payload model.WebhookTaskPayload) error
	calls    []model.WebhookTaskPayload
}

func (f *fakeNotifier) Notify(ctx context.Context, deliveryID string, payload model.WebhookTaskPayload) error {
	f.calls = append(f.calls, payload)
	if f.notifyFn != nil {
		return f.notifyFn(ctx, deliveryID, payload)
	}
	return nil
}
