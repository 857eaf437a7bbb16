package repository

import (
	"fmt"

	"blkout_community_go/internal/model"

	"gorm.io/gorm"
)

// ArticleRepository persists newsroom articles and their tag links.
type ArticleRepository interface {
	// CreateWithTags inserts the article, find-or-creates each tag name and
	// links it, and enqueues the built outbox tasks, all in one transaction.
	// buildTasks runs inside the transaction with the assigned id.
	CreateWithTags(article *model.NewsroomArticle, tagNames []string, buildTasks func(articleID uint) []*model.OutboxTask) error
	// FindPublished returns published articles with author and category
	// preloaded, newest first.
	FindPublished() ([]model.NewsroomArticle, error)
	FindByID(id uint) (*model.NewsroomArticle, error)
	// Search filters by status and a title/body substring, both optional,
	// with author and category preloaded for the moderation queue.
	Search(status, query string) ([]model.NewsroomArticle, error)
	UpdateStatusWithTasks(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error
	// FindOrCreateCategory resolves a category name to a row in a single
	// atomic statement (insert-ignore + fetch under the unique name index).
	FindOrCreateCategory(name string) (*model.Category, error)
	// FindOrCreateAuthor resolves a community member by email.
	FindOrCreateAuthor(name, email string) (*model.CommunityMember, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) CreateWithTags(article *model.NewsroomArticle, tagNames []string, buildTasks func(articleID uint) []*model.OutboxTask) error {
	if article == nil {
		return fmt.Errorf("article is nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(article).Error; err != nil {
			return err
		}

		for _, name := range tagNames {
			tag, err := findOrCreateTag(tx, name)
			if err != nil {
				return err
			}
			link := map[string]interface{}{
				"newsroom_article_id": article.ID,
				"tag_id":              tag.ID,
			}
			if err := tx.Table("article_tags").Clauses(onConflictDoNothing()).Create(link).Error; err != nil {
				return err
			}
		}

		if buildTasks != nil {
			for _, task := range buildTasks(article.ID) {
				if err := tx.Create(task).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *articleRepository) FindPublished() ([]model.NewsroomArticle, error) {
	var articles []model.NewsroomArticle
	err := r.db.
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Where("status = ?", model.ArticleStatusPublished).
		Order("submitted_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) FindByID(id uint) (*model.NewsroomArticle, error) {
	var article model.NewsroomArticle
	err := r.db.
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Where("id = ?", id).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) Search(status, query string) ([]model.NewsroomArticle, error) {
	tx := r.db.Preload("Author").Preload("Category").Order("submitted_at DESC")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("title LIKE ? OR body LIKE ?", like, like)
	}

	var articles []model.NewsroomArticle
	if err := tx.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) UpdateStatusWithTasks(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error {
	if to == "" {
		return fmt.Errorf("target status is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var current model.NewsroomArticle
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		values := map[string]interface{}{"status": to}
		for k, v := range updates {
			values[k] = v
		}

		res := tx.Model(&model.NewsroomArticle{}).
			Where("id = ? AND status IN ?", id, from).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		for _, task := range tasks {
			if err := tx.Create(task).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *articleRepository) FindOrCreateCategory(name string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	category := &model.Category{Name: name}
	res := r.db.Clauses(onConflictDoNothing()).Create(category)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return category, nil
	}
	var existing model.Category
	if err := r.db.Where("name = ?", name).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// findOrCreateTag resolves a tag name atomically: insert-ignore under the
// unique name index, then fetch when the row already existed. No
// read-then-insert window, so concurrent submitters cannot duplicate a tag.
func findOrCreateTag(tx *gorm.DB, name string) (*model.Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("tag name is required")
	}

	tag := &model.Tag{Name: name}
	res := tx.Clauses(onConflictDoNothing()).Create(tag)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return tag, nil
	}
	var existing model.Tag
	if err := tx.Where("name = ?", name).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *articleRepository) FindOrCreateAuthor(name, email string) (*model.CommunityMember, error) {
	if email == "" {
		return nil, fmt.Errorf("author email is required")
	}

	member := &model.CommunityMember{Name: name, Email: email}
	res := r.db.Clauses(onConflictDoNothing()).Create(member)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return member, nil
	}
	var existing model.CommunityMember
	if err := r.db.Where("email = ?", email).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}
