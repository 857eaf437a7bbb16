package repository

import (
	"fmt"

	"blkout_community_go/internal/model"

	"gorm.io/gorm"
)

// KnowledgeRepository persists the IVOR knowledge-base tables.
type KnowledgeRepository interface {
	// FindOrCreateCategory resolves the fixed per-content-type category in a
	// single atomic statement.
	FindOrCreateCategory(name, description string) (*model.IvorCategory, error)
	// CreateResourceWithTags inserts the resource, its tags and the join
	// rows in one transaction. If a resource for the same
	// (source_type, source_id) already exists the call is a no-op and the
	// existing row is returned with created=false.
	CreateResourceWithTags(resource *model.IvorResource, tagNames []string) (result *model.IvorResource, created bool, err error)
	FindResourceBySource(sourceType string, sourceID uint) (*model.IvorResource, error)
	FindCategoryByID(id uint) (*model.IvorCategory, error)
}

type knowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

func (r *knowledgeRepository) FindOrCreateCategory(name, description string) (*model.IvorCategory, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	category := &model.IvorCategory{Name: name, Description: description}
	res := r.db.Clauses(onConflictDoNothing()).Create(category)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return category, nil
	}
	var existing model.IvorCategory
	if err := r.db.Where("name = ?", name).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *knowledgeRepository) CreateResourceWithTags(resource *model.IvorResource, tagNames []string) (*model.IvorResource, bool, error) {
	if resource == nil {
		return nil, false, fmt.Errorf("resource is nil")
	}
	if resource.SourceType == "" || resource.SourceID == 0 {
		return nil, false, fmt.Errorf("resource source reference is required")
	}

	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(onConflictDoNothing()).Create(resource)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already synced (idempotent retry or a concurrent approval):
			// hand back the existing row untouched.
			var existing model.IvorResource
			if err := tx.
				Where("source_type = ? AND source_id = ?", resource.SourceType, resource.SourceID).
				First(&existing).Error; err != nil {
				return err
			}
			*resource = existing
			return nil
		}
		created = true

		for _, name := range tagNames {
			tag, err := findOrCreateIvorTag(tx, name)
			if err != nil {
				return err
			}
			link := &model.IvorResourceTag{ResourceID: resource.ID, TagID: tag.ID}
			if err := tx.Clauses(onConflictDoNothing()).Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return resource, created, nil
}

func (r *knowledgeRepository) FindResourceBySource(sourceType string, sourceID uint) (*model.IvorResource, error) {
	var resource model.IvorResource
	if err := r.db.
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		First(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *knowledgeRepository) FindCategoryByID(id uint) (*model.IvorCategory, error) {
	var category model.IvorCategory
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func findOrCreateIvorTag(tx *gorm.DB, name string) (*model.IvorTag, error) {
	if name == "" {
		return nil, fmt.Errorf("tag name is required")
	}

	tag := &model.IvorTag{Name: name}
	res := tx.Clauses(onConflictDoNothing()).Create(tag)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return tag, nil
	}
	var existing model.IvorTag
	if err := tx.Where("name = ?", name).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}
