package repository

import (
	"fmt"

	"blkout_community_go/internal/model"

	"gorm.io/gorm"
)

// ModeratorRepository persists moderator accounts.
type ModeratorRepository interface {
	Create(moderator *model.Moderator) error
	FindByUsername(username string) (*model.Moderator, error)
	Count() (int64, error)
}

type moderatorRepository struct {
	db *gorm.DB
}

func NewModeratorRepository(db *gorm.DB) ModeratorRepository {
	return &moderatorRepository{db: db}
}

func (r *moderatorRepository) Create(moderator *model.Moderator) error {
	if moderator == nil {
		return fmt.Errorf("moderator is nil")
	}
	if moderator.Username == "" {
		return fmt.Errorf("username is required")
	}
	return r.db.Create(moderator).Error
}

func (r *moderatorRepository) FindByUsername(username string) (*model.Moderator, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	var moderator model.Moderator
	if err := r.db.Where("username = ?", username).First(&moderator).Error; err != nil {
		return nil, err
	}
	return &moderator, nil
}

func (r *moderatorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Moderator{}).Count(&count).Error
	return count, err
}
