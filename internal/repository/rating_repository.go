package repository

import (
	"fmt"

	"blkout_community_go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository persists per-user content ratings and computes the
// aggregates the rating widget displays.
type RatingRepository interface {
	// Upsert writes the rating keyed by (content, user, rating type); a
	// repeat rating by the same user updates the value in place.
	Upsert(rating *model.ContentRating) error
	// Summary aggregates server-side: star count and mean, plus the number
	// of positive recommendations.
	Summary(contentType string, contentID uint) (*model.RatingSummary, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Upsert(rating *model.ContentRating) error {
	if rating == nil {
		return fmt.Errorf("rating is nil")
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "content_type"},
			{Name: "content_id"},
			{Name: "user_id"},
			{Name: "rating_type"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rating).Error
}

func (r *ratingRepository) Summary(contentType string, contentID uint) (*model.RatingSummary, error) {
	summary := &model.RatingSummary{}

	row := struct {
		Count   int64
		Average *float64
	}{}
	err := r.db.Model(&model.ContentRating{}).
		Select("COUNT(*) AS count, AVG(value) AS average").
		Where("content_type = ? AND content_id = ? AND rating_type = ?",
			contentType, contentID, model.RatingTypeStars).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	summary.Count = row.Count
	if row.Average != nil {
		summary.Average = *row.Average
	}

	err = r.db.Model(&model.ContentRating{}).
		Where("content_type = ? AND content_id = ? AND rating_type = ? AND value > 0",
			contentType, contentID, model.RatingTypeRecommend).
		Count(&summary.RecommendationCount).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}
