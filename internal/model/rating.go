package model

import "time"

// Rating types accepted by the rating widget.
const (
	RatingTypeStars     = "stars"
	RatingTypeRecommend = "recommend"
)

// ContentRating is one rating by one user for one piece of content. The
// composite unique index makes repeat ratings an upsert, never a duplicate.
type ContentRating struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ContentType string    `gorm:"type:varchar(16);uniqueIndex:idx_rating_key;not null" json:"content_type"`
	ContentID   uint      `gorm:"uniqueIndex:idx_rating_key;not null" json:"content_id"`
	UserID      string    `gorm:"type:varchar(64);uniqueIndex:idx_rating_key;not null" json:"user_id"`
	RatingType  string    `gorm:"type:varchar(32);uniqueIndex:idx_rating_key;not null" json:"rating_type"`
	Value       int       `gorm:"not null" json:"value"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ContentRating) TableName() string {
	return "content_ratings"
}

// RatingSummary is the aggregate shown by the rating widget.
type RatingSummary struct {
	Count               int64   `json:"count"`
	Average             float64 `json:"average"`
	RecommendationCount int64   `json:"recommendation_count"`
}
