package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"blkout_community_go/internal/model"
	"blkout_community_go/internal/repository"
	"blkout_community_go/pkg/log"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ratingSummaryTTL bounds how stale a cached widget summary can be.
const ratingSummaryTTL = time.Minute

// RatingService records per-user content ratings and serves the aggregate
// the widgets display. Raters without an identity get a generated token the
// client keeps for the session; two sessions therefore count as two raters.
type RatingService interface {
	// Rate upserts the rating and returns the (possibly generated) user id
	// together with the fresh summary.
	Rate(ctx context.Context, contentType string, contentID uint, userID, ratingType string, value int) (string, *model.RatingSummary, error)
	Summary(ctx context.Context, contentType string, contentID uint) (*model.RatingSummary, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	// cache may be nil; summaries then always come from the database.
	cache *redis.Client
}

func NewRatingService(ratingRepo repository.RatingRepository, cache *redis.Client) RatingService {
	return &ratingService{ratingRepo: ratingRepo, cache: cache}
}

func (s *ratingService) Rate(ctx context.Context, contentType string, contentID uint, userID, ratingType string, value int) (string, *model.RatingSummary, error) {
	if s.ratingRepo == nil {
		return "", nil, ErrInternal
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType != model.ContentTypeEvent && contentType != model.ContentTypeArticle {
		return "", nil, ErrUnknownContentType
	}
	if contentID == 0 {
		return "", nil, ErrInvalidInput
	}

	switch ratingType {
	case model.RatingTypeStars:
		if value < 1 || value > 5 {
			return "", nil, ErrInvalidRating
		}
	case model.RatingTypeRecommend:
		if value != 0 && value != 1 {
			return "", nil, ErrInvalidRating
		}
	default:
		return "", nil, ErrInvalidRating
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = uuid.NewString()
	}

	rating := &model.ContentRating{
		ContentType: contentType,
		ContentID:   contentID,
		UserID:      userID,
		RatingType:  ratingType,
		Value:       value,
	}
	if err := s.ratingRepo.Upsert(rating); err != nil {
		return "", nil, err
	}

	s.invalidate(ctx, contentType, contentID)

	summary, err := s.ratingRepo.Summary(contentType, contentID)
	if err != nil {
		return "", nil, err
	}
	s.store(ctx, contentType, contentID, summary)
	return userID, summary, nil
}

func (s *ratingService) Summary(ctx context.Context, contentType string, contentID uint) (*model.RatingSummary, error) {
	if s.ratingRepo == nil {
		return nil, ErrInternal
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType != model.ContentTypeEvent && contentType != model.ContentTypeArticle {
		return nil, ErrUnknownContentType
	}
	if contentID == 0 {
		return nil, ErrInvalidInput
	}

	if cached := s.load(ctx, contentType, contentID); cached != nil {
		return cached, nil
	}

	summary, err := s.ratingRepo.Summary(contentType, contentID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, contentType, contentID, summary)
	return summary, nil
}

func summaryCacheKey(contentType string, contentID uint) string {
	return fmt.Sprintf("rating_summary:%s:%d", contentType, contentID)
}

func (s *ratingService) load(ctx context.Context, contentType string, contentID uint) *model.RatingSummary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, summaryCacheKey(contentType, contentID)).Result()
	if err != nil {
		return nil
	}
	var summary model.RatingSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil
	}
	return &summary
}

func (s *ratingService) store(ctx context.Context, contentType string, contentID uint, summary *model.RatingSummary) {
	if s.cache == nil || summary == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, summaryCacheKey(contentType, contentID), raw, ratingSummaryTTL).Err(); err != nil {
		log.Warnf("failed to cache rating summary: %v", err)
	}
}

func (s *ratingService) invalidate(ctx context.Context, contentType string, contentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryCacheKey(contentType, contentID)).Err(); err != nil {
		log.Warnf("failed to invalidate rating summary cache: %v", err)
	}
}
