package service

import (
	"context"
	"errors"
	"testing"

	"blkout_community_go/internal/model"
)

type fakeRatingRepo struct {
	upsertFn  func(rating *model.ContentRating) error
	summaryFn func(contentType string, contentID uint) (*model.RatingSummary, error)
	upserted  []*model.ContentRating
}

func (f *fakeRatingRepo) Upsert(rating *model.ContentRating) error {
	f.upserted = append(f.upserted, rating)
	if f.upsertFn != nil {
		return f.upsertFn(rating)
	}
	return nil
}

func (f *fakeRatingRepo) Summary(contentType string, contentID uint) (*model.RatingSummary, error) {
	if f.summaryFn != nil {
		return f.summaryFn(contentType, contentID)
	}
	return &model.RatingSummary{Count: 1, Average: 4, RecommendationCount: 0}, nil
}

func TestRate_Stars(t *testing.T) {
	repo := &fakeRatingRepo{}
	svc := NewRatingService(repo, nil)

	userID, summary, err := svc.Rate(context.Background(), model.ContentTypeEvent, 7, "user-a", model.RatingTypeStars, 4)
	if err != nil {
		t.Fatalf("Rate() error: %v", err)
	}
	if userID != "user-a" {
		t.Fatalf("expected the caller's user id back, got %q", userID)
	}
	if summary == nil || summary.Count != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(repo.upserted) != 1 || repo.upserted[0].Value != 4 {
		t.Fatalf("unexpected upsert: %+v", repo.upserted)
	}
}

func TestRate_GeneratesAnonymousUserID(t *testing.T) {
	repo := &fakeRatingRepo{}
	svc := NewRatingService(repo, nil)

	userID, _, err := svc.Rate(context.Background(), model.ContentTypeArticle, 3, "", model.RatingTypeRecommend, 1)
	if err != nil {
		t.Fatalf("Rate() error: %v", err)
	}
	if userID == "" {
		t.Fatal("expected a generated user id for an anonymous rater")
	}
	if repo.upserted[0].UserID != userID {
		t.Fatal("generated user id must be stored with the rating")
	}
}

func TestRate_Validation(t *testing.T) {
	svc := NewRatingService(&fakeRatingRepo{}, nil)
	ctx := context.Background()

	if _, _, err := svc.Rate(ctx, "podcast", 1, "u", model.RatingTypeStars, 3); !errors.Is(err, ErrUnknownContentType) {
		t.Fatalf("expected ErrUnknownContentType, got: %v", err)
	}
	if _, _, err := svc.Rate(ctx, model.ContentTypeEvent, 0, "u", model.RatingTypeStars, 3); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for id 0, got: %v", err)
	}
	for _, value := range []int{0, 6, -1} {
		if _, _, err := svc.Rate(ctx, model.ContentTypeEvent, 1, "u", model.RatingTypeStars, value); !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("expected ErrInvalidRating for %d stars, got: %v", value, err)
		}
	}
	if _, _, err := svc.Rate(ctx, model.ContentTypeEvent, 1, "u", model.RatingTypeRecommend, 2); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for recommend=2, got: %v", err)
	}
	if _, _, err := svc.Rate(ctx, model.ContentTypeEvent, 1, "u", "thumbs", 1); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for unknown type, got: %v", err)
	}
}

func TestSummary_NoCache(t *testing.T) {
	repo := &fakeRatingRepo{
		summaryFn: func(contentType string, contentID uint) (*model.RatingSummary, error) {
			return &model.RatingSummary{Count: 5, Average: 3.8, RecommendationCount: 2}, nil
		},
	}
	svc := NewRatingService(repo, nil)

	summary, err := svc.Summary(context.Background(), model.ContentTypeEvent, 7)
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if summary.Count != 5 || summary.RecommendationCount != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
