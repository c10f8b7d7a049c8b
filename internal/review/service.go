package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/events"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/storage"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/uploads"
)

// MaxImagesPerReview caps attachments on one review.
const MaxImagesPerReview = 5

var (
	ErrTooManyImages = errors.New("a review may carry at most 5 images")
	ErrMissingName   = errors.New("reviewer name is required")
)

// ImageBlob is one attachment submitted with a review.
type ImageBlob struct {
	Filename string
	Data     []byte
}

// Service fetches rating rows and serves cached summaries. The
// summarizer itself is pure; all failure modes here belong to the
// repository, the cache, or the upload collaborator.
type Service struct {
	repo      Repository
	store     storage.Storage
	uploader  uploads.Uploader
	publisher events.Publisher
	sfg       singleflight.Group // Prevents summary stampede on hot services
	log       *zap.Logger
}

func NewService(repo Repository, store storage.Storage, uploader uploads.Uploader, publisher events.Publisher, log *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		uploader:  uploader,
		publisher: publisher,
		log:       log,
	}
}

// GetSummary returns the rating summary for one service, from the
// cached snapshot when present.
func (s *Service) GetSummary(ctx context.Context, serviceID string) (*domain.RatingSummary, error) {
	v, err, _ := s.sfg.Do(serviceID, func() (interface{}, error) {
		data, err := s.store.Get(ctx, summaryKey(serviceID))
		if err == nil {
			var cached domain.RatingSummary
			if err2 := json.Unmarshal(data, &cached); err2 == nil {
				return &cached, nil
			}
			// fall through on a corrupt cache entry and recompute
		} else if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Warn("summary cache get failed", zap.Error(err))
		}

		ratings, err := s.repo.ListRatings(ctx, serviceID)
		if err != nil {
			return nil, err
		}
		summary := Summarize(ratings)

		// Stored before returning so a submit that follows this call
		// cannot have its invalidation overwritten by a stale write.
		if data, err := json.Marshal(summary); err == nil {
			if err := s.store.Set(ctx, summaryKey(serviceID), data); err != nil {
				s.log.Warn("summary cache set failed", zap.Error(err))
			}
		}

		return &summary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.RatingSummary), nil
}

// CatalogSummaries returns per-service summaries for every service
// with at least one review.
func (s *Service) CatalogSummaries(ctx context.Context) (map[string]domain.RatingSummary, error) {
	rows, err := s.repo.ListAllRatings(ctx)
	if err != nil {
		return nil, err
	}
	return SummarizeGrouped(rows), nil
}

// ListReviews returns the review rows for one service, newest first.
func (s *Service) ListReviews(ctx context.Context, serviceID string) ([]domain.Review, error) {
	return s.repo.ListReviews(ctx, serviceID)
}

// Submit validates the review, uploads its images, persists the row,
// invalidates the cached summary and publishes the submitted event.
// Image caps are enforced here before the uploader is invoked.
func (s *Service) Submit(ctx context.Context, review domain.Review, images []ImageBlob) (*domain.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if review.UserName == "" {
		return nil, ErrMissingName
	}
	if len(images) > MaxImagesPerReview {
		return nil, ErrTooManyImages
	}
	for _, img := range images {
		if len(img.Data) > uploads.MaxImageSize {
			return nil, uploads.ErrImageTooLarge
		}
	}

	for _, img := range images {
		url, err := s.uploader.Upload(ctx, img.Filename, img.Data)
		if err != nil {
			return nil, fmt.Errorf("upload image %q: %w", img.Filename, err)
		}
		review.Images = append(review.Images, url)
	}

	review.ID = uuid.NewString()
	review.CreatedAt = time.Now()
	if err := s.repo.Insert(ctx, &review); err != nil {
		return nil, err
	}

	s.invalidateSummary(review.ServiceID)

	if err := s.publisher.PublishReviewSubmitted(ctx, events.ReviewSubmitted{
		ReviewID:  review.ID,
		ServiceID: review.ServiceID,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
	}); err != nil {
		s.log.Warn("publish review event failed",
			zap.String("review_id", review.ID), zap.Error(err))
	}

	return &review, nil
}

func (s *Service) invalidateSummary(serviceID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.store.Delete(ctx, summaryKey(serviceID)); err != nil {
		s.log.Warn("summary cache invalidate failed",
			zap.String("service_id", serviceID), zap.Error(err))
	}
}

func summaryKey(serviceID string) string {
	return fmt.Sprintf("reviews:summary:%s", serviceID)
}
