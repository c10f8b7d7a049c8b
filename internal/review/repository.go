package review

import (
	"context"
	"errors"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Repository is the remote review-row store. Defined here on the
// consumer side; the Postgres implementation lives alongside.
type Repository interface {
	ListRatings(ctx context.Context, serviceID string) ([]int, error)
	ListAllRatings(ctx context.Context) ([]domain.RatingRow, error)
	ListReviews(ctx context.Context, serviceID string) ([]domain.Review, error)
	Insert(ctx context.Context, review *domain.Review) error
}
