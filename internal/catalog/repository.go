package catalog

import (
	"context"
	"errors"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
)

var ErrServiceNotFound = errors.New("service not found")

// Repository is the remote catalog store read by the storefront.
type Repository interface {
	ListServices(ctx context.Context) ([]domain.CatalogService, error)
	GetService(ctx context.Context, id string) (*domain.CatalogService, error)
}
