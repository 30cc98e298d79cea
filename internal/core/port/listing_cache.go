package port

import (
	"context"
	"exhome-listing-service/internal/core/domain"
)

// ListingCachePort - кэш страниц выдачи. Промах кэша - (nil, false, nil).
type ListingCachePort interface {
	Get(ctx context.Context, query domain.ApartmentQuery) (*domain.ApartmentPage, bool, error)
	Set(ctx context.Context, query domain.ApartmentQuery, page *domain.ApartmentPage) error
}
