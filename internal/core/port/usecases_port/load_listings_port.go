package usecases_port

import (
	"context"
	"exhome-listing-service/internal/core/domain"
)

type LoadListingsUseCasePort interface {
	Execute(ctx context.Context, profile domain.ListingProfile, filters domain.Filters, page domain.PageRequest) (*domain.ListingResult, error)
}
