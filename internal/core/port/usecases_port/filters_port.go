package usecases_port

import (
	"context"
	"exhome-listing-service/internal/core/domain"
)

// ParseFiltersUseCasePort разбирает путь в фильтры и состояние слайдеров
type ParseFiltersUseCasePort interface {
	Execute(ctx context.Context, profile domain.ListingProfile, path string) (*domain.FilterView, error)
}

// ApplyFiltersUseCasePort возвращает канонический путь для фильтров
type ApplyFiltersUseCasePort interface {
	Execute(ctx context.Context, profile domain.ListingProfile, filters domain.Filters) (*domain.FilterView, error)
}
