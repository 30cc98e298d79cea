package usecase

import (
	"context"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"
	"exhome-listing-service/internal/core/port/usecases_port"
	"exhome-listing-service/internal/core/slugcodec"
)

type ParseFiltersUseCase struct{}

func NewParseFiltersUseCase() *ParseFiltersUseCase {
	return &ParseFiltersUseCase{}
}

// Execute разбирает путь страницы в фильтры и положение слайдеров.
func (uc *ParseFiltersUseCase) Execute(ctx context.Context, profile domain.ListingProfile, path string) (*domain.FilterView, error) {
	state := NewListingState(profile)
	if err := state.Navigate(path); err != nil {
		contextkeys.LoggerFromContext(ctx).Debug("Path does not match listing profile", port.Fields{
			"use_case": "ParseFilters",
			"path":     path,
			"error":    err.Error(),
		})
		return nil, err
	}
	return state.View(), nil
}

type ApplyFiltersUseCase struct {
	projects usecases_port.ListProjectsUseCasePort // может быть nil
}

// NewApplyFiltersUseCase - projects нужен, чтобы заменить id проекта на его slug в пути.
func NewApplyFiltersUseCase(projects usecases_port.ListProjectsUseCasePort) *ApplyFiltersUseCase {
	return &ApplyFiltersUseCase{projects: projects}
}

// Execute нормализует фильтры и строит канонический путь.
// Если задан только id проекта, пытается подставить slug; при ошибке остается id.
func (uc *ApplyFiltersUseCase) Execute(ctx context.Context, profile domain.ListingProfile, filters domain.Filters) (*domain.FilterView, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":     "ApplyFilters",
		"listing_type": string(profile.Type),
	})

	filters = sanitizeFilters(filters)
	if filters.ProjectID != nil && filters.ProjectSlug == "" && uc.projects != nil {
		projects, err := uc.projects.Execute(ctx)
		if err != nil {
			ucLogger.Warn("Could not resolve project slug, keeping id", port.Fields{"error": err.Error()})
		} else {
			for _, p := range projects {
				if p.ID == *filters.ProjectID {
					filters.ProjectSlug = p.Slug
					break
				}
			}
		}
	}

	state := NewListingState(profile)
	path := state.ApplyFilters(filters)
	ucLogger.Debug("Filters applied", port.Fields{"path": path})
	return state.View(), nil
}

// sanitizeFilters - Normalize плюс приведение slug проекта к виду для URL.
func sanitizeFilters(f domain.Filters) domain.Filters {
	f = f.Normalize()
	if f.ProjectSlug != "" {
		f.ProjectSlug = slugcodec.ProjectSlug(f.ProjectSlug)
	}
	return f
}
