package usecase

import (
	"context"
	"fmt"
	"time"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"
	"exhome-listing-service/internal/core/slugcodec"

	"github.com/google/uuid"
)

type LoadListingsUseCase struct {
	warehouse port.WarehousePort
	cache     port.ListingCachePort  // может быть nil
	events    port.SearchEventsPort // может быть nil
	now       func() time.Time
}

// NewLoadListingsUseCase - кэш и события опциональны, передайте nil чтобы отключить.
func NewLoadListingsUseCase(warehouse port.WarehousePort, cache port.ListingCachePort, events port.SearchEventsPort) *LoadListingsUseCase {
	return &LoadListingsUseCase{
		warehouse: warehouse,
		cache:     cache,
		events:    events,
		now:       time.Now,
	}
}

// Execute загружает одну страницу объявлений и считает по ней статистику.
// Повторов нет: ошибка warehouse логируется и возвращается как есть.
func (uc *LoadListingsUseCase) Execute(ctx context.Context, profile domain.ListingProfile, filters domain.Filters, page domain.PageRequest) (*domain.ListingResult, error) {
	page = page.Normalize()
	filters = sanitizeFilters(filters)

	query := domain.ApartmentQuery{
		ListingType:     profile.Type,
		PropertyGroupID: profile.PropertyGroupID,
		Filters:         filters,
		Limit:           page.Limit(),
		Offset:          page.Offset(),
	}
	path := slugcodec.BuildPath(profile, filters)

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":     "LoadListings",
		"listing_type": string(profile.Type),
		"path":         path,
		"limit":        query.Limit,
		"offset":       query.Offset,
	})
	ucLogger.Debug("Use case started", nil)

	apartments, fromCache := uc.fromCache(ctx, ucLogger, query)
	if apartments == nil {
		var err error
		apartments, err = uc.warehouse.ListApartments(ctx, query)
		if err != nil {
			ucLogger.Error("Warehouse failed to list apartments", err, nil)
			return nil, fmt.Errorf("load apartments: %w", err)
		}
		uc.toCache(ctx, ucLogger, query, apartments)
	}

	result := &domain.ListingResult{
		Items:      apartments.Items,
		Total:      apartments.Total,
		Page:       page,
		TotalPages: page.TotalPages(apartments.Total),
		Statistics: domain.ComputeStatistics(apartments.Items),
		Path:       path,
		FromCache:  fromCache,
	}

	uc.publish(ctx, ucLogger, profile, filters, page, result)

	ucLogger.Info("Use case finished", port.Fields{
		"items":      len(result.Items),
		"total":      result.Total,
		"from_cache": fromCache,
	})
	return result, nil
}

func (uc *LoadListingsUseCase) fromCache(ctx context.Context, logger port.LoggerPort, query domain.ApartmentQuery) (*domain.ApartmentPage, bool) {
	if uc.cache == nil {
		return nil, false
	}
	cached, ok, err := uc.cache.Get(ctx, query)
	if err != nil {
		logger.Warn("Listing cache read failed, falling back to warehouse", port.Fields{"error": err.Error()})
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return cached, true
}

func (uc *LoadListingsUseCase) toCache(ctx context.Context, logger port.LoggerPort, query domain.ApartmentQuery, page *domain.ApartmentPage) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, query, page); err != nil {
		logger.Warn("Listing cache write failed", port.Fields{"error": err.Error()})
	}
}

func (uc *LoadListingsUseCase) publish(ctx context.Context, logger port.LoggerPort, profile domain.ListingProfile, filters domain.Filters, page domain.PageRequest, result *domain.ListingResult) {
	if uc.events == nil {
		return
	}
	event := domain.SearchEvent{
		EventID:     uuid.New(),
		ListingType: profile.Type,
		Path:        result.Path,
		Filters:     filters,
		PageIndex:   page.PageIndex,
		PageSize:    page.PageSize,
		Total:       result.Total,
		OccurredAt:  uc.now().UTC(),
	}
	if err := uc.events.PublishSearchPerformed(ctx, event); err != nil {
		logger.Warn("Failed to publish search event", port.Fields{"error": err.Error(), "event_id": event.EventID.String()})
	}
}
