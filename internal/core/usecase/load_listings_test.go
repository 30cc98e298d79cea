package usecase

import (
	"context"
	"errors"
	"testing"

	"exhome-listing-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func millionsPage(prices ...int64) *domain.ApartmentPage {
	page := &domain.ApartmentPage{Total: 42}
	for i, p := range prices {
		page.Items = append(page.Items, domain.Apartment{
			ID:       i + 1,
			Price:    p * domain.Million,
			Area:     float64(50 + i*10),
			Bedrooms: 2,
			Status:   "AVAILABLE",
		})
	}
	return page
}

func TestLoadListings_RequestsOffsetAndLimit(t *testing.T) {
	warehouse := &fakeWarehouse{page: millionsPage(1, 2, 3)}
	uc := NewLoadListingsUseCase(warehouse, nil, nil)

	result, err := uc.Execute(context.Background(), testProfile(domain.ListingTypeSale), domain.Filters{
		AreaFrom: domain.IntPtr(50),
	}, domain.PageRequest{PageIndex: 2, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, warehouse.queries, 1)
	q := warehouse.queries[0]
	assert.Equal(t, 10, q.Offset)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, domain.ListingTypeSale, q.ListingType)
	assert.Equal(t, 1, q.PropertyGroupID)

	assert.Equal(t, 42, result.Total)
	assert.Equal(t, 5, result.TotalPages)
	assert.Equal(t, "/mua-ban-can-ho,dien-tich-tu-50m", result.Path)
	assert.False(t, result.FromCache)
}

func TestLoadListings_Statistics(t *testing.T) {
	uc := NewLoadListingsUseCase(&fakeWarehouse{page: millionsPage(1, 2, 3)}, nil, nil)

	result, err := uc.Execute(context.Background(), testProfile(domain.ListingTypeRental), domain.Filters{}, domain.NewPageRequest(1, 10))
	require.NoError(t, err)

	stats := result.Statistics
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, float64(2*domain.Million), stats.Price.Avg, 0.001)
	assert.InDelta(t, float64(1*domain.Million), stats.Price.Min, 0.001)
	assert.InDelta(t, float64(3*domain.Million), stats.Price.Max, 0.001)
	assert.Equal(t, 3, stats.Bedrooms[2])
	assert.Equal(t, 3, stats.Statuses["AVAILABLE"])
}

func TestLoadListings_WarehouseErrorIsReturned(t *testing.T) {
	boom := errors.New("warehouse down")
	events := &fakeEvents{}
	uc := NewLoadListingsUseCase(&fakeWarehouse{err: boom}, nil, events)

	_, err := uc.Execute(context.Background(), testProfile(domain.ListingTypeSale), domain.Filters{}, domain.NewPageRequest(1, 10))
	require.ErrorIs(t, err, boom)
	assert.Empty(t, events.events)
}

func TestLoadListings_CacheHitSkipsWarehouse(t *testing.T) {
	warehouse := &fakeWarehouse{page: millionsPage(1)}
	cache := &fakeCache{}
	uc := NewLoadListingsUseCase(warehouse, cache, nil)
	profile := testProfile(domain.ListingTypeSale)

	_, err := uc.Execute(context.Background(), profile, domain.Filters{}, domain.NewPageRequest(1, 10))
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), profile, domain.Filters{}, domain.NewPageRequest(1, 10))
	require.NoError(t, err)

	assert.Len(t, warehouse.queries, 1)
	assert.Equal(t, 1, cache.sets)
	assert.True(t, second.FromCache)
}

func TestLoadListings_CacheAndEventFailuresDoNotFail(t *testing.T) {
	warehouse := &fakeWarehouse{page: millionsPage(1, 2)}
	cache := &fakeCache{getErr: errors.New("redis down")}
	events := &fakeEvents{err: errors.New("broker down")}
	uc := NewLoadListingsUseCase(warehouse, cache, events)

	result, err := uc.Execute(context.Background(), testProfile(domain.ListingTypeSale), domain.Filters{
		PriceFrom: domain.Int64Ptr(2 * domain.Billion),
	}, domain.NewPageRequest(3, 20))
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)

	require.Len(t, events.events, 1)
	ev := events.events[0]
	assert.Equal(t, domain.ListingTypeSale, ev.ListingType)
	assert.Equal(t, "/mua-ban-can-ho,gia-tu-2-ty", ev.Path)
	assert.Equal(t, 3, ev.PageIndex)
	assert.Equal(t, 20, ev.PageSize)
	assert.Equal(t, 42, ev.Total)
}
