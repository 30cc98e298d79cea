package analyzer

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedLoader отдает total квартир по 1..total млрд VND
type pagedLoader struct {
	mu    sync.Mutex
	total int
	calls []domain.PageRequest
	fail  int // номер страницы, на которой вернуть ошибку
}

func (l *pagedLoader) Execute(_ context.Context, profile domain.ListingProfile, filters domain.Filters, page domain.PageRequest) (*domain.ListingResult, error) {
	l.mu.Lock()
	l.calls = append(l.calls, page)
	l.mu.Unlock()

	if l.fail == page.PageIndex {
		return nil, errors.New("warehouse down")
	}

	var items []domain.Apartment
	for i := page.Offset(); i < page.Offset()+page.Limit() && i < l.total; i++ {
		items = append(items, domain.Apartment{
			ID:       i + 1,
			Price:    int64(i+1) * domain.Billion,
			Area:     50,
			Bedrooms: 2,
			Status:   "AVAILABLE",
		})
	}
	return &domain.ListingResult{
		Items:      items,
		Total:      l.total,
		Page:       page,
		TotalPages: page.TotalPages(l.total),
		Statistics: domain.ComputeStatistics(items),
		Path:       "/" + profile.RoutePath,
	}, nil
}

func saleProfile(t *testing.T) domain.ListingProfile {
	t.Helper()
	registry, err := domain.NewProfileRegistry(domain.DefaultProfiles())
	require.NoError(t, err)
	p, err := registry.Lookup("sale")
	require.NoError(t, err)
	return p
}

func TestRun_WalksRequestedPages(t *testing.T) {
	loader := &pagedLoader{total: 25}
	controller := usecase.NewListingController(saleProfile(t), loader)

	report, err := Run(context.Background(), controller, Options{Path: "/mua-ban-can-ho", Pages: 2, PageSize: 5})
	require.NoError(t, err)

	require.Len(t, report.Pages, 2)
	assert.Equal(t, 25, report.Total)
	assert.Equal(t, 5, report.TotalPages)
	assert.Equal(t, 10, report.Merged.Count)
	assert.Equal(t, 5.5*float64(domain.Billion), report.Merged.Price.Avg)
	assert.Equal(t, 10*float64(domain.Billion), report.Merged.Price.Max)

	// Navigate (размер по умолчанию), SetPageSize, затем страница 2
	require.Len(t, loader.calls, 3)
	assert.Equal(t, domain.PageRequest{PageIndex: 1, PageSize: 5}, loader.calls[1])
	assert.Equal(t, domain.PageRequest{PageIndex: 2, PageSize: 5}, loader.calls[2])
}

func TestRun_StopsAtLastPage(t *testing.T) {
	loader := &pagedLoader{total: 12}
	controller := usecase.NewListingController(saleProfile(t), loader)

	report, err := Run(context.Background(), controller, Options{Path: "/mua-ban-can-ho", Pages: 10, PageSize: domain.DefaultPageSize})
	require.NoError(t, err)

	require.Len(t, report.Pages, 2)
	assert.Equal(t, 2, report.Pages[1].Items)
	assert.Equal(t, 12, report.Merged.Count)
	assert.Len(t, loader.calls, 2)
}

func TestRun_Errors(t *testing.T) {
	controller := usecase.NewListingController(saleProfile(t), &pagedLoader{total: 30, fail: 2})
	_, err := Run(context.Background(), controller, Options{Path: "/mua-ban-can-ho", Pages: 3})
	assert.ErrorContains(t, err, "load page 2")

	controller = usecase.NewListingController(saleProfile(t), &pagedLoader{total: 30})
	_, err = Run(context.Background(), controller, Options{Path: "/cho-thue-can-ho"})
	assert.ErrorIs(t, err, domain.ErrRouteMismatch)
}

func TestPrint(t *testing.T) {
	report := &Report{
		Path:       "/mua-ban-can-ho,gia-tu-2-ty",
		Total:      3,
		TotalPages: 1,
		Pages: []PageReport{{PageIndex: 1, Items: 3, Statistics: domain.ComputeStatistics([]domain.Apartment{
			{Price: 2_350_000_000, Area: 70, Bedrooms: 2, Status: "AVAILABLE"},
		})}},
		Merged: domain.ComputeStatistics([]domain.Apartment{
			{Price: 2_350_000_000, Area: 70, Bedrooms: 2, Status: "AVAILABLE"},
			{Price: 850_000_000, Area: 40, Bedrooms: 1},
		}),
	}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "/mua-ban-can-ho,gia-tu-2-ty")
	assert.Contains(t, out, "2.35 tỷ")
	assert.Contains(t, out, "850 tr")
	assert.Contains(t, out, "1PN: 1, 2PN: 1")
	assert.Contains(t, out, "AVAILABLE: 1, UNKNOWN: 1")
}
