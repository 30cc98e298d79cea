package warehouse_api_client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListApartments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, apartmentsPath, r.URL.Path)
		assert.Equal(t, "trace-1", r.Header.Get("X-Trace-ID"))

		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "10", q.Get("offset"))
		assert.Equal(t, "1", q.Get("property_group_id"))
		assert.Equal(t, "CAN_BAN", q.Get("demand"))
		assert.Equal(t, "2000000000", q.Get("price_from"))
		assert.Equal(t, "80", q.Get("area_to"))
		assert.Equal(t, "12", q.Get("project_id"))
		assert.Empty(t, q.Get("price_to"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":5,"title":"Căn 2PN","price":2500000000,"area":72.5,"bedrooms":2,"status":"AVAILABLE","updated_at":"2024-05-01T10:00:00Z"}],"total":31}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")

	page, err := client.ListApartments(ctx, domain.ApartmentQuery{
		ListingType:     domain.ListingTypeSale,
		PropertyGroupID: 1,
		Limit:           10,
		Offset:          10,
		Filters: domain.Filters{
			ProjectID: domain.IntPtr(12),
			PriceFrom: domain.Int64Ptr(2_000_000_000),
			AreaTo:    domain.IntPtr(80),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 31, page.Total)
	require.Len(t, page.Items, 1)
	a := page.Items[0]
	assert.Equal(t, int64(2_500_000_000), a.Price)
	assert.Equal(t, 72.5, a.Area)
	assert.Equal(t, domain.ListingTypeSale, a.ListingType)
	assert.Equal(t, 2024, a.UpdatedAt.Year())
}

func TestListApartments_ProjectSlugPreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dao-kim-cuong", r.URL.Query().Get("project_slug"))
		assert.Empty(t, r.URL.Query().Get("project_id"))
		w.Write([]byte(`{"data":[],"total":0}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).ListApartments(context.Background(), domain.ApartmentQuery{
		Limit: 10,
		Filters: domain.Filters{
			ProjectID:   domain.IntPtr(3),
			ProjectSlug: "dao-kim-cuong",
		},
	})
	require.NoError(t, err)
}

func TestListApartments_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).ListApartments(context.Background(), domain.ApartmentQuery{Limit: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "db unavailable")
	assert.NotErrorIs(t, err, domain.ErrLoginRequired)
}

func TestUnauthorizedMeansLoginRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token required", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	_, err := client.ListApartments(context.Background(), domain.ApartmentQuery{Limit: 10})
	assert.ErrorIs(t, err, domain.ErrLoginRequired)

	_, err = client.ListProjects(context.Background())
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
}

func TestListProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, projectsPath, r.URL.Path)
		w.Write([]byte(`{"data":[{"id":1,"name":"Đảo Kim Cương","slug":""},{"id":2,"name":"Vinhomes","slug":"vinhomes"}]}`))
	}))
	defer srv.Close()

	projects, err := NewClient(srv.URL, nil).ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Project{
		{ID: 1, Name: "Đảo Kim Cương"},
		{ID: 2, Name: "Vinhomes", Slug: "vinhomes"},
	}, projects)
}
