package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"exhome-listing-service/internal/adapters/authtransport"
	session_adapter "exhome-listing-service/internal/adapters/session"
	"exhome-listing-service/internal/adapters/warehouse_api_client"
	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAuth struct {
	refreshCalls atomic.Int32
}

func (a *countingAuth) Login(context.Context, string, string) (*domain.TokenPair, *domain.User, error) {
	return nil, nil, domain.ErrInvalidCredentials
}

func (a *countingAuth) Refresh(context.Context, string) (*domain.TokenPair, error) {
	a.refreshCalls.Add(1)
	return &domain.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
}

// newBackendRouter собирает роутер на настоящем warehouse-клиенте с auth-транспортом,
// backend всегда отвечает 401.
func newBackendRouter(t *testing.T) (http.Handler, *session_adapter.MemoryStore, *countingAuth) {
	t.Helper()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(backend.Close)

	sessions := session_adapter.NewMemoryStore()
	auth := &countingAuth{}
	httpClient := &http.Client{Transport: authtransport.New(http.DefaultTransport, auth, sessions, 0)}
	warehouse := warehouse_api_client.NewClient(backend.URL, httpClient)

	registry, err := domain.NewProfileRegistry(domain.DefaultProfiles())
	require.NoError(t, err)
	projects := usecase.NewListProjectsUseCase(warehouse)
	listings := NewListingHandlers(registry, usecase.NewLoadListingsUseCase(warehouse, nil, nil),
		usecase.NewParseFiltersUseCase(), usecase.NewApplyFiltersUseCase(projects), projects)
	cookie := CookieConfig{Name: "exhome_session"}
	authHandlers := NewAuthHandlers(&stubLogin{}, &stubLogout{}, stubMe{}, cookie)
	router := NewRouter(listings, authHandlers, cookie, []string{"*"}, contextkeys.LoggerFromContext(context.Background()))
	return router, sessions, auth
}

func serve(router http.Handler, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/sale/mua-ban-can-ho", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBackend401_Anonymous(t *testing.T) {
	router, _, auth := newBackendRouter(t)

	rec := serve(router, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"login_required"}`, rec.Body.String())
	assert.Zero(t, auth.refreshCalls.Load())
}

func TestBackend401_StaleCookie(t *testing.T) {
	router, _, auth := newBackendRouter(t)

	rec := serve(router, &http.Cookie{Name: "exhome_session", Value: "gone"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"login_required"}`, rec.Body.String())
	assert.Zero(t, auth.refreshCalls.Load())
}

func TestBackend401_AfterRefresh(t *testing.T) {
	router, sessions, auth := newBackendRouter(t)
	require.NoError(t, sessions.Save(context.Background(), &domain.Session{
		ID:           "sess-9",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))

	rec := serve(router, &http.Cookie{Name: "exhome_session", Value: "sess-9"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"login_required"}`, rec.Body.String())
	assert.Equal(t, int32(1), auth.refreshCalls.Load())
}
