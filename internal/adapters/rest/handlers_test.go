package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"
	"exhome-listing-service/internal/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	filters domain.Filters
	page    domain.PageRequest
	profile domain.ListingProfile
	err     error
}

func (s *stubLoader) Execute(_ context.Context, profile domain.ListingProfile, filters domain.Filters, page domain.PageRequest) (*domain.ListingResult, error) {
	s.profile, s.filters, s.page = profile, filters, page
	if s.err != nil {
		return nil, s.err
	}
	items := []domain.Apartment{
		{ID: 1, Title: "A", Price: 2 * domain.Billion, Area: 70, Bedrooms: 2, Status: "AVAILABLE", ListingType: profile.Type},
		{ID: 2, Title: "B", Price: 4 * domain.Billion, Area: 90, Bedrooms: 3, Status: "AVAILABLE", ListingType: profile.Type},
	}
	return &domain.ListingResult{
		Items:      items,
		Total:      12,
		Page:       page,
		TotalPages: page.TotalPages(12),
		Statistics: domain.ComputeStatistics(items),
		Path:       "/" + profile.RoutePath,
	}, nil
}

type stubProjects struct {
	projects []domain.Project
	err      error
}

func (s *stubProjects) Execute(context.Context) ([]domain.Project, error) {
	return s.projects, s.err
}

type stubLogin struct {
	err error
}

func (s *stubLogin) Execute(_ context.Context, username, password string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Session{ID: "sess-1", CurrentUser: &domain.User{ID: "7", Username: username}}, nil
}

type stubLogout struct {
	sessionID string
}

func (s *stubLogout) Execute(_ context.Context, sessionID string) error {
	s.sessionID = sessionID
	return nil
}

type stubMe struct{}

func (stubMe) Execute(_ context.Context, sessionID string) (*domain.User, error) {
	if sessionID != "sess-1" {
		return nil, domain.ErrLoginRequired
	}
	return &domain.User{ID: "7", Username: "agent"}, nil
}

type testEnv struct {
	router   http.Handler
	loader   *stubLoader
	projects *stubProjects
	logout   *stubLogout
	login    *stubLogin
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	registry, err := domain.NewProfileRegistry(domain.DefaultProfiles())
	require.NoError(t, err)

	env := &testEnv{
		loader: &stubLoader{},
		projects: &stubProjects{projects: []domain.Project{
			{ID: 12, Name: "Vinhomes Grand Park", Slug: "vinhomes-grand-park"},
		}},
		logout: &stubLogout{},
		login:  &stubLogin{},
	}
	listings := NewListingHandlers(registry, env.loader, usecase.NewParseFiltersUseCase(), usecase.NewApplyFiltersUseCase(env.projects), env.projects)
	cookie := CookieConfig{Name: "exhome_session"}
	auth := NewAuthHandlers(env.login, env.logout, stubMe{}, cookie)
	env.router = NewRouter(listings, auth, cookie, []string{"*"}, contextkeys.LoggerFromContext(context.Background()))
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleListings_ParsesPathAndPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/listings/sale/mua-ban-can-ho,gia-tu-2-ty,dien-tich-toi-80m?page=2&pageSize=5", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))

	require.NotNil(t, env.loader.filters.PriceFrom)
	assert.Equal(t, 2*domain.Billion, *env.loader.filters.PriceFrom)
	require.NotNil(t, env.loader.filters.AreaTo)
	assert.Equal(t, 80, *env.loader.filters.AreaTo)
	assert.Equal(t, domain.PageRequest{PageIndex: 2, PageSize: 5}, env.loader.page)
	assert.Equal(t, domain.ListingTypeSale, env.loader.profile.Type)

	var resp ListingResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 12, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 2, resp.Statistics.Count)
	assert.Equal(t, 3*float64(domain.Billion), resp.Statistics.Price.Avg)
}

func TestHandleListings_RootPathAndRentalAlias(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/listings/CAN_CHO_THUE", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ListingTypeRental, env.loader.profile.Type)
	assert.True(t, env.loader.filters.IsEmpty())
	assert.Equal(t, domain.NewPageRequest(1, domain.DefaultPageSize), env.loader.page)
}

func TestHandleListings_Errors(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/listings/office", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/listings/sale/cho-thue-can-ho", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/listings/sale?page=abc", "").Code)

	env.loader.err = errors.New("warehouse down")
	assert.Equal(t, http.StatusBadGateway, env.do(t, http.MethodGet, "/api/v1/listings/sale", "").Code)

	env.loader.err = domain.ErrLoginRequired
	rec := env.do(t, http.MethodGet, "/api/v1/listings/sale", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"login_required"}`, rec.Body.String())
}

func TestHandleParseFilters(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/filters/sale/parse?path=/mua-ban-can-ho,du-an-vinhomes-grand-park,gia-den-5-ty", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view domain.FilterView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "vinhomes-grand-park", view.Filters.ProjectSlug)
	assert.Equal(t, int64(5*domain.Billion), view.PriceSlider[1])
	assert.Equal(t, "/mua-ban-can-ho,du-an-vinhomes-grand-park,gia-den-5-ty", view.Path)
}

func TestHandleApplyFilters(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/filters/sale/apply", `{"filters":{"projectId":12,"priceFrom":5000000000,"priceTo":2000000000}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var view domain.FilterView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "/mua-ban-can-ho,du-an-vinhomes-grand-park,gia-tu-2-ty,gia-den-5-ty", view.Path)
}

func TestHandleApplyFilters_RejectsInvalidBody(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/v1/filters/sale/apply", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/v1/filters/sale/apply", `{"filters":{"priceFrom":"2 ty"}}`).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/v1/filters/sale/apply", `{"other":1}`).Code)
}

func TestHandleProjectsAndProfiles(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":12,"name":"Vinhomes Grand Park","slug":"vinhomes-grand-park"}]`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var profiles []domain.ListingProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	assert.Len(t, profiles, 2)

	env.projects.err = errors.New("boom")
	assert.Equal(t, http.StatusBadGateway, env.do(t, http.MethodGet, "/api/v1/projects", "").Code)
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"agent","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "exhome_session", cookies[0].Name)
	assert.Equal(t, "sess-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", "", cookies[0])
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":{"id":"7","username":"agent"}}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/auth/logout", "", cookies[0])
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "sess-1", env.logout.sessionID)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestHandleLogin_Errors(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":" "}`).Code)

	env.login.err = domain.ErrInvalidCredentials
	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"agent","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

type recordingLogger struct {
	port.LoggerPort
	fields port.Fields
}

func (l *recordingLogger) WithFields(f port.Fields) port.LoggerPort {
	l.fields = f
	return l
}
func (l *recordingLogger) Info(string, port.Fields)  {}
func (l *recordingLogger) Debug(string, port.Fields) {}

func TestLoggerMiddleware_PropagatesTraceID(t *testing.T) {
	logger := &recordingLogger{}
	var seen string
	h := LoggerMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = contextkeys.TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "trace-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", seen)
	assert.Equal(t, "trace-42", rec.Header().Get("X-Trace-ID"))
}
