package usecase

import (
	"context"
	"sync"

	"exhome-listing-service/internal/core/domain"
)

type fakeWarehouse struct {
	mu       sync.Mutex
	queries  []domain.ApartmentQuery
	page     *domain.ApartmentPage
	projects []domain.Project
	err      error
}

func (f *fakeWarehouse) ListApartments(_ context.Context, query domain.ApartmentQuery) (*domain.ApartmentPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeWarehouse) ListProjects(_ context.Context) ([]domain.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

type fakeCache struct {
	stored map[int]*domain.ApartmentPage // ключ - offset
	getErr error
	sets   int
}

func (f *fakeCache) Get(_ context.Context, query domain.ApartmentQuery) (*domain.ApartmentPage, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	p, ok := f.stored[query.Offset]
	return p, ok, nil
}

func (f *fakeCache) Set(_ context.Context, query domain.ApartmentQuery, page *domain.ApartmentPage) error {
	if f.stored == nil {
		f.stored = make(map[int]*domain.ApartmentPage)
	}
	f.stored[query.Offset] = page
	f.sets++
	return nil
}

type fakeEvents struct {
	events []domain.SearchEvent
	err    error
}

func (f *fakeEvents) PublishSearchPerformed(_ context.Context, event domain.SearchEvent) error {
	f.events = append(f.events, event)
	return f.err
}

type fakeAuth struct {
	tokens *domain.TokenPair
	user   *domain.User
	err    error
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*domain.TokenPair, *domain.User, error) {
	return f.tokens, f.user, f.err
}

func (f *fakeAuth) Refresh(_ context.Context, _ string) (*domain.TokenPair, error) {
	return f.tokens, f.err
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]domain.Session)}
}

func (f *fakeSessions) Get(_ context.Context, id string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessions) Save(_ context.Context, session *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

func testProfile(listingType domain.ListingType) domain.ListingProfile {
	for _, p := range domain.DefaultProfiles() {
		if p.Type == listingType {
			return p
		}
	}
	panic("unknown listing type " + string(listingType))
}
