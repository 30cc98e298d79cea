package usecase

import (
	"context"
	"testing"

	"exhome-listing-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLogoutMe(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	auth := &fakeAuth{
		tokens: &domain.TokenPair{AccessToken: "a1", RefreshToken: "r1"},
		user:   &domain.User{ID: "u1", Username: "agent"},
	}

	session, err := NewLoginUseCase(auth, sessions).Execute(ctx, "agent", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "a1", session.AccessToken)

	me := NewCurrentUserUseCase(sessions)
	user, err := me.Execute(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "agent", user.Username)

	logout := NewLogoutUseCase(sessions)
	require.NoError(t, logout.Execute(ctx, session.ID))
	require.NoError(t, logout.Execute(ctx, session.ID))

	_, err = me.Execute(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	sessions := newFakeSessions()
	_, err := NewLoginUseCase(&fakeAuth{err: domain.ErrInvalidCredentials}, sessions).Execute(context.Background(), "agent", "bad")

	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, sessions.sessions)
}

func TestCurrentUser_Anonymous(t *testing.T) {
	_, err := NewCurrentUserUseCase(newFakeSessions()).Execute(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
}

func TestListProjects_DerivesSlugs(t *testing.T) {
	warehouse := &fakeWarehouse{projects: []domain.Project{
		{ID: 2, Name: "Vinhomes Grand Park", Slug: "vhgp"},
		{ID: 1, Name: "Đảo Kim Cương"},
	}}

	projects, err := NewListProjectsUseCase(warehouse).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "dao-kim-cuong", projects[1].Slug)
	assert.Equal(t, "vhgp", projects[0].Slug)
}

func TestApplyFilters_ResolvesProjectSlug(t *testing.T) {
	warehouse := &fakeWarehouse{projects: []domain.Project{{ID: 12, Name: "Đảo Kim Cương"}}}
	uc := NewApplyFiltersUseCase(NewListProjectsUseCase(warehouse))

	view, err := uc.Execute(context.Background(), testProfile(domain.ListingTypeSale), domain.Filters{
		ProjectID: domain.IntPtr(12),
		AreaTo:    domain.IntPtr(80),
	})
	require.NoError(t, err)
	assert.Equal(t, "/mua-ban-can-ho,du-an-dao-kim-cuong,dien-tich-toi-80m", view.Path)
	assert.Equal(t, [2]int{0, 80}, view.AreaSlider)
}

func TestParseFilters(t *testing.T) {
	uc := NewParseFiltersUseCase()

	view, err := uc.Execute(context.Background(), testProfile(domain.ListingTypeRental), "/cho-thue-can-ho,gia-den-15-trieu,gia-tu-5-trieu")
	require.NoError(t, err)
	assert.Equal(t, "/cho-thue-can-ho,gia-tu-5-trieu,gia-den-15-trieu", view.Path)
	assert.Equal(t, [2]int64{5 * domain.Million, 15 * domain.Million}, view.PriceSlider)

	_, err = uc.Execute(context.Background(), testProfile(domain.ListingTypeRental), "/mua-ban-can-ho")
	assert.ErrorIs(t, err, domain.ErrRouteMismatch)
}
