package usecase

import (
	"context"
	"sync"

	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port/usecases_port"
)

// ListingController связывает ListingState с загрузкой страниц.
// Новый Load отменяет предыдущий, а результат устаревшей загрузки отбрасывается,
// поэтому медленный старый ответ не перезапишет более новое состояние.
type ListingController struct {
	loader usecases_port.LoadListingsUseCasePort

	mu         sync.Mutex
	state      *ListingState
	cancel     context.CancelFunc
	generation uint64
	last       *domain.ListingResult
}

func NewListingController(profile domain.ListingProfile, loader usecases_port.LoadListingsUseCasePort) *ListingController {
	return &ListingController{
		loader: loader,
		state:  NewListingState(profile),
	}
}

// Navigate переходит по пути и загружает первую страницу.
func (c *ListingController) Navigate(ctx context.Context, path string) (*domain.ListingResult, error) {
	c.mu.Lock()
	err := c.state.Navigate(path)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.Load(ctx)
}

// ApplyFilters применяет фильтры и загружает первую страницу.
func (c *ListingController) ApplyFilters(ctx context.Context, filters domain.Filters) (*domain.ListingResult, error) {
	c.mu.Lock()
	c.state.ApplyFilters(filters)
	c.mu.Unlock()
	return c.Load(ctx)
}

func (c *ListingController) SetPage(ctx context.Context, pageIndex int) (*domain.ListingResult, error) {
	c.mu.Lock()
	c.state.SetPage(pageIndex)
	c.mu.Unlock()
	return c.Load(ctx)
}

func (c *ListingController) SetPageSize(ctx context.Context, pageSize int) (*domain.ListingResult, error) {
	c.mu.Lock()
	c.state.SetPageSize(pageSize)
	c.mu.Unlock()
	return c.Load(ctx)
}

// Load загружает страницу для текущего состояния.
// Если во время загрузки был запущен другой Load, возвращает domain.ErrLoadSuperseded.
func (c *ListingController) Load(ctx context.Context) (*domain.ListingResult, error) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++
	gen := c.generation
	profile, filters, page := c.state.Profile, c.state.Filters, c.state.Page
	c.mu.Unlock()

	defer cancel()

	result, err := c.loader.Execute(loadCtx, profile, filters, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil, domain.ErrLoadSuperseded
	}
	c.cancel = nil
	if err != nil {
		return nil, err
	}
	c.last = result
	return result, nil
}

// State возвращает копию текущего состояния.
func (c *ListingController) State() ListingState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.state
}

// Last - результат последней успешной загрузки или nil.
func (c *ListingController) Last() *domain.ListingResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
