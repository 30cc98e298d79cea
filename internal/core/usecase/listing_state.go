package usecase

import (
	"fmt"

	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/slugcodec"
)

// ListingState - состояние страницы списка для одного профиля:
// фильтры, положение слайдеров и текущая страница.
type ListingState struct {
	Profile     domain.ListingProfile `json:"profile"`
	Filters     domain.Filters        `json:"filters"`
	PriceSlider [2]int64              `json:"priceSlider"`
	AreaSlider  [2]int                `json:"areaSlider"`
	Page        domain.PageRequest    `json:"page"`
}

func NewListingState(profile domain.ListingProfile) *ListingState {
	s := &ListingState{
		Profile: profile,
		Page:    domain.NewPageRequest(1, domain.DefaultPageSize),
	}
	s.syncSliders()
	return s
}

// Navigate сбрасывает фильтры и заново разбирает путь.
// Размер страницы сохраняется, номер страницы становится 1.
// Если путь относится к другому профилю, состояние не меняется.
func (s *ListingState) Navigate(path string) error {
	routePath, filters := slugcodec.ParsePath(path)
	if routePath != "" && domain.NormalizeRoutePath(routePath) != domain.NormalizeRoutePath(s.Profile.RoutePath) {
		return fmt.Errorf("%w: %q is not %q", domain.ErrRouteMismatch, routePath, s.Profile.RoutePath)
	}

	s.Filters = filters.Normalize()
	s.syncSliders()
	s.Page = domain.NewPageRequest(1, s.Page.PageSize)
	return nil
}

// ApplyFilters сохраняет фильтры, сбрасывает страницу и возвращает путь для перехода.
func (s *ListingState) ApplyFilters(filters domain.Filters) string {
	s.Filters = filters.Normalize()
	s.syncSliders()
	s.Page = domain.NewPageRequest(1, s.Page.PageSize)
	return s.Path()
}

// Apply применяет текущие (отредактированные слайдерами) фильтры.
func (s *ListingState) Apply() string {
	return s.ApplyFilters(s.Filters)
}

// SetPriceSlider двигает слайдер цены с шагом профиля. Граница на краю диапазона - "не задано".
func (s *ListingState) SetPriceSlider(lo, hi int64) {
	r := s.Profile.Price
	lo, hi = r.Snap(lo), r.Snap(hi)
	if lo > hi {
		lo, hi = hi, lo
	}
	s.PriceSlider = [2]int64{lo, hi}

	s.Filters.PriceFrom, s.Filters.PriceTo = nil, nil
	if lo > r.Min {
		s.Filters.PriceFrom = domain.Int64Ptr(lo)
	}
	if hi < r.Max {
		s.Filters.PriceTo = domain.Int64Ptr(hi)
	}
}

// SetAreaSlider - то же для площади.
func (s *ListingState) SetAreaSlider(lo, hi int) {
	r := s.Profile.Area
	l, h := r.Snap(int64(lo)), r.Snap(int64(hi))
	if l > h {
		l, h = h, l
	}
	s.AreaSlider = [2]int{int(l), int(h)}

	s.Filters.AreaFrom, s.Filters.AreaTo = nil, nil
	if l > r.Min {
		s.Filters.AreaFrom = domain.IntPtr(int(l))
	}
	if h < r.Max {
		s.Filters.AreaTo = domain.IntPtr(int(h))
	}
}

func (s *ListingState) SetPage(pageIndex int) {
	if pageIndex < 1 {
		pageIndex = 1
	}
	s.Page.PageIndex = pageIndex
}

// SetPageSize меняет размер страницы и возвращает на первую.
func (s *ListingState) SetPageSize(pageSize int) {
	s.Page = domain.NewPageRequest(1, pageSize)
}

// Path - канонический путь текущих фильтров.
func (s *ListingState) Path() string {
	return slugcodec.BuildPath(s.Profile, s.Filters)
}

// Query - запрос к warehouse для текущего состояния.
func (s *ListingState) Query() domain.ApartmentQuery {
	return domain.ApartmentQuery{
		ListingType:     s.Profile.Type,
		PropertyGroupID: s.Profile.PropertyGroupID,
		Filters:         s.Filters,
		Limit:           s.Page.Limit(),
		Offset:          s.Page.Offset(),
	}
}

func (s *ListingState) syncSliders() {
	price, area := s.Profile.Price, s.Profile.Area

	s.PriceSlider = [2]int64{price.Min, price.Max}
	if s.Filters.PriceFrom != nil {
		s.PriceSlider[0] = price.Clamp(*s.Filters.PriceFrom)
	}
	if s.Filters.PriceTo != nil {
		s.PriceSlider[1] = price.Clamp(*s.Filters.PriceTo)
	}

	s.AreaSlider = [2]int{int(area.Min), int(area.Max)}
	if s.Filters.AreaFrom != nil {
		s.AreaSlider[0] = int(area.Clamp(int64(*s.Filters.AreaFrom)))
	}
	if s.Filters.AreaTo != nil {
		s.AreaSlider[1] = int(area.Clamp(int64(*s.Filters.AreaTo)))
	}
}

func (s *ListingState) View() *domain.FilterView {
	return &domain.FilterView{
		ListingType: s.Profile.Type,
		Filters:     s.Filters,
		PriceSlider: s.PriceSlider,
		AreaSlider:  s.AreaSlider,
		Path:        s.Path(),
	}
}
