package domain

// FilterView - фильтры вместе с положением слайдеров и каноническим путем.
type FilterView struct {
	ListingType ListingType `json:"listingType"`
	Filters     Filters     `json:"filters"`
	PriceSlider [2]int64    `json:"priceSlider"`
	AreaSlider  [2]int      `json:"areaSlider"`
	Path        string      `json:"path"`
}
