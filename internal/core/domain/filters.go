package domain

// Filters - структурированные фильтры страницы списка квартир.
// nil / пустая строка означают "не задано".
type Filters struct {
	ProjectID   *int   `json:"projectId,omitempty"`
	ProjectSlug string `json:"projectSlug,omitempty"`
	PriceFrom   *int64 `json:"priceFrom,omitempty"` // VND
	PriceTo     *int64 `json:"priceTo,omitempty"`   // VND
	AreaFrom    *int   `json:"areaFrom,omitempty"`  // м²
	AreaTo      *int   `json:"areaTo,omitempty"`    // м²
}

// IsEmpty возвращает true, если ни один фильтр не задан.
func (f Filters) IsEmpty() bool {
	return f.ProjectID == nil && f.ProjectSlug == "" &&
		f.PriceFrom == nil && f.PriceTo == nil &&
		f.AreaFrom == nil && f.AreaTo == nil
}

// Normalize убирает неположительные значения и меняет местами границы,
// если "от" больше "до".
func (f Filters) Normalize() Filters {
	out := f

	if out.ProjectID != nil && *out.ProjectID <= 0 {
		out.ProjectID = nil
	}
	if out.PriceFrom != nil && *out.PriceFrom <= 0 {
		out.PriceFrom = nil
	}
	if out.PriceTo != nil && *out.PriceTo <= 0 {
		out.PriceTo = nil
	}
	if out.AreaFrom != nil && *out.AreaFrom <= 0 {
		out.AreaFrom = nil
	}
	if out.AreaTo != nil && *out.AreaTo <= 0 {
		out.AreaTo = nil
	}

	if out.PriceFrom != nil && out.PriceTo != nil && *out.PriceFrom > *out.PriceTo {
		from, to := *out.PriceTo, *out.PriceFrom
		out.PriceFrom, out.PriceTo = &from, &to
	}
	if out.AreaFrom != nil && out.AreaTo != nil && *out.AreaFrom > *out.AreaTo {
		from, to := *out.AreaTo, *out.AreaFrom
		out.AreaFrom, out.AreaTo = &from, &to
	}

	return out
}

func IntPtr(v int) *int       { return &v }
func Int64Ptr(v int64) *int64 { return &v }
