package domain

import (
	"fmt"
	"strings"
)

// ListingType - тип объявления: продажа или аренда.
type ListingType string

const (
	ListingTypeSale   ListingType = "CAN_BAN"
	ListingTypeRental ListingType = "CAN_CHO_THUE"
)

const (
	Million int64 = 1_000_000
	Billion int64 = 1_000_000_000
)

// RangeConfig - границы и шаг слайдера.
type RangeConfig struct {
	Min  int64 `json:"min"`
	Max  int64 `json:"max"`
	Step int64 `json:"step"`
}

// Clamp загоняет значение в границы диапазона.
func (r RangeConfig) Clamp(v int64) int64 {
	if v < r.Min {
		return r.Min
	}
	if r.Max > r.Min && v > r.Max {
		return r.Max
	}
	return v
}

// Snap загоняет значение в диапазон и округляет до ближайшего шага от Min.
// Max достижим, даже если не кратен шагу.
func (r RangeConfig) Snap(v int64) int64 {
	v = r.Clamp(v)
	if r.Step <= 0 || (r.Max > r.Min && v == r.Max) {
		return v
	}
	n := (v - r.Min + r.Step/2) / r.Step
	return r.Clamp(r.Min + n*r.Step)
}

// ListingProfile - стратегия для конкретного типа объявлений.
// Все различия между страницами продажи и аренды живут здесь.
type ListingProfile struct {
	Type            ListingType `json:"type"`
	Alias           string      `json:"alias"`
	RoutePath       string      `json:"routePath"`
	PropertyGroupID int         `json:"propertyGroupId"`
	Price           RangeConfig `json:"price"` // VND
	Area            RangeConfig `json:"area"`  // м²
}

// DefaultProfiles возвращает профили по умолчанию.
func DefaultProfiles() []ListingProfile {
	return []ListingProfile{
		{
			Type:            ListingTypeSale,
			Alias:           "sale",
			RoutePath:       "mua-ban-can-ho",
			PropertyGroupID: 1,
			Price:           RangeConfig{Min: 0, Max: 50 * Billion, Step: 100 * Million},
			Area:            RangeConfig{Min: 0, Max: 300, Step: 5},
		},
		{
			Type:            ListingTypeRental,
			Alias:           "rental",
			RoutePath:       "cho-thue-can-ho",
			PropertyGroupID: 2,
			Price:           RangeConfig{Min: 0, Max: 100 * Million, Step: Million},
			Area:            RangeConfig{Min: 0, Max: 300, Step: 5},
		},
	}
}

// ProfileRegistry - набор профилей с поиском по типу, алиасу и пути.
type ProfileRegistry struct {
	profiles []ListingProfile
}

func NewProfileRegistry(profiles []ListingProfile) (*ProfileRegistry, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("profile registry: at least one profile is required")
	}
	seen := make(map[string]bool)
	normalized := make([]ListingProfile, len(profiles))
	for i, p := range profiles {
		p.RoutePath = NormalizeRoutePath(p.RoutePath)
		normalized[i] = p
		if p.Type == "" || p.RoutePath == "" {
			return nil, fmt.Errorf("profile registry: type and route path are required (type=%q)", p.Type)
		}
		if seen[p.RoutePath] {
			return nil, fmt.Errorf("profile registry: duplicate route path %q", p.RoutePath)
		}
		seen[p.RoutePath] = true
	}
	return &ProfileRegistry{profiles: normalized}, nil
}

// NormalizeRoutePath приводит первый сегмент пути к виду "mua-ban-can-ho".
func NormalizeRoutePath(routePath string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(routePath), "/"))
}

// Lookup ищет профиль по имени типа ("CAN_BAN") или алиасу ("sale"), без учета регистра.
func (r *ProfileRegistry) Lookup(name string) (ListingProfile, error) {
	for _, p := range r.profiles {
		if strings.EqualFold(string(p.Type), name) || (p.Alias != "" && strings.EqualFold(p.Alias, name)) {
			return p, nil
		}
	}
	return ListingProfile{}, fmt.Errorf("%w: %q", ErrUnknownListingType, name)
}

// ByRoutePath ищет профиль по первому сегменту пути.
func (r *ProfileRegistry) ByRoutePath(routePath string) (ListingProfile, error) {
	routePath = NormalizeRoutePath(routePath)
	for _, p := range r.profiles {
		if p.RoutePath == routePath {
			return p, nil
		}
	}
	return ListingProfile{}, fmt.Errorf("%w: route %q", ErrUnknownListingType, routePath)
}

func (r *ProfileRegistry) All() []ListingProfile {
	out := make([]ListingProfile, len(r.profiles))
	copy(out, r.profiles)
	return out
}
