package slugcodec

import (
	"net/url"
	"strconv"
	"strings"

	"exhome-listing-service/internal/core/domain"
)

const (
	segmentSeparator = ","

	prefixProject  = "du-an-"
	prefixPriceMin = "gia-tu-"
	prefixPriceMax = "gia-den-"
	prefixAreaMin  = "dien-tich-tu-"
	prefixAreaMax  = "dien-tich-toi-"
)

// BuildPath собирает канонический путь страницы списка:
// /{route},du-an-{id|slug},gia-tu-{..},gia-den-{..},dien-tich-tu-{n}m,dien-tich-toi-{n}m
// Порядок сегментов фиксирован, незаданные сегменты пропускаются.
func BuildPath(profile domain.ListingProfile, filters domain.Filters) string {
	f := filters.Normalize()

	segments := []string{"/" + strings.Trim(profile.RoutePath, "/")}

	switch {
	case f.ProjectSlug != "" && isValidProjectSlug(f.ProjectSlug) && !isDigits(f.ProjectSlug):
		segments = append(segments, prefixProject+f.ProjectSlug)
	case f.ProjectID != nil:
		segments = append(segments, prefixProject+strconv.Itoa(*f.ProjectID))
	}

	if f.PriceFrom != nil {
		if s := PriceToSlug(*f.PriceFrom); s != "" {
			segments = append(segments, prefixPriceMin+s)
		}
	}
	if f.PriceTo != nil {
		if s := PriceToSlug(*f.PriceTo); s != "" {
			segments = append(segments, prefixPriceMax+s)
		}
	}
	if f.AreaFrom != nil {
		if s := AreaToSlug(*f.AreaFrom); s != "" {
			segments = append(segments, prefixAreaMin+s)
		}
	}
	if f.AreaTo != nil {
		if s := AreaToSlug(*f.AreaTo); s != "" {
			segments = append(segments, prefixAreaMax+s)
		}
	}

	return strings.Join(segments, segmentSeparator)
}

// ParsePath разбирает путь в route и фильтры. Каждый вызов начинает с пустых фильтров.
// Неизвестные и битые сегменты игнорируются.
func ParsePath(path string) (string, domain.Filters) {
	var filters domain.Filters

	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return "", filters
	}

	parts := strings.Split(path, segmentSeparator)
	routePath := strings.TrimSpace(parts[0])

	for _, raw := range parts[1:] {
		seg := strings.ToLower(strings.TrimSpace(raw))

		switch {
		case strings.HasPrefix(seg, prefixProject):
			value := strings.TrimPrefix(seg, prefixProject)
			if isDigits(value) {
				if id, err := strconv.Atoi(value); err == nil && id > 0 {
					filters.ProjectID = &id
					filters.ProjectSlug = ""
				}
			} else if isValidProjectSlug(value) {
				filters.ProjectSlug = value
				filters.ProjectID = nil
			}

		case strings.HasPrefix(seg, prefixPriceMin):
			if v := SlugToPrice(strings.TrimPrefix(seg, prefixPriceMin)); v > 0 {
				filters.PriceFrom = &v
			}

		case strings.HasPrefix(seg, prefixPriceMax):
			if v := SlugToPrice(strings.TrimPrefix(seg, prefixPriceMax)); v > 0 {
				filters.PriceTo = &v
			}

		case strings.HasPrefix(seg, prefixAreaMin):
			if v := SlugToArea(strings.TrimPrefix(seg, prefixAreaMin)); v > 0 {
				filters.AreaFrom = &v
			}

		case strings.HasPrefix(seg, prefixAreaMax):
			if v := SlugToArea(strings.TrimPrefix(seg, prefixAreaMax)); v > 0 {
				filters.AreaTo = &v
			}
		}
	}

	return routePath, filters
}

// CanonicalPath приводит путь к каноническому виду для профиля.
func CanonicalPath(profile domain.ListingProfile, path string) string {
	_, filters := ParsePath(path)
	return BuildPath(profile, filters)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
