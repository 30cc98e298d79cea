package slugcodec

import (
	"regexp"
	"strconv"
)

var areaSlugRe = regexp.MustCompile(`^(\d{1,6})m$`)

// AreaToSlug кодирует площадь в целых метрах: 80 -> "80m".
func AreaToSlug(meters int) string {
	if meters <= 0 {
		return ""
	}
	return strconv.Itoa(meters) + "m"
}

// SlugToArea декодирует площадь. Для некорректного ввода возвращает 0.
func SlugToArea(slug string) int {
	m := areaSlugRe.FindStringSubmatch(slug)
	if m == nil {
		return 0
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return v
}
