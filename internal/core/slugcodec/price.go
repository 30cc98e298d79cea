// Package slugcodec переводит фильтры в человекочитаемые сегменты URL и обратно.
//
// Формат сегментов:
//
//	gia-tu-13-5-ty      цена от 13.5 млрд VND
//	gia-den-500-trieu   цена до 500 млн VND
//	dien-tich-tu-50m    площадь от 50 м²
//	dien-tich-toi-80m   площадь до 80 м²
//	du-an-12 / du-an-vinhomes-grand-park
//
// Ошибочные сегменты не приводят к ошибке: значение считается незаданным.
package slugcodec

import (
	"math"
	"regexp"
	"strconv"
)

const (
	million int64 = 1_000_000
	billion int64 = 1_000_000_000

	suffixBillion = "-ty"
	suffixMillion = "-trieu"
)

var (
	// не больше одной дробной цифры, иначе декодирование неоднозначно
	billionSlugRe = regexp.MustCompile(`^(\d+)(?:-(\d))?-ty$`)
	millionSlugRe = regexp.MustCompile(`^(\d+)-trieu$`)
)

// PriceToSlug кодирует цену в VND.
// >= 1 млрд - миллиарды с одним знаком после запятой ("13-5-ty"),
// иначе - целые миллионы ("500-trieu"). Неположительная цена дает "".
func PriceToSlug(vnd int64) string {
	if vnd <= 0 {
		return ""
	}

	if vnd < billion {
		millions := int64(math.Round(float64(vnd) / float64(million)))
		if millions < 1000 {
			if millions == 0 {
				millions = 1
			}
			return strconv.FormatInt(millions, 10) + suffixMillion
		}
		// 999.6 млн округлились до 1000 - это уже "1-ty"
	}

	tenths := int64(math.Round(float64(vnd) / float64(billion/10)))
	whole, frac := tenths/10, tenths%10
	if frac == 0 {
		return strconv.FormatInt(whole, 10) + suffixBillion
	}
	return strconv.FormatInt(whole, 10) + "-" + strconv.FormatInt(frac, 10) + suffixBillion
}

// SlugToPrice декодирует сегмент цены. Для некорректного ввода возвращает 0.
func SlugToPrice(slug string) int64 {
	if m := billionSlugRe.FindStringSubmatch(slug); m != nil {
		whole, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || whole > math.MaxInt64/billion-1 {
			return 0
		}
		var frac int64
		if m[2] != "" {
			frac, _ = strconv.ParseInt(m[2], 10, 64)
		}
		return whole*billion + frac*(billion/10)
	}

	if m := millionSlugRe.FindStringSubmatch(slug); m != nil {
		millions, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || millions > math.MaxInt64/million {
			return 0
		}
		return millions * million
	}

	return 0
}
