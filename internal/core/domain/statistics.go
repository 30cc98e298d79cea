package domain

const UnknownStatus = "UNKNOWN"

// Summary - количество, среднее, минимум и максимум по одному полю.
type Summary struct {
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func (s *Summary) add(v float64) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	// Avg пока хранит сумму, делим в finish
	s.Avg += v
	s.Count++
}

func (s *Summary) finish() {
	if s.Count > 0 {
		s.Avg /= float64(s.Count)
	}
}

// Statistics - панель статистики по текущей странице выдачи.
type Statistics struct {
	Count    int            `json:"count"`
	Price    Summary        `json:"price"`
	Area     Summary        `json:"area"`
	Bedrooms map[int]int    `json:"bedrooms"`
	Statuses map[string]int `json:"statuses"`
}

// ComputeStatistics считает статистику за один проход.
// Цена и площадь <= 0 считаются неизвестными и в сводку не попадают.
func ComputeStatistics(apartments []Apartment) Statistics {
	stats := Statistics{
		Bedrooms: make(map[int]int),
		Statuses: make(map[string]int),
	}

	for _, a := range apartments {
		stats.Count++
		if a.Price > 0 {
			stats.Price.add(float64(a.Price))
		}
		if a.Area > 0 {
			stats.Area.add(a.Area)
		}
		stats.Bedrooms[a.Bedrooms]++

		status := a.Status
		if status == "" {
			status = UnknownStatus
		}
		stats.Statuses[status]++
	}

	stats.Price.finish()
	stats.Area.finish()
	return stats
}

// MergeStatistics пересчитывает статистику по нескольким страницам сразу.
func MergeStatistics(pages ...[]Apartment) Statistics {
	var all []Apartment
	for _, p := range pages {
		all = append(all, p...)
	}
	return ComputeStatistics(all)
}
