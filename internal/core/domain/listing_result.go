package domain

// ListingResult - все, что нужно странице списка после одной загрузки.
type ListingResult struct {
	Items      []Apartment
	Total      int
	Page       PageRequest
	TotalPages int
	Statistics Statistics
	Path       string // канонический путь фильтров
	FromCache  bool
}
