package domain

import "time"

// Apartment - объявление из warehouse. Только для чтения и агрегации.
type Apartment struct {
	ID          int
	Code        string
	Title       string
	ProjectID   int
	ProjectName string
	Price       int64   // VND, 0 - цена неизвестна
	Area        float64 // м², 0 - площадь неизвестна
	Bedrooms    int
	Bathrooms   int
	Floor       string
	Direction   string
	Status      string
	ListingType ListingType
	Images      []string
	UpdatedAt   time.Time
}

// ApartmentPage - одна страница выдачи warehouse.
type ApartmentPage struct {
	Items  []Apartment
	Total  int
	Limit  int
	Offset int
}

// ApartmentQuery - параметры запроса списка в warehouse.
type ApartmentQuery struct {
	ListingType     ListingType
	PropertyGroupID int
	Filters         Filters
	Limit           int
	Offset          int
}

// Project - жилой комплекс (dự án).
type Project struct {
	ID   int
	Name string
	Slug string
}
