package rest

import (
	"time"

	"exhome-listing-service/internal/core/domain"
)

// ApplyFiltersRequestDTO - тело POST /filters/{listingType}/apply
type ApplyFiltersRequestDTO struct {
	Filters domain.Filters `json:"filters"`
}

type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ApartmentDTO struct {
	ID          int        `json:"id"`
	Code        string     `json:"code,omitempty"`
	Title       string     `json:"title"`
	ProjectID   int        `json:"projectId,omitempty"`
	ProjectName string     `json:"projectName,omitempty"`
	Price       int64      `json:"price"`
	Area        float64    `json:"area"`
	Bedrooms    int        `json:"bedrooms"`
	Bathrooms   int        `json:"bathrooms"`
	Floor       string     `json:"floor,omitempty"`
	Direction   string     `json:"direction,omitempty"`
	Status      string     `json:"status,omitempty"`
	ListingType string     `json:"listingType"`
	Images      []string   `json:"images"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type ListingResponseDTO struct {
	Items      []ApartmentDTO    `json:"items"`
	Total      int               `json:"total"`
	PageIndex  int               `json:"pageIndex"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
	Statistics domain.Statistics `json:"statistics"`
	Path       string            `json:"path"`
	Filters    domain.Filters    `json:"filters"`
	FromCache  bool              `json:"fromCache"`
}

type ProjectDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type SessionResponseDTO struct {
	User *domain.User `json:"user"`
}

func toApartmentDTO(a domain.Apartment) ApartmentDTO {
	dto := ApartmentDTO{
		ID:          a.ID,
		Code:        a.Code,
		Title:       a.Title,
		ProjectID:   a.ProjectID,
		ProjectName: a.ProjectName,
		Price:       a.Price,
		Area:        a.Area,
		Bedrooms:    a.Bedrooms,
		Bathrooms:   a.Bathrooms,
		Floor:       a.Floor,
		Direction:   a.Direction,
		Status:      a.Status,
		ListingType: string(a.ListingType),
		Images:      a.Images,
	}
	if dto.Images == nil {
		dto.Images = []string{}
	}
	if !a.UpdatedAt.IsZero() {
		updated := a.UpdatedAt
		dto.UpdatedAt = &updated
	}
	return dto
}

func toListingResponse(result *domain.ListingResult, filters domain.Filters) ListingResponseDTO {
	items := make([]ApartmentDTO, 0, len(result.Items))
	for _, a := range result.Items {
		items = append(items, toApartmentDTO(a))
	}
	return ListingResponseDTO{
		Items:      items,
		Total:      result.Total,
		PageIndex:  result.Page.PageIndex,
		PageSize:   result.Page.PageSize,
		TotalPages: result.TotalPages,
		Statistics: result.Statistics,
		Path:       result.Path,
		Filters:    filters,
		FromCache:  result.FromCache,
	}
}
