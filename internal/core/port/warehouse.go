package port

import (
	"context"
	"exhome-listing-service/internal/core/domain"
)

// WarehousePort - контракт клиента к warehouse backend.
type WarehousePort interface {
	ListApartments(ctx context.Context, query domain.ApartmentQuery) (*domain.ApartmentPage, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
}
