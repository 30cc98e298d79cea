package usecases_port

import (
	"context"
	"exhome-listing-service/internal/core/domain"
)

type ListProjectsUseCasePort interface {
	Execute(ctx context.Context) ([]domain.Project, error)
}
