package usecase

import (
	"context"
	"fmt"
	"sort"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"
	"exhome-listing-service/internal/core/slugcodec"
)

type ListProjectsUseCase struct {
	warehouse port.WarehousePort
}

func NewListProjectsUseCase(warehouse port.WarehousePort) *ListProjectsUseCase {
	return &ListProjectsUseCase{warehouse: warehouse}
}

// Execute возвращает проекты, отсортированные по имени. Пустой slug выводится из имени.
func (uc *ListProjectsUseCase) Execute(ctx context.Context) ([]domain.Project, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListProjects"})

	projects, err := uc.warehouse.ListProjects(ctx)
	if err != nil {
		ucLogger.Error("Warehouse failed to list projects", err, nil)
		return nil, fmt.Errorf("list projects: %w", err)
	}

	for i := range projects {
		if projects[i].Slug == "" {
			projects[i].Slug = slugcodec.ProjectSlug(projects[i].Name)
		}
	}
	sort.SliceStable(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })

	ucLogger.Debug("Projects listed", port.Fields{"count": len(projects)})
	return projects, nil
}
