package dashboard

import (
	"context"

	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/features/project"
	"go-fieldops/internal/features/stock"
	"go-fieldops/internal/features/user"

	"go.mongodb.org/mongo-driver/bson"
)

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type DashboardServiceImpl struct {
	ProjectRepo project.ProjectRepository
	StockRepo   stock.StockRepository
	UserRepo    user.UserRepository
}

func NewDashboardService(projectRepo project.ProjectRepository, stockRepo stock.StockRepository, userRepo user.UserRepository) DashboardService {
	return &DashboardServiceImpl{
		ProjectRepo: projectRepo,
		StockRepo:   stockRepo,
		UserRepo:    userRepo,
	}
}

// Stats recomputes every counter from the live collections. The snapshot is
// not cached; a dashboard load is cheap at this data size.
func (s *DashboardServiceImpl) Stats(ctx context.Context) (*DashboardStats, error) {
	projects, err := s.ProjectRepo.List(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalProjects: len(projects)}
	for i := range projects {
		switch projects[i].Status {
		case project.ProjectInProgress:
			stats.ActiveProjects++
		case project.ProjectCompleted:
			stats.CompletedProjects++
		case project.ProjectPaused:
			stats.PausedProjects++
		}
		for _, t := range projects[i].AllTasks() {
			stats.TotalTasks++
			switch t.Status {
			case project.TaskCompleted:
				stats.CompletedTasks++
			case project.TaskPending, project.TaskInProgress:
				stats.PendingTasks++
			}
		}
	}

	employees, err := s.UserRepo.List(ctx, user.RoleFilter(permission.RoleEmployee))
	if err != nil {
		return nil, err
	}
	stats.TotalEmployees = len(employees)

	low, err := s.StockRepo.ListByStatus(ctx, stock.StatusLow, stock.StatusOutOfStock)
	if err != nil {
		return nil, err
	}
	stats.LowStockItems = len(low)

	return stats, nil
}
