package main

import (
	"context"
	"time"

	"go-fieldops/internal/config"
	"go-fieldops/internal/database"
	"go-fieldops/internal/features/automation"
	"go-fieldops/internal/features/message"
	"go-fieldops/internal/features/notification"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/features/project"
	"go-fieldops/internal/features/stock"
	"go-fieldops/internal/features/user"
	"go-fieldops/internal/logger"
	"go-fieldops/internal/realtime"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func seedUsers(ctx context.Context, repo user.UserRepository, log *zap.Logger) map[string]string {
	ids := make(map[string]string)

	users := []struct {
		name  string
		email string
		role  permission.Role
	}{
		{"Dev Admin", "dev@fieldops.local", permission.RoleDeveloper},
		{"Maya Ortiz", "maya@fieldops.local", permission.RoleManager},
		{"Jon Reyes", "jon@fieldops.local", permission.RoleEmployee},
	}

	for _, u := range users {
		if existing, err := repo.FindByEmail(ctx, u.email); err == nil {
			log.Info("user exists, skipping", zap.String("email", u.email))
			ids[string(u.role)] = existing.ID.Hex()
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("failed to hash password", zap.Error(err))
		}

		now := time.Now()
		doc := &user.User{
			Name:        u.name,
			Email:       u.email,
			Password:    string(hash),
			Role:        u.role,
			Permissions: permission.DefaultPermissions(u.role),
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Create(ctx, doc); err != nil {
			log.Fatal("failed to seed user", zap.String("email", u.email), zap.Error(err))
		}
		ids[string(u.role)] = doc.ID.Hex()
		log.Info("user seeded", zap.String("email", u.email), zap.String("role", string(u.role)))
	}

	return ids
}

func seedStock(ctx context.Context, repo stock.StockRepository, log *zap.Logger) {
	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatal("failed to list stock", zap.Error(err))
	}
	if len(existing) > 0 {
		log.Info("stock items exist, skipping")
		return
	}

	items := []stock.StockItem{
		{Name: "Cement bags", Quantity: 120, MinQuantity: 30, Unit: "bags", Category: "materials"},
		{Name: "Safety helmets", Quantity: 8, MinQuantity: 10, Unit: "pcs", Category: "safety"},
		{Name: "Copper wire 2.5mm", Quantity: 0, MinQuantity: 5, Unit: "rolls", Category: "electrical"},
	}
	for i := range items {
		items[i].Status = stock.DeriveStatus(items[i].Quantity, items[i].MinQuantity)
		items[i].LastUpdated = time.Now()
		if err := repo.Create(ctx, &items[i]); err != nil {
			log.Fatal("failed to seed stock item", zap.String("name", items[i].Name), zap.Error(err))
		}
	}
	log.Info("stock seeded", zap.Int("items", len(items)))
}

func seedProject(ctx context.Context, repo project.ProjectRepository, employeeID string, log *zap.Logger) {
	existing, err := repo.List(ctx, bson.M{})
	if err != nil {
		log.Fatal("failed to list projects", zap.Error(err))
	}
	if len(existing) > 0 {
		log.Info("projects exist, skipping")
		return
	}

	now := time.Now()
	projectID := primitive.NewObjectID()
	foundations := project.WorkflowStage{
		ID:    uuid.NewString(),
		Name:  "Foundations",
		Order: 1,
		Tasks: []project.Task{},
	}
	framing := project.WorkflowStage{
		ID:    uuid.NewString(),
		Name:  "Framing",
		Order: 2,
		Tasks: []project.Task{},
	}

	p := &project.Project{
		ID:        projectID,
		Name:      "Riverside warehouse",
		Number:    "P-2026-001",
		Location:  project.Location{Address: "14 Riverside Dr", Latitude: 41.39, Longitude: 2.17},
		StartDate: now,
		Status:    project.ProjectInProgress,
		Workflow:  []project.WorkflowStage{foundations, framing},
		CreatedAt: now,
		UpdatedAt: now,
	}

	p.Workflow[0].Tasks = append(p.Workflow[0].Tasks, project.Task{
		ID:          uuid.NewString(),
		Number:      1,
		Description: "Excavate and pour footings",
		Status:      project.TaskInProgress,
		AssignedTo:  []string{employeeID},
		ProjectID:   projectID.Hex(),
		StageID:     p.Workflow[0].ID,
		Comments:    []project.TaskComment{},
		Reports:     []project.TaskReport{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	if err := repo.Create(ctx, p); err != nil {
		log.Fatal("failed to seed project", zap.Error(err))
	}
	log.Info("project seeded", zap.String("name", p.Name))
}

func seedRules(ctx context.Context, repo automation.RuleRepository, log *zap.Logger) {
	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatal("failed to list automation rules", zap.Error(err))
	}
	if len(existing) > 0 {
		log.Info("automation rules exist, skipping")
		return
	}

	now := time.Now()
	rule := &automation.Rule{
		Name:  "Announce completed tasks",
		Event: automation.EventTaskStatusChanged,
		Script: `if payload.status == "completed" {
	notify_title = "Task completed"
	notify_message = "Task #" + string(payload.number) + " is done"
}`,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, rule); err != nil {
		log.Fatal("failed to seed automation rule", zap.Error(err))
	}
	log.Info("automation rule seeded", zap.String("name", rule.Name))
}

// Seed fills an empty database with a demo dataset.
func Seed(
	lc fx.Lifecycle,
	userRepo user.UserRepository,
	projectRepo project.ProjectRepository,
	stockRepo stock.StockRepository,
	ruleRepo automation.RuleRepository,
	log *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						log.Error("failed to shutdown", zap.Error(err))
					}
				}()

				ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				defer cancel()

				log.Info("seeding database")

				if err := userRepo.EnsureIndexes(ctx); err != nil {
					log.Warn("failed to ensure user indexes", zap.Error(err))
				}

				ids := seedUsers(ctx, userRepo, log)
				seedStock(ctx, stockRepo, log)
				seedProject(ctx, projectRepo, ids[string(permission.RoleEmployee)], log)
				seedRules(ctx, ruleRepo, log)

				log.Info("seeding finished")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			realtime.NewHub,

			user.NewUserRepository,
			project.NewProjectRepository,
			stock.NewStockRepository,
			message.NewMessageRepository,
			notification.NewNotificationRepository,
			automation.NewRuleRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
