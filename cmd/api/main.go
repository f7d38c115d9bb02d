package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/internal/database"
	"go-fieldops/internal/features/auth"
	"go-fieldops/internal/features/automation"
	"go-fieldops/internal/features/dashboard"
	"go-fieldops/internal/features/export"
	"go-fieldops/internal/features/message"
	"go-fieldops/internal/features/notification"
	"go-fieldops/internal/features/project"
	"go-fieldops/internal/features/stock"
	"go-fieldops/internal/features/stockwatch"
	"go-fieldops/internal/features/system"
	"go-fieldops/internal/features/user"
	"go-fieldops/internal/logger"
	"go-fieldops/internal/middleware"
	"go-fieldops/internal/realtime"

	_ "go-fieldops/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags the constructor so Fx adds it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer starts Fiber in a goroutine and shuts it down when the app
// exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures database indexes exist shortly after startup.
func InitializeIndexes(lc fx.Lifecycle, userRepo user.UserRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := userRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure user indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

// BootstrapAdmin seeds the first developer account on an empty directory.
func BootstrapAdmin(lc fx.Lifecycle, authService auth.AuthService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return authService.Bootstrap(ctx)
		},
	})
}

// RunStockWatcher ties the scheduled inventory scan to the app lifecycle.
func RunStockWatcher(lc fx.Lifecycle, watcher stockwatch.StockWatcher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return watcher.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return watcher.Stop()
		},
	})
}

// @title           FieldOps API
// @version         1.0
// @description     Field operations backend: projects, workflow tasks, stock and messaging.

// @host            localhost:8000
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Realtime push hub
			realtime.NewHub,

			// Initialize Repository
			user.NewUserRepository,
			project.NewProjectRepository,
			stock.NewStockRepository,
			message.NewMessageRepository,
			notification.NewNotificationRepository,
			automation.NewRuleRepository,

			// Initialize Service
			user.NewUserService,
			auth.NewAuthService,
			notification.NewNotificationService,
			automation.NewAutomationService,
			stock.NewStockService,
			project.NewProjectService,
			message.NewMessageService,
			dashboard.NewDashboardService,
			export.NewExportService,
			stockwatch.NewStockWatcher,

			// Interface Adapters
			func(s user.UserService) middleware.PermissionSource { return s },
			func(s automation.AutomationService) automation.Dispatcher { return s },

			// Initialize Controller
			user.NewUserController,
			auth.NewAuthController,
			project.NewProjectController,
			stock.NewStockController,
			message.NewMessageController,
			notification.NewNotificationController,
			automation.NewAutomationController,
			dashboard.NewDashboardController,
			export.NewExportController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(project.NewProjectApi),
			AsRoute(stock.NewStockApi),
			AsRoute(message.NewMessageApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(automation.NewAutomationApi),
			AsRoute(dashboard.NewDashboardApi),
			AsRoute(export.NewExportApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeIndexes,
			BootstrapAdmin,
			RunStockWatcher,
		),
	)

	app.Run()
}
