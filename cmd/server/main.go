package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clienttrack/internal/cache"
	"clienttrack/internal/config"
	"clienttrack/internal/db"
	"clienttrack/internal/handler"
	"clienttrack/internal/model"
	"clienttrack/internal/repository"
	"clienttrack/internal/router"
	"clienttrack/internal/service"
	"clienttrack/internal/session"
	"clienttrack/internal/view"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	e := echo.New()

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal("template init", zap.Error(err))
	}
	e.Renderer = renderer

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logger.Info("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Project{},
			&model.Client{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logger.Warn("drop table failed (may not exist)", zap.Error(err))
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.Project{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	clientRepo := repository.NewClientRepository(gormDB, logger)
	projectRepo := repository.NewProjectRepository(gormDB, logger)

	// Initialize session stores
	sessions := session.NewStore(cacheClient)
	flashes := session.NewFlashStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions)
	clientService := service.NewClientService(clientRepo, cacheClient)
	projectService := service.NewProjectService(clientRepo, projectRepo, cacheClient)
	dashboardService := service.NewDashboardService(projectRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.CookieName)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, clientService, flashes)
	clientHandler := handler.NewClientHandler(clientService, projectService, flashes)
	projectHandler := handler.NewProjectHandler(clientService, projectService, flashes)

	// Register routes
	router.Register(
		e,
		cfg,
		sessions,
		authHandler,
		dashboardHandler,
		clientHandler,
		projectHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
