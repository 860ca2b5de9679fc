package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/themis-api/internal/config"
	"github.com/themis-api/internal/database"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/handler"
	"github.com/themis-api/internal/logging"
	"github.com/themis-api/internal/middleware"
	"github.com/themis-api/internal/repository"
	"github.com/themis-api/internal/service"
	"github.com/themis-api/internal/storage"
)

func main() {
	// Загрузка конфигурации
	cfg := config.Load()

	// Инициализация логгера
	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	// Подключение к БД
	db, err := database.Connect(cfg.Database, 30)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Запуск миграций
	if err := database.Migrate(sqlDB); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to init file storage", slog.Any("error", err))
		os.Exit(1)
	}
	media := storage.NewURLResolver(cfg.Media)

	var tokens service.TokenStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		tokens = service.NewRedisTokenStore(rdb)
	} else {
		logger.Warn("REDIS_ADDR is empty, refresh tokens cannot be revoked")
	}

	// Инициализация репозиториев
	areaRepo := repository.NewAreaRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Инициализация сервисов
	authService := service.NewAuthService(empRepo, tokens, cfg.JWT, media)
	areaService := service.NewAreaService(areaRepo, empRepo)
	deptService := service.NewDepartmentService(deptRepo, areaRepo)
	empService := service.NewEmployeeService(empRepo, projectRepo, media)
	projectService := service.NewProjectService(projectRepo, areaRepo, teamRepo, media)
	teamService := service.NewTeamService(teamRepo, empRepo, media)
	taskService := service.NewTaskService(taskRepo, projectRepo, empRepo)
	uploadService := service.NewUploadService(store, media, empRepo, projectRepo, logger)

	// Инициализация хендлеров
	v := handler.NewValidator()
	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(authService, v, logger),
		Employees:   handler.NewEmployeeHandler(empService, media, v, logger),
		Uploads:     handler.NewUploadHandler(uploadService, v, logger),
		Projects:    handler.NewProjectHandler(projectService, taskService, media, v, logger),
		Teams:       handler.NewTeamHandler(teamService, v, logger),
		Tasks:       handler.NewTaskHandler(taskService, v, logger),
		Areas:       handler.NewAreaHandler(areaService, v, logger),
		Departments: handler.NewDepartmentHandler(deptService, v, logger),
		Positions: handler.NewCatalogHandler[domain.Position](repository.NewPositionRepository(db), "position",
			func(p *domain.Position, id int64) { p.ID = id }, v, logger),
		PositionLevels: handler.NewCatalogHandler[domain.PositionLevel](repository.NewPositionLevelRepository(db), "position level",
			func(p *domain.PositionLevel, id int64) { p.ID = id }, v, logger),
		Degrees: handler.NewCatalogHandler[domain.Degree](repository.NewDegreeRepository(db), "degree",
			func(d *domain.Degree, id int64) { d.ID = id }, v, logger),
		ProjectTypes: handler.NewCatalogHandler[domain.ProjectType](repository.NewProjectTypeRepository(db), "project type",
			func(t *domain.ProjectType, id int64) { t.ID = id }, v, logger),
		ProjectStatuses: handler.NewCatalogHandler[domain.ProjectStatus](repository.NewProjectStatusRepository(db), "project status",
			func(s *domain.ProjectStatus, id int64) { s.ID = id }, v, logger),
		Customers: handler.NewCatalogHandler[domain.Customer](repository.NewCustomerRepository(db), "customer",
			func(c *domain.Customer, id int64) { c.ID = id }, v, logger),
	}

	// Настройка роутера
	router := handler.NewRouter(handlers, middleware.Auth(authService, logger), logger)
	if local, ok := store.(*storage.LocalStorage); ok {
		router.MountFiles(media.Prefix(), local.Handler())
	}
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting", slog.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}
