package app

import (
	"context"
	"fmt"
	"net/http"
	"taskManager/internal/config"
	"taskManager/internal/handlers"
	"taskManager/internal/logger"
	appmw "taskManager/internal/middleware"
	"taskManager/internal/repository/inmemory"
	mongorepo "taskManager/internal/repository/mongo"
	pgrepo "taskManager/internal/repository/postgres"
	"taskManager/internal/service"
	"taskManager/internal/worker"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const (
	connectAttempts = 5
	connectBackoff  = time.Second * 2
)

type App struct {
	cfg       *config.Config
	server    *http.Server
	shutdowns []func(context.Context)
}

func New(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// Init собирает хранилище, сервис и маршруты.
// Подключение к базе повторяется с паузой: при старте всей связки
// контейнер базы может подняться позже приложения
func (a *App) Init(ctx context.Context) error {
	taskRepo, userRepo, err := a.initStorage(ctx)
	if err != nil {
		return err
	}

	taskService := service.NewTaskService(taskRepo, userRepo)
	taskHandlers := handlers.NewTaskHandlers(taskService)

	router := chi.NewRouter()
	router.Use(appmw.RequestID)
	router.Use(appmw.Logging)
	router.Use(appmw.Recover)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	router.Get("/", taskHandlers.Root)
	router.Get("/health", taskHandlers.HealthCheck)

	router.Route("/api/tasks", func(r chi.Router) {
		r.Post("/create", taskHandlers.CreateTask)
		r.Get("/", taskHandlers.GetAllTasks)
		r.Get("/user/{userId}", taskHandlers.GetTasksByUser)
		r.Get("/{id}", taskHandlers.GetTaskByID)
		r.Put("/{id}", taskHandlers.UpdateTask)
		r.Delete("/{id}", taskHandlers.DeleteTask)
	})

	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.MethodNotAllowed)

	a.server = &http.Server{
		Addr:         a.cfg.ServerAddr(),
		Handler:      router,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Minute,
	}

	healthWorker := worker.NewHealthWorker(taskRepo, time.Second*30)
	go healthWorker.Run(ctx)

	return nil
}

func (a *App) initStorage(ctx context.Context) (service.TaskRepository, service.UserRepository, error) {
	switch a.cfg.Repository.Type {
	case "postgres":
		storage, err := connectWithRetry(ctx, "PostgreSQL", func(ctx context.Context) (*pgrepo.Storage, error) {
			return pgrepo.New(ctx, a.cfg.Database.PostgresURL)
		})
		if err != nil {
			return nil, nil, err
		}
		if err := storage.Migrate(ctx); err != nil {
			storage.Close()
			return nil, nil, err
		}
		a.shutdowns = append(a.shutdowns, func(context.Context) { storage.Close() })
		return storage, storage, nil

	case "mongo":
		storage, err := connectWithRetry(ctx, "MongoDB", func(ctx context.Context) (*mongorepo.Storage, error) {
			return mongorepo.New(ctx, a.cfg.Database.MongoURI, a.cfg.Database.MongoDatabase)
		})
		if err != nil {
			return nil, nil, err
		}
		if err := storage.EnsureIndexes(ctx); err != nil {
			storage.Close(ctx)
			return nil, nil, err
		}
		a.shutdowns = append(a.shutdowns, func(ctx context.Context) { storage.Close(ctx) })
		return storage, storage, nil

	case "inmemory":
		storage := inmemory.NewStorage()
		return storage, storage, nil

	default:
		return nil, nil, fmt.Errorf("неизвестный тип хранилища %q", a.cfg.Repository.Type)
	}
}

func connectWithRetry[T any](ctx context.Context, name string, connect func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		storage, err := connect(ctx)
		if err == nil {
			return storage, nil
		}
		lastErr = err

		logger.Warn("App: Хранилище недоступно, повтор подключения",
			zap.String("storage", name),
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}

	return zero, fmt.Errorf("подключение к %s после %d попыток: %w", name, connectAttempts, lastErr)
}

func (a *App) Run() error {
	logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("запуск сервера: %w", err)
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	logger.Info("App: Остановка сервера")

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("остановка сервера: %w", err)
	}

	for _, shutdown := range a.shutdowns {
		shutdown(ctx)
	}

	logger.Info("App: Сервер остановлен")
	return nil
}
