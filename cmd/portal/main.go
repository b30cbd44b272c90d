package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ms1708/academy-portal/internal/api/http"
	"github.com/ms1708/academy-portal/internal/api/http/handlers"
	"github.com/ms1708/academy-portal/internal/backend"
	"github.com/ms1708/academy-portal/internal/config"
	"github.com/ms1708/academy-portal/internal/draft"
	"github.com/ms1708/academy-portal/internal/errorlog"
	"github.com/ms1708/academy-portal/internal/events"
	"github.com/ms1708/academy-portal/internal/observability"
	"github.com/ms1708/academy-portal/internal/session"
	"github.com/ms1708/academy-portal/internal/storage"
	"github.com/ms1708/academy-portal/internal/wizard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	store, closeStore, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}
	defer closeStore()

	dispatcher := events.NewInMemoryDispatcher()
	errLog := errorlog.New(store, cfg.ErrorLog, logger)

	gateway := backend.NewClient(cfg.Backend, logger)
	sessions := session.NewStore(gateway, store, dispatcher, errLog, logger)

	applicationDrafts := draft.NewStore(storage.KeyApplicationData, store, logger)
	onboardingDrafts := draft.NewStore(storage.KeyOnboardingData, store, logger)
	application := wizard.NewApplication(applicationDrafts, gateway, dispatcher, errLog)
	onboarding := wizard.NewOnboarding(onboardingDrafts, gateway, dispatcher, errLog)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version),
		Auth:        handlers.NewAuthHandler(sessions),
		Application: handlers.NewApplicationHandler(application),
		Onboarding:  handlers.NewOnboardingHandler(onboarding),
		Logs:        handlers.NewLogsHandler(errLog),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newStore(cfg *config.Config, logger *zap.Logger) (storage.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		rs := storage.NewRedisStore(cfg.Redis, logger)
		return rs, rs.Close, nil
	case config.StorageDriverMemory:
		return storage.NewMemoryStore(), func() {}, nil
	default:
		fs, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
