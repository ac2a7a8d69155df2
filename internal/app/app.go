package app

import (
	"context"
	"net/http"
	"time"

	"github.com/iwtcode/stationService/internal/adapters/handlers"
	"github.com/iwtcode/stationService/internal/adapters/repositories/database"
	"github.com/iwtcode/stationService/internal/config"
	"github.com/iwtcode/stationService/internal/interfaces"
	"github.com/iwtcode/stationService/internal/middleware/logging"
	"github.com/iwtcode/stationService/internal/middleware/swagger"
	"github.com/iwtcode/stationService/internal/services/kafka"
	"github.com/iwtcode/stationService/internal/services/session_service"
	"github.com/iwtcode/stationService/internal/usecases"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		RepositoryModule,
		ProducerModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
		// Invoke-функции для запуска фоновых задач и хуков жизненного цикла
		fx.Invoke(InvokeRestoreSessions),
		fx.Invoke(InvokeSeedStations),
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	return logging.NewLogger(loggerCfg, "StationServiceApp")
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

var RepositoryModule = fx.Module("repository_module",
	fx.Provide(database.NewRepository),
)

var ProducerModule = fx.Module("producer_module",
	fx.Provide(kafka.NewKafkaProducer),
)

var ServiceModule = fx.Module("service_module",
	fx.Provide(session_service.NewSessionService),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
)

func NewSwaggerConfig() *swagger.Config {
	return &swagger.Config{
		Enabled: true,
		Path:    "/swagger",
	}
}

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		NewSwaggerConfig,
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokeRestoreSessions восстанавливает сохраненные сессии при старте.
// Подключения не открываются автоматически: записи возвращаются в пул
// в состоянии "disconnected", а соединение устанавливается по запросу.
func InvokeRestoreSessions(lc fx.Lifecycle, svc interfaces.SessionService, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Restoring sessions from the database...")
			if err := svc.RestoreSessions(); err != nil {
				logger.Error("Failed to restore sessions from DB", "error", err)
				return nil // Не фатально, просто продолжаем
			}
			return nil
		},
	})
}

// InvokeSeedStations загружает стартовый список станций из YAML-файла,
// если он задан переменной окружения STATIONS_SEED_FILE.
func InvokeSeedStations(lc fx.Lifecycle, cfg *config.AppConfig, svc interfaces.SessionService, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.SeedFile == "" {
				return nil
			}
			logger.Info("Seeding stations from file", "path", cfg.SeedFile)
			seed, err := config.LoadSeedFile(cfg.SeedFile)
			if err != nil {
				logger.Error("Failed to load stations seed file", "path", cfg.SeedFile, "error", err)
				return nil // Не фатально, просто продолжаем
			}
			if err := svc.SeedStations(seed.Stations); err != nil {
				logger.Error("Failed to seed stations", "error", err)
			}
			return nil
		},
	})
}

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
