// Package main реализует точку входа сервиса справочника сотрудников.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	httpadapter "staffdir/internal/adapters/http"
	pgadapter "staffdir/internal/adapters/postgres"
	"staffdir/internal/adapters/services"
	"staffdir/internal/adapters/storage"
	"staffdir/internal/app"
	"staffdir/internal/config"
	"staffdir/pkg/db/postgres"
	"staffdir/pkg/logger"
	"staffdir/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "STAFFDIR_LOGGER_MODE"
	EnvLoggerLevel = "STAFFDIR_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrApplyMigrations      = "failed to apply database migrations"
	ErrInitFileStorage      = "failed to initialize file storage"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "staff directory service started"
	LogServiceShutdownDone = "staff directory service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

// Путь к файлам миграций относительно рабочего каталога.
const migrationsPath = "file://migrations"

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		database, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), migrationsPath); err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRepo)
		userRepo := pgadapter.NewUserRepository(database.Pool())
		employeeRepo := pgadapter.NewEmployeeRepository(database.Pool())

		log.Info(ctx, LogInitServices)
		passwordService := services.NewBcrypt(cfg.JWT.BCryptCost)
		tokenService := services.NewJWT(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL())

		fileStorage, err := storage.NewDiskStorage(storage.Config{
			Dir:      cfg.Uploads.Dir,
			MaxBytes: cfg.Uploads.GetMaxBytes(),
		})
		if err != nil {
			log.Error(ctx, ErrInitFileStorage, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitUseCases)
		authUseCase := app.NewAuthUseCase(userRepo, passwordService, tokenService)
		employeeUseCase := app.NewEmployeeUseCase(employeeRepo)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			ErrorHandler: httpadapter.NewErrorHandler(),
		})

		httpadapter.SetupRouter(fiberApp, httpadapter.RouterConfig{
			AuthService:     authUseCase,
			EmployeeService: employeeUseCase,
			FileStorage:     fileStorage,
			TokenService:    tokenService,
			AllowedOrigin:   cfg.CORS.AllowedOrigin,
			UploadsDir:      cfg.Uploads.Dir,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие соединений с базой данных.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
