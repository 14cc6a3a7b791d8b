// Package http содержит компоненты для HTTP сервера.
package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/static"

	"staffdir/internal/adapters/http/auth"
	"staffdir/internal/adapters/http/employees"
	"staffdir/internal/adapters/http/middleware"
	"staffdir/internal/ports/api"
	svc "staffdir/internal/ports/services"
)

// RouterConfig содержит зависимости и настройки маршрутизатора.
type RouterConfig struct {
	AuthService     api.AuthUseCase
	EmployeeService api.EmployeeUseCase
	FileStorage     svc.FileStorage
	TokenService    svc.TokenService
	AllowedOrigin   string
	UploadsDir      string
}

// SetupRouter настраивает порядок middleware и маршрутизацию HTTP сервера.
// Порядок фиксирован: CORS, логирование, восстановление после паники,
// статика /uploads, health, маршруты API, обработчик несуществующих маршрутов.
func SetupRouter(app *fiber.App, cfg RouterConfig) {
	authHandler := auth.NewHandler(cfg.AuthService)
	employeeHandler := employees.NewHandler(cfg.EmployeeService, cfg.FileStorage)

	// Middleware для всех запросов.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowCredentials: true,
	}))
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// Раздача загруженных аватаров.
	app.Use("/uploads", static.New(cfg.UploadsDir))

	apiGroup := app.Group("/api")

	apiGroup.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Auth routes (публичные).
	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)

	// Маршруты справочника сотрудников (требуют авторизации).
	employeeRoutes := apiGroup.Group("/employees")
	employeeRoutes.Use(middleware.NewAuthMiddleware(cfg.TokenService))
	employeeRoutes.Get("/search", employeeHandler.Search)
	employeeRoutes.Post("/", employeeHandler.Create)
	employeeRoutes.Get("/", employeeHandler.List)
	employeeRoutes.Get("/:id", employeeHandler.Get)
	employeeRoutes.Put("/:id", employeeHandler.Update)
	employeeRoutes.Delete("/:id", employeeHandler.Delete)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Route not found",
		})
	})
}

// NewErrorHandler возвращает общий обработчик ошибок, до которого доходят
// ошибки, не обработанные в маршрутах. Текст исходной ошибки попадает в ответ.
func NewErrorHandler() fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		status := fiber.StatusInternalServerError
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}
		return c.Status(status).JSON(fiber.Map{
			"message": "Unexpected error",
			"error":   err.Error(),
		})
	}
}
