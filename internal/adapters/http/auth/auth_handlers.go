// Package auth содержит HTTP обработчики регистрации и входа.
package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"staffdir/internal/app/dto"
	"staffdir/internal/domain/entities"
	domain "staffdir/internal/domain/services"
	"staffdir/internal/ports/api"
	"staffdir/pkg/logger"
)

// Константы для логирования и сообщений ответов.
const (
	LogHandlerSignup = "auth handler: signup"
	LogHandlerLogin  = "auth handler: login"

	ErrorInvalidRequest = "invalid request"

	MsgEmailRegistered    = "Email already registered"
	MsgInvalidCredentials = "Invalid credentials"
	MsgSignupFailed       = "Signup failed"
	MsgLoginFailed        = "Login failed"
)

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	authService api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authService api.AuthUseCase) *Handler {
	return &Handler{
		authService: authService,
	}
}

// Signup обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Signup(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSignup)

	var req dto.SignupRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": ErrorInvalidRequest,
		})
	}

	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrs,
		})
	}

	session, err := h.authService.Signup(requestCtx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": MsgEmailRegistered,
			})
		}
		log.Error(requestCtx, MsgSignupFailed, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgSignupFailed,
			"error":   err.Error(),
		})
	}

	return ctx.Status(http.StatusCreated).JSON(dto.NewAuthResponse(session))
}

// Login обрабатывает запрос на вход пользователя.
// Неизвестный email и неверный пароль дают одинаковый ответ.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": ErrorInvalidRequest,
		})
	}

	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrs,
		})
	}

	session, err := h.authService.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": MsgInvalidCredentials,
			})
		}
		log.Error(requestCtx, MsgLoginFailed, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgLoginFailed,
			"error":   err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewAuthResponse(session))
}
