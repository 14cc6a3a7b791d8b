// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	domain "staffdir/internal/domain/services"
	svc "staffdir/internal/ports/services"
	"staffdir/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
)

const bearerPrefix = "Bearer "

// Ключ Locals для проверенной личности запроса.
const identityKey = "identity"

// NewAuthMiddleware создает промежуточное ПО, проверяющее bearer-токен.
// При успешной проверке claims токена сохраняются в Locals и доступны
// через IdentityFromCtx.
func NewAuthMiddleware(tokenSvc svc.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": ErrorNoAuthHeader,
			})
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": ErrorInvalidTokenFormat,
			})
		}

		claims, err := tokenSvc.VerifyToken(requestCtx, strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": ErrorInvalidToken,
			})
		}

		ctx.Locals(identityKey, claims)

		return ctx.Next()
	}
}

// IdentityFromCtx возвращает проверенную личность запроса, если она установлена.
func IdentityFromCtx(ctx fiber.Ctx) (*domain.TokenClaims, bool) {
	claims, ok := ctx.Locals(identityKey).(*domain.TokenClaims)
	return claims, ok
}
