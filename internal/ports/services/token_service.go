package services

import (
	"context"
	"time"

	domain "staffdir/internal/domain/services"
)

// TokenService определяет интерфейс для выпуска и проверки bearer-токенов.
type TokenService interface {
	IssueToken(ctx context.Context, userID, email string) (string, time.Time, error)

	VerifyToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}
