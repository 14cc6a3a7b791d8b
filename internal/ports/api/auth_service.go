// Package api определяет входные порты приложения.
package api

import (
	"context"

	"staffdir/internal/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Signup(ctx context.Context, name, email, password string) (*services.AuthSession, error)

	Login(ctx context.Context, email, password string) (*services.AuthSession, error)
}
