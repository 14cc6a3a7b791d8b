// Package services содержит доменные типы и ошибки сервисов аутентификации и загрузки файлов.
package services

import (
	"errors"
	"time"
)

// Ошибки, связанные с JWT токенами.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// JWTConfig содержит настройки JWT сервиса.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
}

// TokenClaims определяет полезную нагрузку токена: идентификатор и email субъекта.
type TokenClaims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
