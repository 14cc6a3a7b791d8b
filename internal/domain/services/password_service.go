package services

import (
	"errors"
	"time"
)

// Ошибки, связанные с паролями.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// MinPasswordLength - минимальная длина пароля.
const MinPasswordLength = 6

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthSession представляет результат успешной регистрации или входа.
type AuthSession struct {
	UserID    string
	Name      string
	Email     string
	Token     string
	ExpiresAt time.Time
}
