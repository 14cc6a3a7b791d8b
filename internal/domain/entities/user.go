// Package entities содержит основные сущности домена справочника сотрудников.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID    = errors.New("user ID cannot be empty")
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrShortPassword  = errors.New("password must be at least 6 characters")
	ErrEmptyPassword  = errors.New("password is required")
)

// User представляет учетную запись, созданную при регистрации.
// PasswordHash никогда не сериализуется в ответах API.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
