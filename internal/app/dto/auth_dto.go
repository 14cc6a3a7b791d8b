// Package dto содержит объекты передачи данных HTTP-слоя и их валидацию.
package dto

import (
	"regexp"
	"strings"

	"staffdir/internal/domain/services"
)

// Сообщения валидации аутентификации.
const (
	MsgNameRequired     = "Name is required"
	MsgValidEmail       = "Valid email is required"
	MsgPasswordLength   = "Password must be at least 6 characters"
	MsgPasswordRequired = "Password is required"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// FieldError описывает одну ошибку валидации поля запроса.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidEmail сообщает, имеет ли строка синтаксически допустимый вид email.
func ValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// NormalizeEmail приводит email к каноническому виду для записи и поиска.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignupRequest содержит данные для регистрации пользователя.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate возвращает список ошибок валидации по полям.
func (r *SignupRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: MsgNameRequired})
	}
	if !ValidEmail(NormalizeEmail(r.Email)) {
		errs = append(errs, FieldError{Field: "email", Message: MsgValidEmail})
	}
	if len(r.Password) < services.MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: MsgPasswordLength})
	}
	return errs
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate возвращает список ошибок валидации по полям.
func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError
	if !ValidEmail(NormalizeEmail(r.Email)) {
		errs = append(errs, FieldError{Field: "email", Message: MsgValidEmail})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: MsgPasswordRequired})
	}
	return errs
}

// AuthUser содержит публичные поля пользователя в ответах аутентификации.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse содержит токен и данные пользователя.
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// NewAuthResponse формирует ответ аутентификации из сессии.
func NewAuthResponse(session *services.AuthSession) AuthResponse {
	return AuthResponse{
		Token: session.Token,
		User: AuthUser{
			ID:    session.UserID,
			Name:  session.Name,
			Email: session.Email,
		},
	}
}
