package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	domain "staffdir/internal/domain/services"
	svc "staffdir/internal/ports/services"
	"staffdir/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssueToken  = "IssueToken"
	methodVerifyToken = "VerifyToken"

	msgIssuingToken   = "issuing token"
	msgVerifyingToken = "verifying token"
	msgTokenIssued    = "token issued successfully"
	msgTokenVerified  = "token verified successfully"
	msgInvalidToken   = "invalid token format"
	msgTokenExpired   = "token has expired"

	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken      = "error parsing token"
	errCtxIssuingToken   = "issuing token"
	errCtxVerifyingToken = "verifying token"
)

// ErrInvalidAlgorithm представляет ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
// Имена полей id и email соответствуют полезной нагрузке, которую ожидает клиент.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	config domain.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, tokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: domain.JWTConfig{
			SecretKey: []byte(secretKey),
			TokenTTL:  tokenTTL,
		},
	}
}

// IssueToken подписывает токен с полезной нагрузкой {id, email}.
func (s *ServiceJWT) IssueToken(ctx context.Context, userID, email string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssueToken),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgIssuingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxIssuingToken, domain.ErrGeneratingJWTToken)
	}

	now := time.Now()
	expiresAt := now.Add(s.config.TokenTTL)

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, domain.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// VerifyToken проверяет подпись и срок действия токена и возвращает его claims.
func (s *ServiceJWT) VerifyToken(ctx context.Context, tokenString string) (*domain.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerifyToken))
	log.Debug(ctx, msgVerifyingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	})

	if err != nil {
		if strings.Contains(err.Error(), "token is expired") {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, domain.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxVerifyingToken, domain.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, domain.ErrInvalidJWTToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, "id claim is empty")
		return nil, fmt.Errorf("%s: %w: empty id", errCtxVerifyingToken, domain.ErrInvalidJWTToken)
	}

	var issuedAt, expiresAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	log.Debug(ctx, msgTokenVerified, zap.String("userID", claims.UserID))
	return &domain.TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
