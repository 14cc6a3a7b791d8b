// Package app содержит реализации сценариев использования.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"staffdir/internal/app/dto"
	"staffdir/internal/domain/entities"
	"staffdir/internal/domain/services"
	"staffdir/internal/ports/api"
	"staffdir/internal/ports/repositories"
	svc "staffdir/internal/ports/services"
	"staffdir/pkg/logger"
)

const (
	methodSignup = "Signup"
	methodLogin  = "Login"

	msgStartSignup        = "starting user signup"
	msgInvalidEmailFormat = "invalid email format"
	msgEmptyName          = "empty name provided"
	msgShortPassword      = "password is too short"
	msgEmailExists        = "user with this email already exists"
	msgUserCreated        = "user created successfully"
	msgTokenIssuedSignup  = "token issued for new user"
	msgLoginAttempt       = "login attempt"
	msgLoginNonExistent   = "login attempt with non-existent email"
	msgInvalidPassword    = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrIssueToken        = "failed to issue token"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"

	errCtxValidatingEmail    = "validating email"
	errCtxValidatingName     = "validating name"
	errCtxValidatingPassword = "validating password"
	errCtxCheckingUser       = "checking existing user"
	errCtxEmailRegistered    = "email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxIssuingToken       = "issuing token"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
)

// AuthUseCaseImpl реализует интерфейс api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сценариев аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Signup создает нового пользователя и выпускает для него токен.
// Email нормализуется к нижнему регистру до проверки существования.
func (a *AuthUseCaseImpl) Signup(ctx context.Context, name, email, password string) (*services.AuthSession, error) {
	email = dto.NormalizeEmail(email)
	log := logger.Log(ctx).With(zap.String("method", methodSignup), zap.String("email", email))
	log.Debug(ctx, msgStartSignup)

	if name == "" {
		log.Debug(ctx, msgEmptyName)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyName)
	}
	if !dto.ValidEmail(email) {
		log.Debug(ctx, msgInvalidEmailFormat)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, entities.ErrInvalidEmail)
	}
	if len(password) < services.MinPasswordLength {
		log.Debug(ctx, msgShortPassword)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrShortPassword)
	}

	// Проверка и вставка не атомарны: гонка одновременных регистраций
	// перехватывается уникальным ограничением на уровне хранилища.
	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailTaken)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailTaken)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.String("userID", createdUser.ID))

	session, err := a.issueSession(ctx, createdUser)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err), zap.String("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	log.Info(ctx, msgTokenIssuedSignup, zap.String("userID", createdUser.ID))
	return session, nil
}

// Login аутентифицирует пользователя по email и паролю.
// Неизвестный email и неверный пароль возвращают одну и ту же ошибку.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.AuthSession, error) {
	email = dto.NormalizeEmail(email)
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPassword, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	session, err := a.issueSession(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return session, nil
}

func (a *AuthUseCaseImpl) issueSession(ctx context.Context, user *entities.User) (*services.AuthSession, error) {
	token, expiresAt, err := a.tokenSvc.IssueToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	return &services.AuthSession{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
