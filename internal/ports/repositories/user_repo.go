// Package repositories определяет порты доступа к хранилищу данных.
package repositories

import (
	"context"

	"staffdir/internal/domain/entities"
)

// UserRepository определяет интерфейс для операций с учетными записями.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
