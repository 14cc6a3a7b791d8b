package api

import (
	"context"

	"staffdir/internal/domain/entities"
)

// EmployeeUseCase определяет основной порт для операций со справочником сотрудников.
type EmployeeUseCase interface {
	Create(ctx context.Context, employee *entities.Employee) (*entities.Employee, error)

	Get(ctx context.Context, id string) (*entities.Employee, error)

	List(ctx context.Context) ([]*entities.Employee, error)

	Search(ctx context.Context, filter entities.EmployeeFilter) ([]*entities.Employee, error)

	Update(ctx context.Context, id string, update entities.EmployeeUpdate) (*entities.Employee, error)

	Delete(ctx context.Context, id string) error
}
