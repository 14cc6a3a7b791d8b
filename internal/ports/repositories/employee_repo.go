package repositories

import (
	"context"

	"staffdir/internal/domain/entities"
)

// EmployeeRepository определяет интерфейс для операций с записями сотрудников.
// Списки всегда возвращаются в порядке убывания времени создания.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entities.Employee) (*entities.Employee, error)

	FindByID(ctx context.Context, id string) (*entities.Employee, error)

	FindAll(ctx context.Context) ([]*entities.Employee, error)

	Search(ctx context.Context, filter entities.EmployeeFilter) ([]*entities.Employee, error)

	Update(ctx context.Context, id string, update entities.EmployeeUpdate) (*entities.Employee, error)

	Delete(ctx context.Context, id string) error
}
