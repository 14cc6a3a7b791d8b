package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"staffdir/internal/domain/entities"
	"staffdir/internal/ports/repositories"
	"staffdir/pkg/logger"
)

const employeeColumns = `id, first_name, last_name, email, position, department,
        salary, date_of_joining, avatar, created_at, updated_at`

// EmployeeRepository реализует интерфейс repositories.EmployeeRepository для работы с Postgres.
type EmployeeRepository struct {
	pool PgxPoolInterface
}

// NewEmployeeRepository создает новый экземпляр репозитория сотрудников.
func NewEmployeeRepository(pool PgxPoolInterface) repositories.EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func scanEmployee(row pgx.Row) (*entities.Employee, error) {
	var e entities.Employee
	err := row.Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Position,
		&e.Department,
		&e.Salary,
		&e.DateOfJoining,
		&e.Avatar,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Идентификаторы приходят из URL, поэтому значение, не являющееся UUID,
// трактуется как отсутствующая запись, а не как ошибка хранилища.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation
}

// Create сохраняет новую запись сотрудника.
func (r *EmployeeRepository) Create(ctx context.Context, employee *entities.Employee) (*entities.Employee, error) {
	log := logger.Log(ctx).With(zap.String("repository", "employee"), zap.String("method", "Create"))

	query := `
        INSERT INTO employees (first_name, last_name, email, position, department, salary, date_of_joining, avatar)
        VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()), $8)
        RETURNING ` + employeeColumns

	var dateOfJoining interface{}
	if !employee.DateOfJoining.IsZero() {
		dateOfJoining = employee.DateOfJoining
	}

	created, err := scanEmployee(r.pool.QueryRow(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Position,
		employee.Department,
		employee.Salary,
		dateOfJoining,
		employee.Avatar,
	))
	if err != nil {
		log.Error(ctx, "error creating employee", zap.Error(err))
		return nil, fmt.Errorf("error creating employee: %w", err)
	}

	return created, nil
}

// FindByID находит запись сотрудника по ID.
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*entities.Employee, error) {
	log := logger.Log(ctx).With(zap.String("repository", "employee"), zap.String("method", "FindByID"))

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	employee, err := scanEmployee(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			log.Debug(ctx, "employee not found", zap.String("id", id))
			return nil, entities.ErrEmployeeNotFound
		}
		log.Error(ctx, "error finding employee by id", zap.Error(err))
		return nil, fmt.Errorf("error querying employee by id: %w", err)
	}

	return employee, nil
}

// FindAll возвращает все записи сотрудников, новые первыми.
func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*entities.Employee, error) {
	return r.Search(ctx, entities.EmployeeFilter{})
}

// Search возвращает записи, удовлетворяющие фильтру, новые первыми.
// Фильтры применяются как регистронезависимые подстроки и объединяются по И.
func (r *EmployeeRepository) Search(ctx context.Context, filter entities.EmployeeFilter) ([]*entities.Employee, error) {
	log := logger.Log(ctx).With(zap.String("repository", "employee"), zap.String("method", "Search"))

	query := `
        SELECT ` + employeeColumns + `
        FROM employees
        WHERE ($1 = '' OR department ILIKE '%' || $1 || '%')
          AND ($2 = '' OR position ILIKE '%' || $2 || '%')
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, filter.Department, filter.Position)
	if err != nil {
		log.Error(ctx, "error searching employees", zap.Error(err))
		return nil, fmt.Errorf("error searching employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*entities.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			log.Error(ctx, "error scanning employee row", zap.Error(err))
			return nil, fmt.Errorf("error scanning employee row: %w", err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating employee rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}

	return employees, nil
}

// Update применяет частичное обновление: nil-поля сохраняют прежние значения.
func (r *EmployeeRepository) Update(ctx context.Context, id string, update entities.EmployeeUpdate) (*entities.Employee, error) {
	log := logger.Log(ctx).With(zap.String("repository", "employee"), zap.String("method", "Update"))

	query := `
        UPDATE employees
        SET first_name = COALESCE($2, first_name),
            last_name = COALESCE($3, last_name),
            email = COALESCE($4, email),
            position = COALESCE($5, position),
            department = COALESCE($6, department),
            salary = COALESCE($7, salary),
            date_of_joining = COALESCE($8, date_of_joining),
            avatar = COALESCE($9, avatar),
            updated_at = now()
        WHERE id = $1
        RETURNING ` + employeeColumns

	updated, err := scanEmployee(r.pool.QueryRow(ctx, query,
		id,
		update.FirstName,
		update.LastName,
		update.Email,
		update.Position,
		update.Department,
		update.Salary,
		update.DateOfJoining,
		update.Avatar,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			log.Debug(ctx, "employee not found for update", zap.String("id", id))
			return nil, entities.ErrEmployeeNotFound
		}
		log.Error(ctx, "error updating employee", zap.Error(err))
		return nil, fmt.Errorf("error updating employee: %w", err)
	}

	return updated, nil
}

// Delete удаляет запись сотрудника по ID. Файл аватара при этом не удаляется.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "employee"), zap.String("method", "Delete"))

	query := `DELETE FROM employees WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		if isInvalidID(err) {
			log.Debug(ctx, "employee not found for deletion", zap.String("id", id))
			return entities.ErrEmployeeNotFound
		}
		log.Error(ctx, "error deleting employee", zap.Error(err))
		return fmt.Errorf("error deleting employee: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "employee not found for deletion", zap.String("id", id))
		return entities.ErrEmployeeNotFound
	}

	return nil
}
