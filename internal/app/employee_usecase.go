package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"staffdir/internal/domain/entities"
	"staffdir/internal/ports/api"
	"staffdir/internal/ports/repositories"
	"staffdir/pkg/logger"
)

const (
	methodCreateEmployee = "CreateEmployee"
	methodGetEmployee    = "GetEmployee"
	methodListEmployees  = "ListEmployees"
	methodSearch         = "SearchEmployees"
	methodUpdateEmployee = "UpdateEmployee"
	methodDeleteEmployee = "DeleteEmployee"

	msgCreatingEmployee  = "creating employee record"
	msgEmployeeCreated   = "employee record created"
	msgFetchingEmployee  = "fetching employee record"
	msgListingEmployees  = "listing employee records"
	msgSearchingRecords  = "searching employee records"
	msgUpdatingEmployee  = "updating employee record"
	msgEmployeeUpdated   = "employee record updated"
	msgDeletingEmployee  = "deleting employee record"
	msgEmployeeDeleted   = "employee record deleted"
	msgEmployeeMissing   = "employee record not found"
	msgNegativeSalary    = "negative salary provided"

	msgErrCreateEmployee  = "failed to create employee"
	msgErrFetchEmployee   = "failed to fetch employee"
	msgErrListEmployees   = "failed to list employees"
	msgErrSearchEmployees = "failed to search employees"
	msgErrUpdateEmployee  = "failed to update employee"
	msgErrDeleteEmployee  = "failed to delete employee"

	errCtxValidatingSalary = "validating salary"
	errCtxCreatingEmployee = "creating employee"
	errCtxFetchingEmployee = "fetching employee"
	errCtxListingEmployees = "listing employees"
	errCtxSearching        = "searching employees"
	errCtxUpdatingEmployee = "updating employee"
	errCtxDeletingEmployee = "deleting employee"
)

// EmployeeUseCaseImpl реализует интерфейс api.EmployeeUseCase.
type EmployeeUseCaseImpl struct {
	employeeRepo repositories.EmployeeRepository
}

// NewEmployeeUseCase создает новый экземпляр сценариев справочника сотрудников.
func NewEmployeeUseCase(employeeRepo repositories.EmployeeRepository) api.EmployeeUseCase {
	return &EmployeeUseCaseImpl{
		employeeRepo: employeeRepo,
	}
}

// Create сохраняет новую запись. Если дата приема не указана,
// хранилище подставит время создания записи.
func (u *EmployeeUseCaseImpl) Create(ctx context.Context, employee *entities.Employee) (*entities.Employee, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateEmployee))
	log.Debug(ctx, msgCreatingEmployee, zap.String("email", employee.Email))

	if employee.Salary < 0 {
		log.Debug(ctx, msgNegativeSalary)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingSalary, entities.ErrNegativeSalary)
	}

	created, err := u.employeeRepo.Create(ctx, employee)
	if err != nil {
		log.Error(ctx, msgErrCreateEmployee, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingEmployee, err)
	}

	log.Info(ctx, msgEmployeeCreated, zap.String("employeeID", created.ID))
	return created, nil
}

// Get возвращает запись по ID.
func (u *EmployeeUseCaseImpl) Get(ctx context.Context, id string) (*entities.Employee, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetEmployee), zap.String("employeeID", id))
	log.Debug(ctx, msgFetchingEmployee)

	employee, err := u.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrEmployeeNotFound) {
			log.Debug(ctx, msgEmployeeMissing)
			return nil, fmt.Errorf("%s: %w", errCtxFetchingEmployee, entities.ErrEmployeeNotFound)
		}
		log.Error(ctx, msgErrFetchEmployee, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingEmployee, err)
	}

	return employee, nil
}

// List возвращает все записи, новые первыми.
func (u *EmployeeUseCaseImpl) List(ctx context.Context) ([]*entities.Employee, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListEmployees))
	log.Debug(ctx, msgListingEmployees)

	employees, err := u.employeeRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListEmployees, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingEmployees, err)
	}

	return employees, nil
}

// Search возвращает записи, удовлетворяющие фильтру, новые первыми.
func (u *EmployeeUseCaseImpl) Search(ctx context.Context, filter entities.EmployeeFilter) ([]*entities.Employee, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodSearch),
		zap.String("department", filter.Department),
		zap.String("position", filter.Position),
	)
	log.Debug(ctx, msgSearchingRecords)

	employees, err := u.employeeRepo.Search(ctx, filter)
	if err != nil {
		log.Error(ctx, msgErrSearchEmployees, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSearching, err)
	}

	return employees, nil
}

// Update применяет частичное обновление записи.
func (u *EmployeeUseCaseImpl) Update(ctx context.Context, id string, update entities.EmployeeUpdate) (*entities.Employee, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateEmployee), zap.String("employeeID", id))
	log.Debug(ctx, msgUpdatingEmployee)

	if update.Salary != nil && *update.Salary < 0 {
		log.Debug(ctx, msgNegativeSalary)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingSalary, entities.ErrNegativeSalary)
	}

	updated, err := u.employeeRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, entities.ErrEmployeeNotFound) {
			log.Debug(ctx, msgEmployeeMissing)
			return nil, fmt.Errorf("%s: %w", errCtxUpdatingEmployee, entities.ErrEmployeeNotFound)
		}
		log.Error(ctx, msgErrUpdateEmployee, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingEmployee, err)
	}

	log.Info(ctx, msgEmployeeUpdated)
	return updated, nil
}

// Delete удаляет запись. Связанный файл аватара остается на диске.
func (u *EmployeeUseCaseImpl) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteEmployee), zap.String("employeeID", id))
	log.Debug(ctx, msgDeletingEmployee)

	if err := u.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, entities.ErrEmployeeNotFound) {
			log.Debug(ctx, msgEmployeeMissing)
			return fmt.Errorf("%s: %w", errCtxDeletingEmployee, entities.ErrEmployeeNotFound)
		}
		log.Error(ctx, msgErrDeleteEmployee, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingEmployee, err)
	}

	log.Info(ctx, msgEmployeeDeleted)
	return nil
}
