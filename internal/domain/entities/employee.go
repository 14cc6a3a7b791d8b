package entities

import (
	"errors"
	"time"
)

// Ошибки домена сотрудника.
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNegativeSalary   = errors.New("salary must be a positive number")
)

// Employee представляет запись справочника сотрудников.
// Email сотрудника не является уникальным на уровне хранилища.
type Employee struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Position      string
	Department    string
	Salary        float64
	DateOfJoining time.Time
	Avatar        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EmployeeUpdate описывает частичное обновление записи сотрудника.
// Nil-поле означает "оставить прежнее значение".
type EmployeeUpdate struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Position      *string
	Department    *string
	Salary        *float64
	DateOfJoining *time.Time
	Avatar        *string
}

// EmployeeFilter задает условия поиска по справочнику.
// Пустая строка означает отсутствие фильтра по полю.
type EmployeeFilter struct {
	Department string
	Position   string
}
