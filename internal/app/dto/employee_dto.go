package dto

import (
	"strconv"
	"strings"
	"time"

	"staffdir/internal/domain/entities"
)

// Сообщения валидации полей сотрудника.
const (
	MsgFirstNameRequired  = "First name is required"
	MsgLastNameRequired   = "Last name is required"
	MsgPositionRequired   = "Position is required"
	MsgDepartmentRequired = "Department is required"
	MsgSalaryPositive     = "Salary must be a positive number"
	MsgDateOfJoiningValid = "Date of joining must be valid"
)

// Форматы, принимаемые для dateOfJoining.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

// EmployeeForm представляет поля multipart-формы сотрудника.
// Nil-указатель означает, что поле не было передано.
type EmployeeForm struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Position      *string
	Department    *string
	Salary        *string
	DateOfJoining *string
}

// EmployeeFormFromValues собирает форму из значений multipart-запроса.
func EmployeeFormFromValues(values map[string][]string) EmployeeForm {
	pick := func(key string) *string {
		if vs, ok := values[key]; ok && len(vs) > 0 {
			v := vs[0]
			return &v
		}
		return nil
	}
	return EmployeeForm{
		FirstName:     pick("firstName"),
		LastName:      pick("lastName"),
		Email:         pick("email"),
		Position:      pick("position"),
		Department:    pick("department"),
		Salary:        pick("salary"),
		DateOfJoining: pick("dateOfJoining"),
	}
}

func parseDate(value string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseSalary(value string) (float64, bool) {
	salary, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || salary < 0 {
		return 0, false
	}
	return salary, true
}

func missingOrBlank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

// Validate возвращает список ошибок валидации по полям.
// При partial=true проверяются только переданные поля, отсутствие
// обязательного поля не является ошибкой.
func (f EmployeeForm) Validate(partial bool) []FieldError {
	var errs []FieldError

	requireField := func(v *string, field, message string) {
		if partial && v == nil {
			return
		}
		if missingOrBlank(v) {
			errs = append(errs, FieldError{Field: field, Message: message})
		}
	}

	requireField(f.FirstName, "firstName", MsgFirstNameRequired)
	requireField(f.LastName, "lastName", MsgLastNameRequired)

	if !(partial && f.Email == nil) {
		if f.Email == nil || !ValidEmail(NormalizeEmail(*f.Email)) {
			errs = append(errs, FieldError{Field: "email", Message: MsgValidEmail})
		}
	}

	requireField(f.Position, "position", MsgPositionRequired)
	requireField(f.Department, "department", MsgDepartmentRequired)

	if f.Salary != nil {
		if _, ok := parseSalary(*f.Salary); !ok {
			errs = append(errs, FieldError{Field: "salary", Message: MsgSalaryPositive})
		}
	}

	if f.DateOfJoining != nil {
		if _, ok := parseDate(*f.DateOfJoining); !ok {
			errs = append(errs, FieldError{Field: "dateOfJoining", Message: MsgDateOfJoiningValid})
		}
	}

	return errs
}

// ToEmployee строит сущность для создания записи. Вызывается только после
// успешной валидации с partial=false. Avatar задается отдельно обработчиком.
func (f EmployeeForm) ToEmployee() *entities.Employee {
	employee := &entities.Employee{
		FirstName:  strings.TrimSpace(*f.FirstName),
		LastName:   strings.TrimSpace(*f.LastName),
		Email:      NormalizeEmail(*f.Email),
		Position:   strings.TrimSpace(*f.Position),
		Department: strings.TrimSpace(*f.Department),
	}
	if f.Salary != nil {
		salary, _ := parseSalary(*f.Salary)
		employee.Salary = salary
	}
	if f.DateOfJoining != nil {
		date, _ := parseDate(*f.DateOfJoining)
		employee.DateOfJoining = date
	}
	return employee
}

// ToUpdate строит частичное обновление из переданных полей.
// Вызывается только после успешной валидации с partial=true.
func (f EmployeeForm) ToUpdate() entities.EmployeeUpdate {
	var update entities.EmployeeUpdate

	trimmed := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}

	update.FirstName = trimmed(f.FirstName)
	update.LastName = trimmed(f.LastName)
	if f.Email != nil {
		email := NormalizeEmail(*f.Email)
		update.Email = &email
	}
	update.Position = trimmed(f.Position)
	update.Department = trimmed(f.Department)
	if f.Salary != nil {
		salary, _ := parseSalary(*f.Salary)
		update.Salary = &salary
	}
	if f.DateOfJoining != nil {
		date, _ := parseDate(*f.DateOfJoining)
		update.DateOfJoining = &date
	}
	return update
}

// EmployeeResponse содержит запись сотрудника в формате API.
type EmployeeResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Position      string    `json:"position"`
	Department    string    `json:"department"`
	Salary        float64   `json:"salary"`
	DateOfJoining time.Time `json:"dateOfJoining"`
	Avatar        string    `json:"avatar"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewEmployeeResponse формирует ответ из сущности сотрудника.
func NewEmployeeResponse(e *entities.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Position:      e.Position,
		Department:    e.Department,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining,
		Avatar:        e.Avatar,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// NewEmployeeListResponse формирует список ответов, сохраняя порядок хранилища.
func NewEmployeeListResponse(employees []*entities.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, NewEmployeeResponse(e))
	}
	return responses
}
