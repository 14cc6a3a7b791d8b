package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdir/internal/adapters/postgres"
	"staffdir/internal/domain/entities"
	"staffdir/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection failed")

const (
	errCreatingUser        = "error creating user"
	errQueryingUserByEmail = "error querying user by email"
	errCreatingEmployee    = "error creating employee"
	errSearchingEmployees  = "error searching employees"
)

var userColumns = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

var employeeColumns = []string{
	"id", "first_name", "last_name", "email", "position", "department",
	"salary", "date_of_joining", "avatar", "created_at", "updated_at",
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func assertUserEquals(t *testing.T, expected, actual *entities.User) {
	t.Helper()
	require.NotNil(t, actual)
	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Name, actual.Name)
	assert.Equal(t, expected.Email, actual.Email)
	assert.Equal(t, expected.PasswordHash, actual.PasswordHash)
	assert.Equal(t, expected.CreatedAt, actual.CreatedAt)
	assert.Equal(t, expected.UpdatedAt, actual.UpdatedAt)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)

	inputUser := &entities.User{
		Name:         "New User",
		Email:        "new@example.com",
		PasswordHash: "hashed_new_password",
	}

	expectedUser := entities.User{
		ID:           "generated-uuid",
		Name:         inputUser.Name,
		Email:        inputUser.Email,
		PasswordHash: inputUser.PasswordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	t.Run("successful user creation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Name, inputUser.Email, inputUser.PasswordHash).
			WillReturnRows(
				pgxmock.NewRows(userColumns).
					AddRow(expectedUser.ID, expectedUser.Name, expectedUser.Email, expectedUser.PasswordHash, expectedUser.CreatedAt, expectedUser.UpdatedAt),
			)

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		require.NoError(t, err)
		assertUserEquals(t, &expectedUser, createdUser)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("duplicate email maps to sentinel error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Name, inputUser.Email, inputUser.PasswordHash).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		require.Nil(t, createdUser)
		require.ErrorIs(t, err, entities.ErrEmailTaken)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("error when creating a user is a common database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Name, inputUser.Email, inputUser.PasswordHash).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		require.Nil(t, createdUser)
		require.Error(t, err)
		require.Contains(t, err.Error(), errCreatingUser)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := testContext(t)

	testUser := entities.User{
		ID:           "test-user-id",
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	t.Run("successful receipt of the user by email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, name, email, password_hash, created_at, updated_at").
			WithArgs(testUser.Email).
			WillReturnRows(
				pgxmock.NewRows(userColumns).
					AddRow(testUser.ID, testUser.Name, testUser.Email, testUser.PasswordHash, testUser.CreatedAt, testUser.UpdatedAt),
			)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmail(ctx, testUser.Email)

		require.NoError(t, err)
		assertUserEquals(t, &testUser, user)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("the user was not found by email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		nonExistingEmail := "nonexistent@example.com"
		mock.ExpectQuery("SELECT id, name, email, password_hash, created_at, updated_at").
			WithArgs(nonExistingEmail).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmail(ctx, nonExistingEmail)

		require.Nil(t, user)
		require.ErrorIs(t, err, entities.ErrUserNotFound)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("database error when searching by email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, name, email, password_hash, created_at, updated_at").
			WithArgs(testUser.Email).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmail(ctx, testUser.Email)

		require.Nil(t, user)
		require.Error(t, err)
		require.Contains(t, err.Error(), errQueryingUserByEmail)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("the user was not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, name, email, password_hash, created_at, updated_at").
			WithArgs("non-existing-id").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, "non-existing-id")

		require.Nil(t, user)
		require.ErrorIs(t, err, entities.ErrUserNotFound)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})
}

func sampleEmployee() entities.Employee {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return entities.Employee{
		ID:            "employee-id-1",
		FirstName:     "John",
		LastName:      "Doe",
		Email:         "john.doe@example.com",
		Position:      "Engineer",
		Department:    "Engineering",
		Salary:        50000,
		DateOfJoining: now.Add(-30 * 24 * time.Hour),
		Avatar:        "/uploads/1700000000-42.png",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func employeeRow(e entities.Employee) *pgxmock.Rows {
	return pgxmock.NewRows(employeeColumns).
		AddRow(e.ID, e.FirstName, e.LastName, e.Email, e.Position, e.Department,
			e.Salary, e.DateOfJoining, e.Avatar, e.CreatedAt, e.UpdatedAt)
}

func assertEmployeeEquals(t *testing.T, expected, actual *entities.Employee) {
	t.Helper()
	require.NotNil(t, actual)
	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.FirstName, actual.FirstName)
	assert.Equal(t, expected.LastName, actual.LastName)
	assert.Equal(t, expected.Email, actual.Email)
	assert.Equal(t, expected.Position, actual.Position)
	assert.Equal(t, expected.Department, actual.Department)
	assert.InEpsilon(t, expected.Salary, actual.Salary, 1e-9)
	assert.Equal(t, expected.DateOfJoining, actual.DateOfJoining)
	assert.Equal(t, expected.Avatar, actual.Avatar)
}

func TestEmployeeRepository_Create(t *testing.T) {
	ctx := testContext(t)

	t.Run("successful creation with explicit joining date", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		expected := sampleEmployee()
		input := expected
		input.ID = ""

		mock.ExpectQuery("INSERT INTO employees .+").
			WithArgs(input.FirstName, input.LastName, input.Email, input.Position,
				input.Department, input.Salary, input.DateOfJoining, input.Avatar).
			WillReturnRows(employeeRow(expected))

		repo := postgres.NewEmployeeRepository(mock)
		created, err := repo.Create(ctx, &input)

		require.NoError(t, err)
		assertEmployeeEquals(t, &expected, created)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("zero joining date is replaced by the database default", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		expected := sampleEmployee()
		input := expected
		input.ID = ""
		input.DateOfJoining = time.Time{}

		mock.ExpectQuery("INSERT INTO employees .+").
			WithArgs(input.FirstName, input.LastName, input.Email, input.Position,
				input.Department, input.Salary, nil, input.Avatar).
			WillReturnRows(employeeRow(expected))

		repo := postgres.NewEmployeeRepository(mock)
		created, err := repo.Create(ctx, &input)

		require.NoError(t, err)
		assert.False(t, created.DateOfJoining.IsZero())

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		input := sampleEmployee()
		input.ID = ""

		mock.ExpectQuery("INSERT INTO employees .+").
			WithArgs(input.FirstName, input.LastName, input.Email, input.Position,
				input.Department, input.Salary, input.DateOfJoining, input.Avatar).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewEmployeeRepository(mock)
		created, err := repo.Create(ctx, &input)

		require.Nil(t, created)
		require.Error(t, err)
		require.Contains(t, err.Error(), errCreatingEmployee)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})
}

func TestEmployeeRepository_FindByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("successful receipt of the employee", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		expected := sampleEmployee()

		mock.ExpectQuery("SELECT (.+) FROM employees WHERE id").
			WithArgs(expected.ID).
			WillReturnRows(employeeRow(expected))

		repo := postgres.NewEmployeeRepository(mock)
		employee, err := repo.FindByID(ctx, expected.ID)

		require.NoError(t, err)
		assertEmployeeEquals(t, &expected, employee)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("the employee was not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM employees WHERE id").
			WithArgs("non-existing-id").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewEmployeeRepository(mock)
		employee, err := repo.FindByID(ctx, "non-existing-id")

		require.Nil(t, employee)
		require.ErrorIs(t, err, entities.ErrEmployeeNotFound)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("a malformed identifier is treated as a missing record", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM employees WHERE id").
			WithArgs("not-a-uuid").
			WillReturnError(&pgconn.PgError{Code: "22P02"})

		repo := postgres.NewEmployeeRepository(mock)
		employee, err := repo.FindByID(ctx, "not-a-uuid")

		require.Nil(t, employee)
		require.ErrorIs(t, err, entities.ErrEmployeeNotFound)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})
}

func TestEmployeeRepository_Search(t *testing.T) {
	ctx := testContext(t)

	t.Run("search with both filters passes them as query arguments", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		expected := sampleEmployee()

		mock.ExpectQuery("SELECT (.+) FROM employees").
			WithArgs("Engineering", "Engineer").
			WillReturnRows(employeeRow(expected))

		repo := postgres.NewEmployeeRepository(mock)
		employees, err := repo.Search(ctx, entities.EmployeeFilter{
			Department: "Engineering",
			Position:   "Engineer",
		})

		require.NoError(t, err)
		require.Len(t, employees, 1)
		assertEmployeeEquals(t, &expected, employees[0])

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("empty result is a non-nil empty slice", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM employees").
			WithArgs("Sales", "").
			WillReturnRows(pgxmock.NewRows(employeeColumns))

		repo := postgres.NewEmployeeRepository(mock)
		employees, err := repo.Search(ctx, entities.EmployeeFilter{Department: "Sales"})

		require.NoError(t, err)
		require.NotNil(t, employees)
		assert.Empty(t, employees)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM employees").
			WithArgs("", "").
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewEmployeeRepository(mock)
		employees, err := repo.Search(ctx, entities.EmployeeFilter{})

		require.Nil(t, employees)
		require.Error(t, err)
		require.Contains(t, err.Error(), errSearchingEmployees)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})
}

func TestEmployeeRepository_FindAll(t *testing.T) {
	ctx := testContext(t)

	t.Run("find all delegates to search without filters", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		expected := sampleEmployee()

		mock.ExpectQuery("SELECT (.+) FROM employees").
			WithArgs("", "").
			WillReturnRows(employeeRow(expected))

		repo := postgres.NewEmployeeRepository(mock)
		employees, err := repo.FindAll(ctx)

		require.NoError(t, err)
		require.Len(t, employees, 1)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})
}

func TestEmployeeRepository_Update(t *testing.T) {
	ctx := testContext(t)

	t.Run("partial update passes nil for untouched fields", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		expected := sampleEmployee()
		expected.Position = "Senior Engineer"
		newPosition := "Senior Engineer"

		update := entities.EmployeeUpdate{Position: &newPosition}

		mock.ExpectQuery("UPDATE employees").
			WithArgs(expected.ID, update.FirstName, update.LastName, update.Email,
				update.Position, update.Department, update.Salary, update.DateOfJoining, update.Avatar).
			WillReturnRows(employeeRow(expected))

		repo := postgres.NewEmployeeRepository(mock)
		updated, err := repo.Update(ctx, expected.ID, update)

		require.NoError(t, err)
		assert.Equal(t, "Senior Engineer", updated.Position)
		assert.Equal(t, expected.FirstName, updated.FirstName)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("the employee was not found for update", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		update := entities.EmployeeUpdate{}

		mock.ExpectQuery("UPDATE employees").
			WithArgs("non-existing-id", update.FirstName, update.LastName, update.Email,
				update.Position, update.Department, update.Salary, update.DateOfJoining, update.Avatar).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewEmployeeRepository(mock)
		updated, err := repo.Update(ctx, "non-existing-id", update)

		require.Nil(t, updated)
		require.ErrorIs(t, err, entities.ErrEmployeeNotFound)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})
}

func TestEmployeeRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	const employeeID = "employee-id-1"

	t.Run("successful employee deletion", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM employees").
			WithArgs(employeeID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewEmployeeRepository(mock)
		err = repo.Delete(ctx, employeeID)

		require.NoError(t, err)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("the employee was not found for deletion", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM employees").
			WithArgs(employeeID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewEmployeeRepository(mock)
		err = repo.Delete(ctx, employeeID)

		require.ErrorIs(t, err, entities.ErrEmployeeNotFound)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("a malformed identifier is treated as a missing record", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM employees").
			WithArgs("not-a-uuid").
			WillReturnError(&pgconn.PgError{Code: "22P02"})

		repo := postgres.NewEmployeeRepository(mock)
		err = repo.Delete(ctx, "not-a-uuid")

		require.ErrorIs(t, err, entities.ErrEmployeeNotFound)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})
}
