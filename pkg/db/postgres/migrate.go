package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"staffdir/pkg/logger"
)

// Константы для сообщений миграций.
const (
	logMigrationsApplied       = "database migrations successfully applied"
	errCreateMigrationInstance = "failed to create migration instance"
	errApplyMigrations         = "failed to apply migrations"
)

// MigrateDSN применяет миграции базы данных из указанного пути.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	log := logger.Log(ctx)

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, errCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsPath))
		return fmt.Errorf("%s: %w", errCreateMigrationInstance, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, errApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", errApplyMigrations, err)
	}

	log.Info(ctx, logMigrationsApplied)
	return nil
}
