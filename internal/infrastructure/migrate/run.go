package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const migrationsTable = "drovo_schema_migrations"

// Runner applies the SQL files under a directory to the service database.
// It never calls Close on the migrator: the postgres driver would close the
// shared *sql.DB along with it.
type Runner struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

func NewRunner(db *gorm.DB, dir string, logger *zap.Logger) (*Runner, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB from gorm: %w", err)
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return nil, fmt.Errorf("postgres migrate driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("open migrations in %s: %w", dir, err)
	}
	return &Runner{m: m, logger: logger}, nil
}

func (r *Runner) Up() error {
	if err := r.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	r.logVersion("migrations applied")
	return nil
}

func (r *Runner) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("rollback needs at least one step, got %d", steps)
	}
	if err := r.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back %d migrations: %w", steps, err)
	}
	r.logVersion("migrations rolled back")
	return nil
}

// Version reports the applied schema version. A fresh database is version 0.
func (r *Runner) Version() (uint, bool, error) {
	version, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (r *Runner) logVersion(msg string) {
	version, dirty, err := r.Version()
	if err != nil {
		r.logger.Warn(msg, zap.Error(err))
		return
	}
	if dirty {
		r.logger.Warn(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	}
	r.logger.Info(msg, zap.Uint("version", version))
}

// RunMigrations brings the schema up to date.
func RunMigrations(db *gorm.DB, dir string, logger *zap.Logger) error {
	r, err := NewRunner(db, dir, logger)
	if err != nil {
		return err
	}
	return r.Up()
}
