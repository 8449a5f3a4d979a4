package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	// Blank import required for pgx database/sql driver registration
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator - интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine - фабрика для создания мигратора
type MigrationEngine func(driver, dsn string) (Migrator, error)

type Migration struct {
	driver string
	dsn    string
	engine MigrationEngine
}

func NewMigration(driver, dsn string, engine MigrationEngine) *Migration {
	return &Migration{
		driver: driver,
		dsn:    dsn,
		engine: engine,
	}
}

// DefaultEngine - реальная реализация: встроенные SQL-файлы и собственное соединение с БД,
// которое закрывается вместе с мигратором
func DefaultEngine(driver, dsn string) (Migrator, error) {
	dir, err := sourceDir(driver)
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrationsFS, "migrations/"+dir)
	if err != nil {
		return nil, fmt.Errorf("open migrations source: %w", err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	var drv database.Driver
	switch driver {
	case DriverSQLite:
		drv, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case DriverPostgres:
		drv, err = postgres.WithInstance(db, &postgres.Config{})
	}
	if err != nil {
		_ = db.Close()
		_ = src.Close()
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dir, drv)
	if err != nil {
		_ = drv.Close()
		_ = src.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return m, nil
}

func (mg *Migration) Up() (err error) {
	m, err := mg.engine(mg.driver, mg.dsn)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}

func sourceDir(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "sqlite3", nil
	case DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
