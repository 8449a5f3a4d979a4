package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"passkeeper/internal/infrastructure/migration"
)

// Dialect определяет синтаксис плейсхолдеров и распознавание ошибок драйвера
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

const pgUniqueViolation = "23505"

// Storage - дескриптор базы данных на время одной команды
type Storage struct {
	db      *sql.DB
	dialect Dialect
	log     *slog.Logger
}

// Open подключается к БД, применяет миграции и возвращает хранилище.
// driver - имя драйвера database/sql: "sqlite3" или "pgx".
func Open(driver, dsn string, log *slog.Logger) (*Storage, error) {
	var dialect Dialect
	switch driver {
	case migration.DriverSQLite:
		dialect = DialectSQLite
		dsn = SQLiteDSN(dsn)
	case migration.DriverPostgres:
		dialect = DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err := migration.NewMigration(driver, dsn, migration.DefaultEngine).Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Debug("storage opened", "driver", driver)

	return New(db, dialect, log), nil
}

// New оборачивает уже открытое соединение (используется в тестах)
func New(db *sql.DB, dialect Dialect, log *slog.Logger) *Storage {
	return &Storage{
		db:      db,
		dialect: dialect,
		log:     log,
	}
}

// SQLiteDSN включает внешние ключи (нужны для каскадного удаления) и WAL,
// если в DSN они не заданы явно
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on&_journal_mode=WAL"
}

func (s *Storage) Users() *UserRepository {
	return &UserRepository{db: s.db, dialect: s.dialect, log: s.log}
}

func (s *Storage) Entries() *EntryRepository {
	return &EntryRepository{db: s.db, dialect: s.dialect, log: s.log}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// rebind переводит плейсхолдеры "?" в "$1, $2, ..." для postgres
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return false
}
