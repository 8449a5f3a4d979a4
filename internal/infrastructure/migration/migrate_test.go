package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMigrator - мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)

	// Настраиваем поведение
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	// Инжектим мок через фабрику
	engine := func(driver, dsn string) (Migrator, error) {
		assert.Equal(t, DriverSQLite, driver)
		assert.Equal(t, "vault.db", dsn)
		return mockM, nil
	}

	mg := NewMigration(DriverSQLite, "vault.db", engine)
	err := mg.Up()

	assert.NoError(t, err)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)

	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	engine := func(driver, dsn string) (Migrator, error) {
		return mockM, nil
	}

	mg := NewMigration(DriverSQLite, "", engine)
	err := mg.Up()

	assert.NoError(t, err)
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(driver, dsn string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	mg := NewMigration(DriverSQLite, "", engine)
	err := mg.Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestMigration_Up_Errors(t *testing.T) {
	upErr := errors.New("dirty database")
	srcErr := errors.New("source closed twice")
	dbErr := errors.New("database closed twice")

	tests := []struct {
		name     string
		up       error
		srcClose error
		dbClose  error
		contains []string
	}{
		{name: "up fails", up: upErr, contains: []string{"dirty database"}},
		{name: "source close fails", srcClose: srcErr, contains: []string{"source closed twice"}},
		{name: "database close fails", dbClose: dbErr, contains: []string{"database closed twice"}},
		{
			name:     "everything fails",
			up:       upErr,
			srcClose: srcErr,
			dbClose:  dbErr,
			contains: []string{"dirty database", "source closed twice", "database closed twice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockM := new(MockMigrator)
			mockM.On("Up").Return(tt.up)
			mockM.On("Close").Return(tt.srcClose, tt.dbClose)

			mg := NewMigration(DriverSQLite, "", func(string, string) (Migrator, error) {
				return mockM, nil
			})

			err := mg.Up()
			require.Error(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}
			mockM.AssertExpectations(t)
		})
	}
}

func TestDefaultEngine_UnsupportedDriver(t *testing.T) {
	_, err := DefaultEngine("mysql", "root@/db")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestDefaultEngine_SQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "vault.db") + "?_foreign_keys=on"

	// повторный запуск не должен падать
	for i := 0; i < 2; i++ {
		require.NoError(t, NewMigration(DriverSQLite, dsn, DefaultEngine).Up())
	}

	db, err := sql.Open(DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "vault_entries"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}
