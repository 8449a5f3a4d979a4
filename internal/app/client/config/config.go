package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"passkeeper/internal/crypto"
	"passkeeper/internal/infrastructure/migration"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	DriverSQLite   = migration.DriverSQLite
	DriverPostgres = migration.DriverPostgres
)

const (
	defaultEnv       = EnvProd
	defaultConfigDir = ".passkeeper"
	defaultDBDriver  = DriverSQLite
	defaultDBFile    = "passkeeper.db"
	defaultKDF       = crypto.AlgSHA256

	EnvFileName = ".env"
)

type Config struct {
	Env          string `mapstructure:"app_env"`
	ConfigDir    string `mapstructure:"config_dir"`
	DBDriver     string `mapstructure:"db_driver"`
	DatabaseDSN  string `mapstructure:"database_dsn"`
	KDFAlgorithm string `mapstructure:"kdf_algorithm"`
	DefaultUser  string `mapstructure:"default_user"`
}

// Load загружает конфигурацию: .env рядом с запуском, .env в директории
// конфигурации, переменные окружения и (если прочитан) YAML-файл viper
func Load() (*Config, error) {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := EnvFileName
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		// Пробуем найти .env в родительской директории
		envPath = filepath.Join("..", EnvFileName)
	}
	if err := loadEnvFile(envPath); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	// Устанавливаем значения по умолчанию
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("DB_DRIVER", defaultDBDriver)
	viper.SetDefault("KDF_ALGORITHM", defaultKDF)

	configDir := resolveConfigDir(viper.GetString("CONFIG_DIR"))

	// .env, созданный командой init
	if err := loadEnvFile(filepath.Join(configDir, EnvFileName)); err != nil {
		return nil, err
	}

	// Создаем директорию если ее нет
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	// Файл по умолчанию есть только у sqlite; для postgres DSN обязателен
	dsn := viper.GetString("DATABASE_DSN")
	if dsn == "" && viper.GetString("DB_DRIVER") == DriverSQLite {
		dsn = filepath.Join(configDir, defaultDBFile)
	}

	config := &Config{
		Env:          viper.GetString("APP_ENV"),
		ConfigDir:    configDir,
		DBDriver:     viper.GetString("DB_DRIVER"),
		DatabaseDSN:  dsn,
		KDFAlgorithm: viper.GetString("KDF_ALGORITHM"),
		DefaultUser:  viper.GetString("DEFAULT_USER"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnvFilePath - путь к .env, который создает команда init
func (c *Config) EnvFilePath() string {
	return filepath.Join(c.ConfigDir, EnvFileName)
}

// WriteEnvFile сохраняет текущие настройки в .env директории конфигурации
func (c *Config) WriteEnvFile() error {
	env := map[string]string{
		"APP_ENV":       c.Env,
		"DB_DRIVER":     c.DBDriver,
		"DATABASE_DSN":  c.DatabaseDSN,
		"KDF_ALGORITHM": c.KDFAlgorithm,
	}
	if c.DefaultUser != "" {
		env["DEFAULT_USER"] = c.DefaultUser
	}

	path := c.EnvFilePath()
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("ошибка записи %s: %w", path, err)
	}

	return os.Chmod(path, 0600)
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("db_driver должен быть %q или %q, получено %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database_dsn не может быть пустым для драйвера %q", c.DBDriver)
	}
	if !crypto.IsKnownAlgorithm(c.KDFAlgorithm) {
		return fmt.Errorf("неизвестный kdf_algorithm %q", c.KDFAlgorithm)
	}
	return nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("ошибка загрузки %s: %w", path, err)
	}
	return nil
}

func resolveConfigDir(dir string) string {
	if dir != defaultConfigDir && !strings.HasPrefix(dir, "~") {
		return dir
	}

	// Получаем домашнюю директорию пользователя
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	if dir == defaultConfigDir {
		return filepath.Join(homeDir, dir)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(dir, "~"))
}
