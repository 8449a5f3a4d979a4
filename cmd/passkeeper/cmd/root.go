package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"passkeeper/cmd/passkeeper/cmd/auth"
	"passkeeper/cmd/passkeeper/cmd/entry"
	"passkeeper/cmd/passkeeper/cmd/types"
	"passkeeper/internal/app/client"
	"passkeeper/internal/app/client/config"
	"passkeeper/internal/utils/logger"
)

var (
	cfgFile string
	dsn     string
	debug   bool

	app *client.App
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "passkeeper",
		Short: "passkeeper - менеджер паролей",
		Long: `passkeeper хранит пароли к сервисам в локальной базе данных.

Пароли шифруются AES-256-GCM ключом, который выводится из мастер-пароля
при каждой команде и нигде не сохраняется.`,
		PersistentPreRunE: setupApp,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Глобальные флаги
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "строка подключения к базе данных")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")

	addCommands(root)

	return root
}

func Execute() {
	if err := execute(context.Background(), rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

// execute запускает команду и закрывает приложение. Доменные ошибки
// выводятся сообщением и не считаются сбоем.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)

	if app != nil {
		if closeErr := app.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
		app = nil
	}

	return report(root.OutOrStdout(), err)
}

func setupApp(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if dsn != "" {
		cfg.DatabaseDSN = dsn
	}
	if debug {
		cfg.Env = config.EnvLocal
	}

	// Настраиваем логгер
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	// Создаем приложение
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(types.WithApp(cmd.Context(), app))

	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Ищем конфиг в директории конфигурации и рядом с запуском
		configDir := os.Getenv("CONFIG_DIR")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			configDir = filepath.Join(home, ".passkeeper")
		}

		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.Load()
}

func addCommands(root *cobra.Command) {
	root.AddCommand(newInitCmd())

	root.AddCommand(auth.NewAuthCmd())
	root.AddCommand(entry.NewEntryCmd())

	// Короткие имена команд верхнего уровня
	root.AddCommand(
		alias(auth.NewRegisterCmd(), "create-user"),
		alias(entry.NewCreateCmd(), "create-password"),
		alias(entry.NewListCmd(), "get-passwords"),
		alias(entry.NewUpdateCmd(), "update-password"),
		alias(entry.NewDeleteCmd(), "delete-password"),
	)
}

// alias переименовывает команду, сохраняя аргументы из Use
func alias(cmd *cobra.Command, name string) *cobra.Command {
	args := ""
	if i := len(cmd.Name()); i < len(cmd.Use) {
		args = cmd.Use[i:]
	}
	cmd.Use = name + args
	return cmd
}
