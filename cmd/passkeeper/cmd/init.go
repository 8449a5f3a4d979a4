package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"passkeeper/cmd/passkeeper/cmd/types"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Инициализировать passkeeper",
		Long: `Команда init выполняет первоначальную настройку:
	1. Создает директорию конфигурации
	2. Создает схему базы данных
	3. Сохраняет текущие настройки в .env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := types.AppFromContext(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			// Проверяем, не инициализирован ли уже клиент
			if app.IsInitialized() {
				fmt.Fprintln(out, "passkeeper уже инициализирован.")
				return nil
			}

			if err := app.Init(); err != nil {
				return fmt.Errorf("ошибка инициализации: %w", err)
			}

			cfg := app.Config()

			fmt.Fprintln(out, "✅ Инициализация успешно завершена!")
			fmt.Fprintf(out, "Настройки:     %s\n", cfg.EnvFilePath())
			fmt.Fprintf(out, "База данных:   %s (%s)\n", cfg.DatabaseDSN, cfg.DBDriver)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Что дальше:")
			fmt.Fprintln(out, "1. Зарегистрируйтесь: passkeeper auth register")
			fmt.Fprintln(out, "2. Создайте первую запись: passkeeper entry create")

			return nil
		},
	}
}
