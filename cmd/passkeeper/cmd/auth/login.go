package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/cmd/passkeeper/cmd/types"
)

func NewLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Проверить мастер-пароль",
		Long: `Проверка имени пользователя и мастер-пароля.

Сессия между командами не сохраняется: каждая команда работы с записями
заново запрашивает мастер-пароль и выводит из него ключ шифрования.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := types.AppFromContext(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			creds, err := types.ReadCredentials(app, prompt.New(cmd.InOrStdin(), out), username)
			if err != nil {
				return err
			}

			if err := app.Login(cmd.Context(), creds); err != nil {
				return err
			}

			fmt.Fprintf(out, "✅ Учетные данные %s верны\n", creds.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "имя пользователя")

	return cmd
}

func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Завершить сессию",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Сессия не сохраняется между командами, завершать нечего.")
			return nil
		},
	}
}
