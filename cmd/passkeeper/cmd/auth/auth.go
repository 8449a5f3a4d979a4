package auth

import (
	"github.com/spf13/cobra"
)

// NewAuthCmd - родительская команда для всех операций с учетной записью
func NewAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Управление пользователем",
		Long:  `Регистрация, проверка мастер-пароля и удаление учетной записи.`,
	}

	cmd.AddCommand(
		NewRegisterCmd(),
		NewLoginCmd(),
		NewLogoutCmd(),
		NewDeleteCmd(),
	)

	return cmd
}
