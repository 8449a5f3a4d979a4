package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/cmd/passkeeper/cmd/types"
	"passkeeper/internal/crypto"
)

// NewRegisterCmd создает команду регистрации. Она же доступна как create-user.
func NewRegisterCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Зарегистрировать нового пользователя",
		Long: `Регистрация нового пользователя.

Мастер-пароль не сохраняется: хранится только его bcrypt-хеш.
Без мастер-пароля восстановить записи невозможно.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := types.AppFromContext(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := prompt.New(cmd.InOrStdin(), out)

			fmt.Fprintln(out, "=== Регистрация нового пользователя ===")

			if username == "" {
				if username, err = p.Required("Имя пользователя: "); err != nil {
					return err
				}
			}

			password, err := p.SecretConfirm("Мастер-пароль: ", "Повторите мастер-пароль: ")
			if err != nil {
				return err
			}

			u, err := app.Register(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			// только информирует, регистрацию не блокирует
			fmt.Fprintf(out, "Надежность пароля: %s\n", crypto.CheckPasswordStrength(password))
			fmt.Fprintln(out)
			fmt.Fprintf(out, "✅ Пользователь %s зарегистрирован\n", u.Username)
			fmt.Fprintln(out, "Создайте первую запись: passkeeper entry create")

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "имя пользователя")

	return cmd
}
