package entry

import (
	"fmt"

	"github.com/spf13/cobra"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/cmd/passkeeper/cmd/types"
)

// NewUpdateCmd создает команду изменения записи. Она же update-password.
func NewUpdateCmd() *cobra.Command {
	var (
		username string
		login    string
		secret   secretOptions
	)

	cmd := &cobra.Command{
		Use:   "update <title>",
		Short: "Изменить запись",
		Long:  `Замена логина и пароля существующей записи. Пароль шифруется заново.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := types.AppFromContext(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := prompt.New(cmd.InOrStdin(), out)

			creds, err := types.ReadCredentials(app, p, username)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("login") {
				if login, err = p.Line("Новый логин в сервисе: "); err != nil {
					return err
				}
			}

			password, generated, err := secret.read(p)
			if err != nil {
				return err
			}

			if err := app.UpdateEntry(cmd.Context(), creds, args[0], login, password); err != nil {
				return err
			}

			fmt.Fprintf(out, "✅ Запись %q обновлена\n", args[0])
			if generated {
				printGenerated(out, password)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "имя пользователя")
	cmd.Flags().StringVarP(&login, "login", "l", "", "новый логин в сервисе")
	secret.bind(cmd)

	return cmd
}
