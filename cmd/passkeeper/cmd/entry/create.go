package entry

import (
	"fmt"

	"github.com/spf13/cobra"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/cmd/passkeeper/cmd/types"
)

// NewCreateCmd создает команду добавления записи. Она же create-password.
func NewCreateCmd() *cobra.Command {
	var (
		username string
		login    string
		secret   secretOptions
	)

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Создать новую запись",
		Long: `Создание новой записи: название, логин в сервисе и пароль.

Название уникально в пределах пользователя. Пароль можно сгенерировать
флагом --generate.`,
		Args: cobra.MaximumNArgs(1),
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

			var title string
			if len(args) > 0 {
				title = args[0]
			} else if title, err = p.Required("Название записи: "); err != nil {
				return err
			}

			if !cmd.Flags().Changed("login") {
				if login, err = p.Line("Логин в сервисе: "); err != nil {
					return err
				}
			}

			password, generated, err := secret.read(p)
			if err != nil {
				return err
			}

			if err := app.CreateEntry(cmd.Context(), creds, title, login, password); err != nil {
				return err
			}

			fmt.Fprintf(out, "✅ Запись %q сохранена\n", title)
			if generated {
				printGenerated(out, password)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "имя пользователя")
	cmd.Flags().StringVarP(&login, "login", "l", "", "логин в сервисе")
	secret.bind(cmd)

	return cmd
}
