package entry

import (
	"fmt"

	"github.com/spf13/cobra"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/cmd/passkeeper/cmd/types"
)

func NewGetCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "get <title>",
		Short: "Показать запись",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := types.AppFromContext(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			creds, err := types.ReadCredentials(app, prompt.New(cmd.InOrStdin(), out), username)
			if err != nil {
				return err
			}

			cred, err := app.GetEntry(cmd.Context(), creds, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Название: %s\n", cred.Title)
			fmt.Fprintf(out, "Логин:    %s\n", cred.ServiceUsername)
			fmt.Fprintf(out, "Пароль:   %s\n", cred.Password)

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "имя пользователя")

	return cmd
}
