package entry

import (
	"fmt"

	"github.com/spf13/cobra"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/cmd/passkeeper/cmd/types"
)

// NewDeleteCmd создает команду удаления записи. Она же delete-password.
func NewDeleteCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "delete <title>",
		Short: "Удалить запись",
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

			if err := app.DeleteEntry(cmd.Context(), creds, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(out, "✅ Запись %q удалена\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "имя пользователя")

	return cmd
}
