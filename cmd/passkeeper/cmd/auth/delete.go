package auth

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/cmd/passkeeper/cmd/types"
)

func NewDeleteCmd() *cobra.Command {
	var (
		username string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Удалить учетную запись",
		Long:  `Удаление пользователя вместе со всеми его записями. Операция необратима.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			if !yes {
				answer, err := p.Line(fmt.Sprintf("Удалить пользователя %s и все его записи? [y/N]: ", creds.Username))
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Fprintln(out, "Отменено")
					return nil
				}
			}

			if err := app.DeleteAccount(cmd.Context(), creds); err != nil {
				return err
			}

			fmt.Fprintf(out, "✅ Пользователь %s удален\n", creds.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "имя пользователя")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "не запрашивать подтверждение")

	return cmd
}
