package entry

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/cmd/passkeeper/cmd/types"
	"passkeeper/internal/domain/vault"
)

const (
	formatTable = "table"
	formatJSON  = "json"

	passwordMask = "********"
	corruptMark  = "<повреждена>"
)

// NewListCmd создает команду списка записей. Она же get-passwords.
func NewListCmd() *cobra.Command {
	var (
		username     string
		format       string
		showPassword bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список записей",
		Long: `Просмотр всех записей пользователя, отсортированных по названию.

Пароли скрыты, пока не указан флаг --show-password. Поврежденная запись
отмечается в списке и не мешает выводу остальных.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatTable && format != formatJSON {
				return fmt.Errorf("неизвестный формат %q, допустимо: %s, %s", format, formatTable, formatJSON)
			}

			app, err := types.AppFromContext(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			creds, err := types.ReadCredentials(app, prompt.New(cmd.InOrStdin(), out), username)
			if err != nil {
				return err
			}

			items, err := app.ListEntries(cmd.Context(), creds)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return printItemsJSON(out, items, showPassword)
			}
			return printItemsTable(out, items, showPassword)
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "имя пользователя")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "формат вывода (table, json)")
	cmd.Flags().BoolVar(&showPassword, "show-password", false, "показывать пароли")

	return cmd
}

type itemView struct {
	Title           string    `json:"title"`
	ServiceUsername string    `json:"service_username"`
	Password        string    `json:"password,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
	Corrupt         bool      `json:"corrupt,omitempty"`
}

func newItemView(item vault.Item, showPassword bool) itemView {
	v := itemView{
		Title:           item.Title,
		ServiceUsername: item.ServiceUsername,
		Password:        item.Password,
		UpdatedAt:       item.UpdatedAt,
		Corrupt:         item.Err != nil,
	}
	if !showPassword && !v.Corrupt {
		v.Password = passwordMask
	}
	return v
}

func printItemsTable(w io.Writer, items []vault.Item, showPassword bool) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "Записи не найдены")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Название\tЛогин\tПароль\tОбновлено\t\n")
	fmt.Fprintf(tw, "---\t---\t---\t---\t\n")

	corrupt := 0
	for _, item := range items {
		v := newItemView(item, showPassword)
		password := v.Password
		if v.Corrupt {
			password = corruptMark
			corrupt++
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			v.Title,
			v.ServiceUsername,
			password,
			v.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nВсего записей: %d\n", len(items))
	if corrupt > 0 {
		fmt.Fprintf(w, "⚠️  Не удалось расшифровать записей: %d\n", corrupt)
	}
	return nil
}

func printItemsJSON(w io.Writer, items []vault.Item, showPassword bool) error {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, newItemView(item, showPassword))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(views)
}
