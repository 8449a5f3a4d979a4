package entry

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/internal/crypto"
)

// NewEntryCmd - родительская команда для всех операций с записями
func NewEntryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Управление записями",
		Long: `Создание, просмотр, обновление и удаление паролей к сервисам.

Каждая команда запрашивает мастер-пароль: ключ шифрования выводится из него
заново и нигде не сохраняется.`,
	}

	cmd.AddCommand(
		NewCreateCmd(),
		NewListCmd(),
		NewGetCmd(),
		NewUpdateCmd(),
		NewDeleteCmd(),
	)

	return cmd
}

const defaultGeneratedLength = 20

// secretOptions - флаги ввода пароля сервиса, общие для create и update
type secretOptions struct {
	generate  int
	noSymbols bool
}

func (o *secretOptions) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.generate, "generate", "g", 0, "сгенерировать пароль указанной длины")
	cmd.Flags().Lookup("generate").NoOptDefVal = fmt.Sprint(defaultGeneratedLength)
	cmd.Flags().BoolVar(&o.noSymbols, "no-symbols", false, "генерировать пароль без спецсимволов")
}

// read возвращает пароль сервиса и признак того, что он сгенерирован
func (o *secretOptions) read(p *prompt.Prompter) (string, bool, error) {
	if o.generate > 0 {
		password, err := crypto.GenerateSecurePassword(o.generate, !o.noSymbols)
		if err != nil {
			return "", false, err
		}
		return password, true, nil
	}

	password, err := p.SecretConfirm("Пароль сервиса: ", "Повторите пароль сервиса: ")
	if err != nil {
		return "", false, err
	}
	return password, false, nil
}

func printGenerated(out io.Writer, password string) {
	fmt.Fprintf(out, "Сгенерированный пароль: %s\n", password)
}
