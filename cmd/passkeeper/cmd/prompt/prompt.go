// Package prompt читает ввод пользователя. Пароли читаются без эха,
// если ввод идет из терминала; иначе построчно (скрипты, тесты).
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	ErrMismatch = errors.New("пароли не совпадают")
	ErrEmpty    = errors.New("значение не может быть пустым")
)

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Line читает строку, пробелы по краям отбрасываются
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Required как Line, но пустой ответ - ошибка
func (p *Prompter) Required(label string) (string, error) {
	s, err := p.Line(label)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", ErrEmpty
	}
	return s, nil
}

// Secret читает пароль без эха. Пробелы в пароле сохраняются
// и при вводе из терминала, и при вводе из канала.
func (p *Prompter) Secret(label string) (string, error) {
	fmt.Fprint(p.out, label)

	if !p.tty {
		return p.readLine()
	}

	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(b), nil
}

// SecretConfirm запрашивает пароль дважды
func (p *Prompter) SecretConfirm(label, confirmLabel string) (string, error) {
	first, err := p.Secret(label)
	if err != nil {
		return "", err
	}
	second, err := p.Secret(confirmLabel)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrMismatch
	}
	return first, nil
}

// Credentials возвращает имя пользователя (флаг, значение по умолчанию
// или запрос) и мастер-пароль
func (p *Prompter) Credentials(username, defaultUser string) (string, string, error) {
	if username == "" {
		username = defaultUser
	}
	if username == "" {
		var err error
		if username, err = p.Required("Имя пользователя: "); err != nil {
			return "", "", err
		}
	}

	password, err := p.Secret("Мастер-пароль: ")
	if err != nil {
		return "", "", err
	}

	return username, password, nil
}

// readLine возвращает строку без завершающего перевода строки
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
