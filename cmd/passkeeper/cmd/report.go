package cmd

import (
	"errors"
	"io"

	"github.com/fatih/color"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/internal/crypto"
	"passkeeper/internal/domain/session"
	"passkeeper/internal/domain/user"
	"passkeeper/internal/domain/vault"
)

type errorMessage struct {
	target  error
	message string
	details bool
}

// Порядок важен: CorruptEntryError оборачивает ErrDecryption,
// ErrInvalidCredentials оборачивает ErrNotAuthenticated.
var errorMessages = []errorMessage{
	{target: session.ErrNotAuthenticated, message: "Неверное имя пользователя или мастер-пароль"},
	{target: user.ErrDuplicateUsername, message: "Пользователь с таким именем уже существует"},
	{target: user.ErrNotFound, message: "Пользователь не найден"},
	{target: vault.ErrDuplicateTitle, message: "Запись с таким названием уже существует"},
	{target: vault.ErrEntryNotFound, message: "Запись не найдена"},
	{target: vault.ErrCorruptEntry, message: "Запись повреждена: не удалось расшифровать пароль"},
	{target: crypto.ErrDecryption, message: "Не удалось расшифровать данные"},
	{target: user.ErrInvalidInput, message: "Некорректные данные", details: true},
	{target: vault.ErrInvalidInput, message: "Некорректные данные", details: true},
	{target: prompt.ErrMismatch, message: "Пароли не совпадают"},
	{target: prompt.ErrEmpty, message: "Значение не может быть пустым"},
}

// report печатает сообщение для известной ошибки и возвращает nil.
// Неизвестные ошибки возвращаются как есть.
func report(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	for _, m := range errorMessages {
		if !errors.Is(err, m.target) {
			continue
		}

		msg := m.message
		if m.details {
			msg += ": " + err.Error()
		}
		color.New(color.FgRed).Fprintln(w, "❌ "+msg)
		return nil
	}

	return err
}
