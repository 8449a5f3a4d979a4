package session

import (
	"errors"

	"passkeeper/internal/crypto"
)

// ErrNotAuthenticated не различает "не вошел" и "неверный пароль"
var ErrNotAuthenticated = errors.New("not authenticated")

// Session - аутентифицированный контекст одной команды: пользователь и ключ хранилища.
// Живет только в памяти и никогда не сохраняется. Нулевое значение недействительно.
type Session struct {
	userID   string
	username string
	key      []byte
}

// New создает сессию, копируя ключ
func New(userID, username string, key []byte) *Session {
	k := make([]byte, len(key))
	copy(k, key)

	return &Session{
		userID:   userID,
		username: username,
		key:      k,
	}
}

func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.userID
}

func (s *Session) Username() string {
	if s == nil {
		return ""
	}
	return s.username
}

// Key возвращает ключ хранилища или ErrNotAuthenticated для закрытой сессии
func (s *Session) Key() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrNotAuthenticated
	}
	return s.key, nil
}

// Valid проверяет, что сессия открыта и содержит ключ нужной длины
func (s *Session) Valid() bool {
	return s != nil && s.userID != "" && len(s.key) == crypto.KeySize
}

// Close затирает ключ; после этого сессия недействительна
func (s *Session) Close() {
	if s == nil {
		return
	}
	crypto.ClearMemory(s.key)
	s.key = nil
}

// Require возвращает ErrNotAuthenticated для отсутствующей или закрытой сессии
func Require(s *Session) error {
	if !s.Valid() {
		return ErrNotAuthenticated
	}
	return nil
}
