package session

import (
	"context"
	"errors"

	"golang.org/x/exp/slog"
)

// Authenticator проверяет учетные данные и выводит ключ пользователя.
// Отказ в доступе должен оборачивать ErrNotAuthenticated.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Session, error)
}

type Servicer interface {
	Open(ctx context.Context, username, password string) (*Session, error)
}

// Service - шлюз авторизации: открывает сессию на время одной команды
type Service struct {
	auth Authenticator
	log  *slog.Logger
}

func NewService(auth Authenticator, log *slog.Logger) *Service {
	return &Service{
		auth: auth,
		log:  log,
	}
}

// Open повторно аутентифицирует пользователя. Любой отказ (нет учетных данных,
// неизвестный пользователь, неверный пароль) превращается в ErrNotAuthenticated.
// Ошибки хранилища возвращаются как есть.
func (s *Service) Open(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrNotAuthenticated
	}

	sess, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			s.log.Debug("session rejected", "username", username)
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	if !sess.Valid() {
		return nil, ErrNotAuthenticated
	}

	return sess, nil
}
