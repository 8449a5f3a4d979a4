package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passkeeper/internal/crypto"
	"passkeeper/internal/domain/session"
)

type Servicer interface {
	Register(ctx context.Context, username, password string) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*session.Session, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Delete(ctx context.Context, sess *session.Session) error
}

type Service struct {
	repo      Repository
	validator Validator
	algorithm string
	log       *slog.Logger
}

// NewService создает сервис учетных записей. algorithm - алгоритм вывода ключа
// для новых пользователей; уже зарегистрированные используют сохраненные параметры.
func NewService(repo Repository, validator Validator, algorithm string, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		algorithm: algorithm,
		log:       log,
	}
}

func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	if err := s.validator.ValidateRegister(username, password); err != nil {
		s.log.Debug("validation failed", "username", username, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	params, err := crypto.NewKeyParams(s.algorithm)
	if err != nil {
		return nil, fmt.Errorf("key params: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		KeyParams:    params,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Debug("user registered", "username", username, "kdf", params.Algorithm)

	return u, nil
}

// Authenticate проверяет мастер-пароль и выводит ключ хранилища.
// Неизвестный пользователь и неверный пароль дают одну и ту же ошибку.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*session.Session, error) {
	// Каждый отказ проходит сравнение bcrypt, чтобы время ответа не выдавало причину
	if err := s.validator.ValidateLogin(username); err != nil {
		verifyPassword(password, dummyHash())
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		verifyPassword(password, dummyHash())
		s.log.Debug("authentication failed", "username", crypto.MaskSensitiveData(username))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !verifyPassword(password, u.PasswordHash) {
		s.log.Debug("authentication failed", "username", crypto.MaskSensitiveData(username))
		return nil, ErrInvalidCredentials
	}

	key, err := crypto.DeriveKeyWithParams(password, u.KeyParams)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer crypto.ClearMemory(key)

	return session.New(u.ID, u.Username, key), nil
}

// FindByUsername возвращает nil без ошибки, если пользователя нет
func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// Delete удаляет владельца сессии и каскадно все его записи
func (s *Service) Delete(ctx context.Context, sess *session.Session) error {
	if err := session.Require(sess); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, sess.UserID()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Debug("user deleted", "username", sess.Username())
	return nil
}

var verifyPassword = crypto.VerifyPasswordHash

var (
	dummyOnce sync.Once
	dummy     string
)

func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = crypto.HashPassword("passkeeper-unknown-user")
	})
	return dummy
}
