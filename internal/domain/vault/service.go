package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passkeeper/internal/crypto"
	"passkeeper/internal/domain/session"
)

type Servicer interface {
	Create(ctx context.Context, sess *session.Session, title, serviceUsername, servicePassword string) error
	List(ctx context.Context, sess *session.Session) ([]Item, error)
	Get(ctx context.Context, sess *session.Session, title string) (Credential, error)
	Update(ctx context.Context, sess *session.Session, title, serviceUsername, servicePassword string) error
	Delete(ctx context.Context, sess *session.Session, title string) error
}

// Service работает только с открытой сессией: проверка выполняется
// до любого обращения к хранилищу.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

func (s *Service) Create(ctx context.Context, sess *session.Session, title, serviceUsername, servicePassword string) error {
	key, err := sess.Key()
	if err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}

	secret, err := crypto.Encrypt(servicePassword, key)
	if err != nil {
		return fmt.Errorf("encrypt entry: %w", err)
	}

	now := time.Now().UTC()
	entry := &Entry{
		ID:              uuid.NewString(),
		UserID:          sess.UserID(),
		Title:           title,
		ServiceUsername: serviceUsername,
		EncryptedSecret: secret,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, ErrDuplicateTitle) {
			return ErrDuplicateTitle
		}
		s.log.Error("failed to create entry", "error", err)
		return fmt.Errorf("create entry: %w", err)
	}

	s.log.Debug("entry created", "title", title)
	return nil
}

// List расшифровывает все записи пользователя. Поврежденная запись
// попадает в результат с ошибкой CorruptEntryError и не прерывает список.
func (s *Service) List(ctx context.Context, sess *session.Session) ([]Item, error) {
	key, err := sess.Key()
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.List(ctx, sess.UserID())
	if err != nil {
		s.log.Error("failed to list entries", "error", err)
		return nil, fmt.Errorf("list entries: %w", err)
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		item := Item{
			Credential: Credential{Title: e.Title, ServiceUsername: e.ServiceUsername},
			UpdatedAt:  e.UpdatedAt,
		}

		password, err := crypto.Decrypt(e.EncryptedSecret, key)
		if err != nil {
			s.log.Warn("corrupt entry", "title", e.Title, "error", err)
			item.Err = &CorruptEntryError{Title: e.Title, Err: err}
		} else {
			item.Password = password
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *Service) Get(ctx context.Context, sess *session.Session, title string) (Credential, error) {
	key, err := sess.Key()
	if err != nil {
		return Credential{}, err
	}

	entry, err := s.repo.FindByTitle(ctx, sess.UserID(), title)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return Credential{}, ErrEntryNotFound
		}
		return Credential{}, fmt.Errorf("find entry: %w", err)
	}

	password, err := crypto.Decrypt(entry.EncryptedSecret, key)
	if err != nil {
		return Credential{}, &CorruptEntryError{Title: title, Err: err}
	}

	return Credential{
		Title:           entry.Title,
		ServiceUsername: entry.ServiceUsername,
		Password:        password,
	}, nil
}

// Update заменяет логин и перешифровывает пароль существующей записи
func (s *Service) Update(ctx context.Context, sess *session.Session, title, serviceUsername, servicePassword string) error {
	key, err := sess.Key()
	if err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}

	secret, err := crypto.Encrypt(servicePassword, key)
	if err != nil {
		return fmt.Errorf("encrypt entry: %w", err)
	}

	entry := &Entry{
		UserID:          sess.UserID(),
		Title:           title,
		ServiceUsername: serviceUsername,
		EncryptedSecret: secret,
		UpdatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.log.Error("failed to update entry", "error", err)
		return fmt.Errorf("update entry: %w", err)
	}

	s.log.Debug("entry updated", "title", title)
	return nil
}

func (s *Service) Delete(ctx context.Context, sess *session.Session, title string) error {
	if err := session.Require(sess); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, sess.UserID(), title); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.log.Error("failed to delete entry", "error", err)
		return fmt.Errorf("delete entry: %w", err)
	}

	s.log.Debug("entry deleted", "title", title)
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	return nil
}
