package client

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"passkeeper/internal/app/client/config"
	"passkeeper/internal/domain/session"
	"passkeeper/internal/domain/user"
	"passkeeper/internal/domain/vault"
	"passkeeper/internal/infrastructure/storage"
)

// App связывает конфигурацию, хранилище и сервисы на время одной команды
type App struct {
	config  *config.Config
	log     *slog.Logger
	storage *storage.Storage
	users   user.Servicer
	gate    session.Servicer
	vault   vault.Servicer
}

// Credentials - имя пользователя и мастер-пароль, которые передаются
// в каждую команду хранилища. Между командами ничего не сохраняется.
type Credentials struct {
	Username string
	Password string
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	// Открываем хранилище и применяем миграции
	st, err := storage.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}

	users := user.NewService(st.Users(), user.NewBoundaryValidator(), cfg.KDFAlgorithm, log)

	return &App{
		config:  cfg,
		log:     log,
		storage: st,
		users:   users,
		gate:    session.NewService(users, log),
		vault:   vault.NewService(st.Entries(), log),
	}, nil
}

// Close освобождает соединение с хранилищем
func (a *App) Close() error {
	if a == nil || a.storage == nil {
		return nil
	}
	return a.storage.Close()
}

// IsInitialized проверяет, выполнялась ли команда init
func (a *App) IsInitialized() bool {
	_, err := os.Stat(a.config.EnvFilePath())
	return err == nil
}

// Init сохраняет настройки в .env; схема БД к этому моменту уже создана
func (a *App) Init() error {
	if err := a.config.WriteEnvFile(); err != nil {
		return err
	}
	a.log.Debug("client initialized", "dir", a.config.ConfigDir)
	return nil
}

// Config возвращает активную конфигурацию
func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Register(ctx context.Context, username, password string) (*user.User, error) {
	return a.users.Register(ctx, username, password)
}

// Login только проверяет учетные данные: сессия не сохраняется
func (a *App) Login(ctx context.Context, creds Credentials) error {
	sess, err := a.users.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		return err
	}
	sess.Close()
	return nil
}

// DeleteAccount удаляет пользователя и все его записи
func (a *App) DeleteAccount(ctx context.Context, creds Credentials) error {
	return a.withSession(ctx, creds, func(sess *session.Session) error {
		return a.users.Delete(ctx, sess)
	})
}

func (a *App) CreateEntry(ctx context.Context, creds Credentials, title, serviceUsername, servicePassword string) error {
	return a.withSession(ctx, creds, func(sess *session.Session) error {
		return a.vault.Create(ctx, sess, title, serviceUsername, servicePassword)
	})
}

func (a *App) ListEntries(ctx context.Context, creds Credentials) ([]vault.Item, error) {
	var items []vault.Item
	err := a.withSession(ctx, creds, func(sess *session.Session) error {
		var err error
		items, err = a.vault.List(ctx, sess)
		return err
	})
	return items, err
}

func (a *App) GetEntry(ctx context.Context, creds Credentials, title string) (vault.Credential, error) {
	var cred vault.Credential
	err := a.withSession(ctx, creds, func(sess *session.Session) error {
		var err error
		cred, err = a.vault.Get(ctx, sess, title)
		return err
	})
	return cred, err
}

func (a *App) UpdateEntry(ctx context.Context, creds Credentials, title, serviceUsername, servicePassword string) error {
	return a.withSession(ctx, creds, func(sess *session.Session) error {
		return a.vault.Update(ctx, sess, title, serviceUsername, servicePassword)
	})
}

func (a *App) DeleteEntry(ctx context.Context, creds Credentials, title string) error {
	return a.withSession(ctx, creds, func(sess *session.Session) error {
		return a.vault.Delete(ctx, sess, title)
	})
}

// withSession открывает сессию через шлюз и гарантированно затирает ключ
func (a *App) withSession(ctx context.Context, creds Credentials, fn func(sess *session.Session) error) error {
	sess, err := a.gate.Open(ctx, creds.Username, creds.Password)
	if err != nil {
		if !errors.Is(err, session.ErrNotAuthenticated) {
			a.log.Error("failed to open session", "error", err)
		}
		return err
	}
	defer sess.Close()

	return fn(sess)
}
