package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"passkeeper/internal/domain/user"
)

type UserRepository struct {
	db      *sql.DB
	dialect Dialect
	log     *slog.Logger
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx, r.dialect.rebind(
		`INSERT INTO users (id, username, password_hash, kdf_algorithm, kdf_salt, kdf_iterations, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		u.ID, u.Username, u.PasswordHash,
		u.KeyParams.Algorithm, u.KeyParams.Salt, u.KeyParams.Iterations,
		u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrDuplicateUsername
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(
		`SELECT id, username, password_hash, kdf_algorithm, kdf_salt, kdf_iterations, created_at
		 FROM users WHERE username = ?`), username).
		Scan(&u.ID, &u.Username, &u.PasswordHash,
			&u.KeyParams.Algorithm, &u.KeyParams.Salt, &u.KeyParams.Iterations,
			&u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &u, nil
}

// Delete удаляет пользователя; записи хранилища удаляются каскадом (ON DELETE CASCADE)
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}

	return nil
}
