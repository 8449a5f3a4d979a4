package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"passkeeper/internal/domain/vault"
)

type EntryRepository struct {
	db      *sql.DB
	dialect Dialect
	log     *slog.Logger
}

func (r *EntryRepository) Create(ctx context.Context, e *vault.Entry) error {
	_, err := r.db.ExecContext(ctx, r.dialect.rebind(
		`INSERT INTO vault_entries (id, user_id, title, service_username, encrypted_secret, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		e.ID, e.UserID, e.Title, e.ServiceUsername, e.EncryptedSecret, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return vault.ErrDuplicateTitle
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *EntryRepository) List(ctx context.Context, userID string) ([]vault.Entry, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(
		`SELECT id, user_id, title, service_username, encrypted_secret, created_at, updated_at
		 FROM vault_entries WHERE user_id = ? ORDER BY title`), userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := make([]vault.Entry, 0)
	for rows.Next() {
		var e vault.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.ServiceUsername, &e.EncryptedSecret,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}

func (r *EntryRepository) FindByTitle(ctx context.Context, userID, title string) (*vault.Entry, error) {
	var e vault.Entry
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(
		`SELECT id, user_id, title, service_username, encrypted_secret, created_at, updated_at
		 FROM vault_entries WHERE user_id = ? AND title = ?`), userID, title).
		Scan(&e.ID, &e.UserID, &e.Title, &e.ServiceUsername, &e.EncryptedSecret, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, vault.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &e, nil
}

func (r *EntryRepository) Update(ctx context.Context, e *vault.Entry) error {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(
		`UPDATE vault_entries SET service_username = ?, encrypted_secret = ?, updated_at = ?
		 WHERE user_id = ? AND title = ?`),
		e.ServiceUsername, e.EncryptedSecret, e.UpdatedAt, e.UserID, e.Title)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *EntryRepository) Delete(ctx context.Context, userID, title string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(
		`DELETE FROM vault_entries WHERE user_id = ? AND title = ?`), userID, title)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return vault.ErrEntryNotFound
	}
	return nil
}
