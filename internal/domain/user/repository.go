package user

import (
	"context"
)

type Repository interface {
	// Create сохраняет пользователя; ErrDuplicateUsername при занятом имени
	Create(ctx context.Context, u *User) error
	// FindByUsername возвращает ErrNotFound, если пользователя нет
	FindByUsername(ctx context.Context, username string) (*User, error)
	// Delete удаляет пользователя вместе со всеми его записями
	Delete(ctx context.Context, id string) error
}
