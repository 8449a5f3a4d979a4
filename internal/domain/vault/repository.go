package vault

import "context"

type Repository interface {
	// Create возвращает ErrDuplicateTitle, если у пользователя уже есть запись с таким названием
	Create(ctx context.Context, e *Entry) error
	// List возвращает записи пользователя, отсортированные по названию
	List(ctx context.Context, userID string) ([]Entry, error)
	FindByTitle(ctx context.Context, userID, title string) (*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, userID, title string) error
}
