package user

import (
	"errors"

	"passkeeper/internal/domain/session"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrInvalidInput      = errors.New("invalid input")

	// ErrInvalidCredentials одинакова для неизвестного пользователя и неверного пароля
	ErrInvalidCredentials = &DomainError{
		Err:     session.ErrNotAuthenticated,
		Message: "invalid credentials",
		Code:    "invalid_credentials",
	}
)

type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
