package user

import (
	"fmt"
	"unicode"
)

const (
	MinLoginLen = 3
	MaxLoginLen = 32
	// bcrypt учитывает только первые 72 байта
	MaxPasswordBytes = 72
)

// Validator - интерфейс для валидации пользовательских данных
type Validator interface {
	ValidateRegister(login, password string) error
	ValidateLogin(login string) error
	ValidatePassword(password string) error
}

// BoundaryValidator проверяет только формат на границе системы.
// Сложность пароля не навязывается, см. crypto.CheckPasswordStrength.
type BoundaryValidator struct{}

// NewBoundaryValidator создает новый валидатор
func NewBoundaryValidator() *BoundaryValidator {
	return &BoundaryValidator{}
}

// ValidateRegister валидирует данные для регистрации
func (v *BoundaryValidator) ValidateRegister(login, password string) error {
	if err := v.ValidateLogin(login); err != nil {
		return fmt.Errorf("login validation failed: %w", err)
	}

	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

// ValidateLogin валидирует логин
func (v *BoundaryValidator) ValidateLogin(login string) error {
	if len(login) < MinLoginLen {
		return fmt.Errorf("login must be at least %d characters", MinLoginLen)
	}

	if len(login) > MaxLoginLen {
		return fmt.Errorf("login must be at most %d characters", MaxLoginLen)
	}

	for _, r := range login {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return fmt.Errorf("login can only contain letters, digits, '_', '-', '.'")
		}
	}

	return nil
}

// ValidatePassword валидирует пароль
func (v *BoundaryValidator) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	}

	return nil
}
