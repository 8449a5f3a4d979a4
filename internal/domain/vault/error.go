package vault

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateTitle = errors.New("entry with this title already exists")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrCorruptEntry   = errors.New("entry is corrupt")
	ErrInvalidInput   = errors.New("invalid input")
)

// CorruptEntryError - запись не удалось расшифровать текущим ключом
type CorruptEntryError struct {
	Title string
	Err   error
}

func (e *CorruptEntryError) Error() string {
	return fmt.Sprintf("entry %q is corrupt: %v", e.Title, e.Err)
}

func (e *CorruptEntryError) Unwrap() error {
	return e.Err
}

func (e *CorruptEntryError) Is(target error) bool {
	return target == ErrCorruptEntry
}
