package user

import (
	"time"

	"passkeeper/internal/crypto"
)

type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt-верификатор, не ключ
	KeyParams    crypto.KeyParams
	CreatedAt    time.Time
}
