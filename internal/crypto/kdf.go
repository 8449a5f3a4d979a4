package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// Алгоритмы вывода ключа
const (
	AlgSHA256   = "SHA256"
	AlgPBKDF2   = "PBKDF2-SHA256"
	AlgArgon2id = "Argon2id"
)

const (
	KeySize  = 32
	SaltSize = 16

	defaultPBKDF2Iterations = 100000
	argon2Time              = 1
	argon2Memory            = 64 * 1024
	argon2Threads           = 4
)

var (
	ErrUnknownAlgorithm = errors.New("unknown key derivation algorithm")
	ErrMissingSalt      = errors.New("salt is required for salted key derivation")
)

// KeyParams описывает, как из мастер-пароля получается ключ пользователя.
// Параметры сохраняются вместе с пользователем, сам ключ - никогда.
type KeyParams struct {
	Algorithm  string
	Salt       []byte
	Iterations int
}

// DeriveKey - базовый вариант: SHA-256 от пароля без соли.
// Детерминирован, но уязвим к словарным атакам; для усиления используйте DeriveKeyWithParams.
func DeriveKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

// NewKeyParams подготавливает параметры для нового пользователя, генерируя соль при необходимости
func NewKeyParams(algorithm string) (KeyParams, error) {
	switch algorithm {
	case AlgSHA256, "":
		return KeyParams{Algorithm: AlgSHA256}, nil
	case AlgPBKDF2:
		salt, err := GenerateRandomBytes(SaltSize)
		if err != nil {
			return KeyParams{}, err
		}
		return KeyParams{Algorithm: AlgPBKDF2, Salt: salt, Iterations: defaultPBKDF2Iterations}, nil
	case AlgArgon2id:
		salt, err := GenerateRandomBytes(SaltSize)
		if err != nil {
			return KeyParams{}, err
		}
		return KeyParams{Algorithm: AlgArgon2id, Salt: salt, Iterations: argon2Time}, nil
	default:
		return KeyParams{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}
}

// DeriveKeyWithParams выводит 32-байтный ключ по сохраненным параметрам
func DeriveKeyWithParams(password string, params KeyParams) ([]byte, error) {
	switch params.Algorithm {
	case AlgSHA256, "":
		return DeriveKey(password), nil
	case AlgPBKDF2:
		if len(params.Salt) == 0 {
			return nil, ErrMissingSalt
		}
		iterations := params.Iterations
		if iterations <= 0 {
			iterations = defaultPBKDF2Iterations
		}
		return pbkdf2.Key([]byte(password), params.Salt, iterations, KeySize, sha256.New), nil
	case AlgArgon2id:
		if len(params.Salt) == 0 {
			return nil, ErrMissingSalt
		}
		t := uint32(argon2Time)
		if params.Iterations > 0 {
			t = uint32(params.Iterations)
		}
		return argon2.IDKey([]byte(password), params.Salt, t, argon2Memory, argon2Threads, KeySize), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, params.Algorithm)
	}
}

// IsKnownAlgorithm проверяет имя алгоритма из конфигурации
func IsKnownAlgorithm(algorithm string) bool {
	switch algorithm {
	case AlgSHA256, AlgPBKDF2, AlgArgon2id:
		return true
	}
	return false
}
