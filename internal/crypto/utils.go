package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// PasswordStrength - оценка надежности пароля (только информирование, не политика)
type PasswordStrength int

const (
	PasswordWeak PasswordStrength = iota
	PasswordMedium
	PasswordStrong
)

func (s PasswordStrength) String() string {
	switch s {
	case PasswordStrong:
		return "надежный"
	case PasswordMedium:
		return "средний"
	default:
		return "слабый"
	}
}

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{}:;,.?"
)

// ClearMemory затирает чувствительные данные из памяти
func ClearMemory(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// GenerateRandomBytes генерирует криптографически безопасные случайные байты
func GenerateRandomBytes(size int) ([]byte, error) {
	bytes := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return bytes, nil
}

// HashPassword создает верификатор мастер-пароля (bcrypt)
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPasswordHash проверяет пароль против верификатора
func VerifyPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckPasswordStrength оценивает пароль по длине и наборам символов
func CheckPasswordStrength(password string) PasswordStrength {
	if len(password) < 8 {
		return PasswordWeak
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	classes := 0
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasSpecial} {
		if ok {
			classes++
		}
	}

	switch {
	case classes == 4 && len(password) >= 12:
		return PasswordStrong
	case classes >= 3:
		return PasswordMedium
	default:
		return PasswordWeak
	}
}

// GenerateSecurePassword генерирует случайный пароль, содержащий символы каждого класса
func GenerateSecurePassword(length int, withSymbols bool) (string, error) {
	sets := []string{lowerChars, upperChars, digitChars}
	if withSymbols {
		sets = append(sets, symbolChars)
	}
	if length < len(sets) {
		return "", errors.New("password length is too small")
	}

	alphabet := strings.Join(sets, "")
	out := make([]byte, 0, length)

	for _, set := range sets {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates
	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("failed to shuffle password: %w", err)
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}

	return string(out), nil
}

// MaskSensitiveData скрывает середину строки для вывода в логи
func MaskSensitiveData(s string) string {
	runes := []rune(s)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("failed to generate password: %w", err)
	}
	return set[n.Int64()], nil
}
