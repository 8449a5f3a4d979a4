package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
)

const tokenVersion byte = 1

var (
	ErrDecryption = errors.New("decryption failed")
	ErrInvalidKey = errors.New("invalid key size")
)

var tokenEncoding = base64.URLEncoding.Strict()

// Encrypt шифрует строку AES-256-GCM и возвращает токен:
// base64url(версия || nonce || шифртекст с тегом)
func Encrypt(plaintext string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce, err := GenerateRandomBytes(gcm.NonceSize())
	if err != nil {
		return "", err
	}

	header := []byte{tokenVersion}
	out := make([]byte, 0, 1+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, header...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, []byte(plaintext), header)

	return tokenEncoding.EncodeToString(out), nil
}

// Decrypt расшифровывает токен. Любая ошибка формата, чужой ключ или подмена
// данных возвращают ErrDecryption.
func Decrypt(token string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	raw, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: malformed token", ErrDecryption)
	}

	if len(raw) < 1+gcm.NonceSize()+gcm.Overhead() {
		return "", fmt.Errorf("%w: token too short", ErrDecryption)
	}
	if raw[0] != tokenVersion {
		return "", fmt.Errorf("%w: unsupported token version %d", ErrDecryption, raw[0])
	}

	nonce := raw[1 : 1+gcm.NonceSize()]
	sealed := raw[1+gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, sealed, raw[:1])
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrDecryption)
	}

	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return cipher.NewGCM(block)
}
