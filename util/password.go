package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Prefix  = "argon2id"
	argon2Time    = 2
	argon2Memory  = 19 * 1024
	argon2Threads = 1
	argon2KeyLen  = 32
	saltLen       = 16
)

// ErrInvalidHash is returned when a stored password is not an argon2id encoding.
var ErrInvalidHash = errors.New("invalid password hash")

// GenerateSalt returns a random base64 encoded salt.
func GenerateSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// HashPasswordArgon2 encodes password as "argon2id$<salt>$<hash>".
func HashPasswordArgon2(password, salt string) (string, error) {
	if salt == "" {
		return "", fmt.Errorf("%w: empty salt", ErrInvalidHash)
	}
	key := argon2.IDKey([]byte(password), []byte(salt), argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return strings.Join([]string{argon2Prefix, salt, base64.RawStdEncoding.EncodeToString(key)}, "$"), nil
}

// HashPassword hashes password with a fresh salt.
func HashPassword(password string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return HashPasswordArgon2(password, salt)
}

// IsHashed reports whether s looks like an encoding produced by HashPassword.
func IsHashed(s string) bool {
	return strings.HasPrefix(s, argon2Prefix+"$")
}

// VerifyPassword compares password against an encoding produced by HashPassword.
func VerifyPassword(encoded, password string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != argon2Prefix || parts[1] == "" {
		return false, ErrInvalidHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if len(want) == 0 {
		return false, ErrInvalidHash
	}
	got := argon2.IDKey([]byte(password), []byte(parts[1]), argon2Time, argon2Memory, argon2Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}
