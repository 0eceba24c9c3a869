package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest input bcrypt accepts.
const MaxLength = 72

var (
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrTooLong         = fmt.Errorf("password cannot exceed %d bytes", MaxLength)
	ErrInvalidPassword = errors.New("invalid password")
)

func Hash(plain string) (string, error) {
	return HashWithCost(plain, bcrypt.DefaultCost)
}

func HashWithCost(plain string, cost int) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmptyPassword
	case len(plain) > MaxLength:
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrInvalidPassword when plain does not match hash. Other errors mean the hash is unusable.
func Verify(plain, hash string) error {
	if plain == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("verify password: %w", err)
	}
}
