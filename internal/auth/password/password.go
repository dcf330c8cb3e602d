package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const MinLength = 8

var ErrTooShort = fmt.Errorf("password must be at least %d characters", MinLength)

var ErrMismatch = errors.New("password mismatch")

func HashPassword(password string) (string, error) {
	if len(password) < MinLength {
		return "", ErrTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func CheckPassword(password, hashedPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}
