package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a password does not match the stored value.
var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordHasher defines how credentials are stored and compared.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored string, password string) error
}

// PlainHasher stores passwords as given and compares them verbatim.
// It is the default scheme.
type PlainHasher struct{}

// Hash returns password unchanged.
func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

// Compare checks password against the stored plain text.
func (PlainHasher) Compare(stored string, password string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// BcryptHasher uses bcrypt to hash passwords.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher with provided cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns bcrypt hash for provided password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Compare checks password against stored hash.
func (h *BcryptHasher) Compare(hash string, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
