// Package secret provides the password hashing capability
package secret

import (
	"errors"

	perr "spedicija/internal/platform/errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a password into an opaque hash and checks candidates against it
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Bcrypt is a Hasher backed by bcrypt
type Bcrypt struct {
	Cost int
}

// NewBcrypt returns a bcrypt Hasher; cost outside bcrypt's range uses the default
func NewBcrypt(cost int) Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Bcrypt{Cost: cost}
}

// Hash implements Hasher. Passwords over 72 bytes are rejected, not truncated
func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", perr.WithField(perr.Validationf("password must be at most 72 bytes"), "password")
		}
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "hash password")
	}
	return string(h), nil
}

// Verify implements Hasher
func (Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
