package managers

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is the one-way hashing capability used wherever a password
// value changes. It is an interface so tests can substitute a fast stub for
// the deliberately slow production implementation.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(digest, plaintext string) error
}

// BcryptHasher implements PasswordHasher on top of bcrypt with the default
// cost, which puts a single verification in the tens-of-milliseconds range.
type BcryptHasher struct{}

// NewBcryptHasher returns the production password hasher.
func NewBcryptHasher() PasswordHasher {
	return &BcryptHasher{}
}

// Hash derives a salted bcrypt digest from the plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare reports whether the plaintext matches the stored digest. A malformed
// digest yields an error, never a panic.
func (h *BcryptHasher) Compare(digest, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
}
