package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies credentials with bcrypt. Hashing is
// CPU-expensive, so calls to Hash are limited by a fixed number of worker
// slots to keep heavy registration load from starving request intake.
type PasswordHasher struct {
	cost  int
	slots chan struct{}
}

// NewPasswordHasher creates a hasher with the given number of concurrent
// hashing slots
func NewPasswordHasher(workers int) *PasswordHasher {
	if workers < 1 {
		workers = 1
	}
	return &PasswordHasher{
		cost:  bcrypt.DefaultCost,
		slots: make(chan struct{}, workers),
	}
}

// Hash produces a salted bcrypt digest; every call salts freshly, so the
// same password never hashes to the same string twice
func (p *PasswordHasher) Hash(password string) (string, error) {
	p.slots <- struct{}{}
	defer func() { <-p.slots }()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash. A wrong password
// and a malformed hash both verify false; neither is an error to the caller.
func (p *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
