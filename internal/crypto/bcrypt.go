package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/bookshelf-server/internal/model"
)

var _ model.CredentialVerifier = (*Bcrypt)(nil)

// Bcrypt implements model.CredentialVerifier with bcrypt hashes.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a verifier hashing with the given cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Encode hashes plaintext.
func (b *Bcrypt) Encode(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Matches reports whether plaintext hashes to encoded.
func (b *Bcrypt) Matches(plaintext, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plaintext)) == nil
}
