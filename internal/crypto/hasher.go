package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the cost factor used when the configuration does not
// specify one. Cost 10 keeps interactive login latency in the tens of
// milliseconds on current hardware.
const DefaultBcryptCost = 10

// passwordHasher is the private implementation of [PasswordHasher] backed
// by bcrypt. The cost lives in the struct so it can be raised per
// deployment as hardware improves; already-stored hashes keep working
// because bcrypt embeds the cost in the hash string.
type passwordHasher struct {
	cost int
}

// NewPasswordHasher constructs a [PasswordHasher] with the given bcrypt
// cost. A cost outside bcrypt's supported range falls back to
// DefaultBcryptCost.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &passwordHasher{cost: cost}
}

// Hash implements [PasswordHasher].
func (h *passwordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify implements [PasswordHasher]. The comparison cost is taken from the
// stored hash, not from the receiver.
func (h *passwordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
