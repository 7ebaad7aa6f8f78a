package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// SecretCipher encrypts and decrypts individual secret values with a
// static 256-bit key supplied once at process start. It knows nothing about
// the database or HTTP layer; its only job is protecting secrets at rest.
//
// Every Encrypt call draws a fresh random 16-byte IV, so encrypting the
// same plaintext twice yields different ciphertexts. Decrypt is only
// correct when given the exact IV returned by the matching Encrypt.
type SecretCipher interface {
	// Encrypt encrypts plaintext under a fresh random IV and returns the
	// hex-encoded ciphertext and the hex-encoded IV. The two values must be
	// stored together: neither is meaningful without the other.
	Encrypt(plaintext string) (ciphertextHex, ivHex string, err error)

	// Decrypt reverses Encrypt. It returns ErrDecryptionFailed if either
	// input is malformed or the padding check fails (wrong key, corrupted
	// row). A wrong IV that happens to survive the padding check still
	// yields garbage plaintext; CBC has no integrity tag to catch it.
	Decrypt(ciphertextHex, ivHex string) (string, error)
}

// PasswordHasher hashes login passwords with an adaptive one-way function
// and verifies candidate passwords against stored hashes. It never stores
// or logs plaintext.
type PasswordHasher interface {
	// Hash returns the salted adaptive hash of password. The cost factor is
	// embedded in the hash itself, so raising the configured cost never
	// invalidates previously stored hashes.
	Hash(password string) (string, error)

	// Verify reports whether password matches the stored hash.
	Verify(password, hash string) bool
}
