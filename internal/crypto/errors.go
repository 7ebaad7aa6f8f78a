package crypto

import "errors"

var (
	// ErrInvalidKey is returned by NewSecretCipher when the configured key
	// is not exactly 64 hex characters (32 bytes). Construction happens at
	// process start, so this error is fatal to the boot sequence.
	ErrInvalidKey = errors.New("cipher key must be 64 hex characters (32 bytes)")

	// ErrDecryptionFailed is returned by SecretCipher.Decrypt on any
	// malformed input or padding violation. It is a server-fault condition:
	// log the wrapped detail, return a generic message to the client.
	ErrDecryptionFailed = errors.New("decryption failed")
)
