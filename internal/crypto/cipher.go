// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// secretCipher is the private implementation of [SecretCipher].
// It holds the raw 32-byte key decoded once at construction; the key is
// immutable afterwards, so the type is safe for concurrent use.
type secretCipher struct {
	key []byte
}

// NewSecretCipher constructs a [SecretCipher] from a hex-encoded 256-bit
// key. The key must be exactly 64 hex characters (32 bytes); anything else
// returns ErrInvalidKey so that a misconfigured deployment fails at startup
// rather than at first use.
func NewSecretCipher(hexKey string) (SecretCipher, error) {
	if len(hexKey) != 64 {
		return nil, fmt.Errorf("%w: want 64 hex characters, got %d", ErrInvalidKey, len(hexKey))
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return &secretCipher{key: key}, nil
}

// Encrypt implements [SecretCipher]. It pads plaintext with PKCS#7, reads a
// random 16-byte IV from the OS CSPRNG, and encrypts with AES-256-CBC.
// Both outputs are hex-encoded.
func (c *secretCipher) Encrypt(plaintext string) (string, string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", "", fmt.Errorf("create cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", "", fmt.Errorf("generate iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(ciphertext), hex.EncodeToString(iv), nil
}

// Decrypt implements [SecretCipher]. Any structural defect — non-hex input,
// an IV that is not 16 bytes, a ciphertext that is empty or not a multiple
// of the block size, or an invalid PKCS#7 padding after decryption — is
// reported as ErrDecryptionFailed. The concrete cause is wrapped for
// server-side logs; callers must not forward it to clients.
func (c *secretCipher) Decrypt(ciphertextHex, ivHex string) (string, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("%w: decode ciphertext: %w", ErrDecryptionFailed, err)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", fmt.Errorf("%w: decode iv: %w", ErrDecryptionFailed, err)
	}
	if len(iv) != aes.BlockSize {
		return "", fmt.Errorf("%w: iv is %d bytes, want %d", ErrDecryptionFailed, len(iv), aes.BlockSize)
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d is not a positive multiple of the block size", ErrDecryptionFailed, len(ciphertext))
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return string(unpadded), nil
}

// pkcs7Pad appends 1..blockSize padding bytes, each holding the padding
// length, so the result is a whole number of blocks.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// pkcs7Unpad validates and strips PKCS#7 padding. Every padding byte is
// checked, not just the last one, so a corrupted tail is always rejected.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding value %d", n)
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}

	return data[:len(data)-n], nil
}
