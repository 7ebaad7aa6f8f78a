// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/hex"
	"fmt"
)

// minTokenSignKeyBytes is the recommended lower bound for the token signing
// secret. Anything shorter makes brute-forcing the HMAC practical.
const minTokenSignKeyBytes = 32

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants. Missing or malformed key material halts the process
// here rather than degrading silently at first use: the cipher and token
// services re-check their own inputs defensively, but this is the gate that
// refuses to boot.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.CipherKey == "" {
		return fmt.Errorf("%w: cipher key is not configured", ErrInvalidAppConfigs)
	}
	if len(cfg.App.CipherKey) != 64 {
		return fmt.Errorf("%w: cipher key must be 64 hex characters (32 bytes), got %d", ErrInvalidAppConfigs, len(cfg.App.CipherKey))
	}
	if _, err := hex.DecodeString(cfg.App.CipherKey); err != nil {
		return fmt.Errorf("%w: cipher key is not valid hex: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is not configured", ErrInvalidAppConfigs)
	}
	if len(cfg.App.TokenSignKey) < minTokenSignKeyBytes {
		return fmt.Errorf("%w: token sign key must be at least %d bytes, got %d", ErrInvalidAppConfigs, minTokenSignKeyBytes, len(cfg.App.TokenSignKey))
	}

	if cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token issuer and duration must be set", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is not configured", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: HTTP address is not configured", ErrInvalidServerConfigs)
	}

	return nil
}
