package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mfedotov/credvault/internal/config"
	"github.com/mfedotov/credvault/models"
)

// tokenService is the concrete implementation of TokenService. Tokens are
// HMAC-SHA256 signed JWTs carrying the user's identity claims. Tokens are
// stateless: there is no server-side revocation list, and logging out
// means the client discards its token. A token stays valid until expiry.
type tokenService struct {
	signKey  []byte
	issuer   string
	duration time.Duration

	// now is the clock used for the iat/exp claims; tests substitute a
	// fixed time here.
	now func() time.Time
}

// NewTokenService constructs a TokenService from the application config.
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(cfg config.App) TokenService {
	return &tokenService{
		signKey:  []byte(cfg.TokenSignKey),
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		now:      time.Now,
	}
}

// CreateToken issues a signed JWT for the given user. The token carries the
// configured issuer as the "iss" claim, the user ID as the "sub" claim, and
// expires after the configured duration.
func (t *tokenService) CreateToken(user models.User) (models.Token, error) {
	issuedAt := t.now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.duration)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("token signing failed: %w", err)
	}

	return models.Token{Claims: claims, SignedString: signed}, nil
}

// ParseToken verifies the signature, issuer and expiry of a raw JWT string
// and returns the decoded token. Failures are normalised to ErrTokenExpired
// or ErrTokenInvalid so callers never inspect low-level JWT errors.
func (t *tokenService) ParseToken(tokenString string) (models.Token, error) {
	var claims models.Claims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims,
		func(token *jwt.Token) (any, error) {
			return t.signKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenExpired
		}
		return models.Token{}, ErrTokenInvalid
	}
	if !parsed.Valid {
		return models.Token{}, ErrTokenInvalid
	}

	return models.Token{Claims: claims, SignedString: tokenString}, nil
}
