// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, HTTP response
// writing, and Authorization header parsing.
package utils

import (
	"context"

	"github.com/mfedotov/credvault/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey is the key under which the authenticated principal (the
// live user record resolved by the auth middleware) is stored in the
// request context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.PrincipalCtxKey, user)
var PrincipalCtxKey = contextKey("principal")

// GetPrincipalFromContext retrieves the authenticated principal from the
// context.
//
// Returns the user and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetPrincipalFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(PrincipalCtxKey).(models.User)
	return user, ok
}
