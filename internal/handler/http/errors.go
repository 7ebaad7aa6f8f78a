// SPDX-License-Identifier: Apache-2.0

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but does not carry a bearer token value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrForbidden is returned when the authenticated principal's role does
	// not grant the requested operation.
	ErrForbidden = errors.New("insufficient permissions")
)
