package service

import "errors"

// Domain errors returned by the service layer. The HTTP layer maps each of
// these to a status code; match with [errors.Is] because validation errors
// arrive wrapped with field-level detail.
var (
	// ErrValidation is the base error for every rejected input. The wrapped
	// message names the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountInactive is returned on login when the password was correct
	// but the account is deactivated or still awaiting approval.
	ErrAccountInactive = errors.New("account is inactive or pending approval")

	// ErrAlreadyApproved is returned when approving or rejecting an account
	// that has already been approved.
	ErrAlreadyApproved = errors.New("user is already approved")

	// ErrSelfDeactivation is returned when an admin attempts to deactivate
	// their own account.
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")

	// ErrAlreadyInactive is returned when deactivating an account that is
	// already inactive.
	ErrAlreadyInactive = errors.New("user is already inactive")

	// ErrAlreadyActive is returned when reactivating an account that is
	// already active.
	ErrAlreadyActive = errors.New("user is already active")

	// ErrNotYetApproved is returned when reactivating an account that was
	// never approved; pending accounts go through approval, not
	// reactivation.
	ErrNotYetApproved = errors.New("user has not been approved")

	// ErrTokenExpired is returned by token parsing when the signature is
	// valid but the token has passed its expiry.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenInvalid is returned by token parsing on any other failure:
	// bad signature, wrong issuer, malformed input.
	ErrTokenInvalid = errors.New("token is invalid")
)
