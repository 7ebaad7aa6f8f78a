package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the identity payload embedded in every signed session token.
//
// It extends the standard registered claim set (iss, sub, iat, exp) with the
// application fields the authorization layer needs on each request. Claims
// are a point-in-time snapshot of the user row at login: the middleware
// re-resolves the account against persistence and must not trust them for
// liveness of the account.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the account identifier the token was issued for.
	UserID int64 `json:"user_id"`

	// Username is the login name at issuance time.
	Username string `json:"username"`

	// Email is the account email at issuance time.
	Email string `json:"email"`

	// Role is the access level at issuance time.
	Role Role `json:"role"`
}

// Token pairs parsed claims with the compact signed representation
// (base64url-encoded header.payload.signature) ready to be transmitted in
// the Authorization header.
type Token struct {
	// Claims is the decoded identity payload.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS serialization of the token.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
