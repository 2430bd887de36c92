package domain

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoCredential is returned by a session store when nothing is held for a session.
var ErrNoCredential = errors.New("no credential stored")

// Credential is the opaque bearer token issued by the backend on login. Admin and
// client tokens are not told apart here; the backend infers the role from its claims.
type Credential string

func (c Credential) Empty() bool {
	return c == ""
}

// Principal returns the identity carried in the token's "sub" claim, for display only.
// The signature is not checked: the backend remains the only authority on the token.
func (c Credential) Principal() string {
	if c.Empty() {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(string(c), claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
