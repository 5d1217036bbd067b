package service

import "marquee/internal/errors"

// Token verification failure modes. The HTTP layer distinguishes them only
// for the error message; both map to 401.
var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

// TokenService defines the interface for issuing and verifying self-contained
// bearer tokens. Implementations are stateless apart from an immutable
// signing secret loaded at construction.
type TokenService interface {
	// Issue creates a signed token carrying {sub, iat, exp} for the given
	// account ID.
	Issue(subject int64) (string, error)

	// Verify checks the signature and expiry of a token and returns the
	// embedded subject. It fails with ErrTokenExpired past the expiry claim
	// and ErrTokenInvalid for any other defect.
	Verify(token string) (int64, error)
}
