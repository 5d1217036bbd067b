package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"marquee/config"
	"marquee/internal/domain/service"
	"marquee/internal/errors"
)

// tokenTTL is the fixed lifetime of every issued token: exp = iat + 7 days.
const tokenTTL = 7 * 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// The signing secret is loaded once at construction and never changes for
// the process lifetime.
type jwtService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Signing),
		now:    time.Now,
	}, nil
}

// Issue creates a signed token embedding {sub, iat, exp} for the account ID.
func (s *jwtService) Issue(subject int64) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(subject, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the signature and expiry claim and returns the embedded
// subject. Expiry maps to ErrTokenExpired; every other defect, including a
// non-numeric subject, maps to ErrTokenInvalid.
func (s *jwtService) Verify(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errors.Wrap(service.ErrTokenExpired, err.Error())
		}

		return 0, errors.Wrap(service.ErrTokenInvalid, err.Error())
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, errors.WithStack(service.ErrTokenInvalid)
	}

	subject, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.Wrap(service.ErrTokenInvalid, "non-numeric subject")
	}

	return subject, nil
}
