package middleware

import (
	"strings"

	domainerrors "marquee/internal/domain/errors"
	"marquee/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContextKeyAccount is where Authenticate stores the resolved account on the
// echo context.
const ContextKeyAccount = "account"

// AuthMiddleware guards routes with bearer-token authentication. It is the
// in-process downstream consumer of token verification: tokens are
// self-contained, so a valid signature plus an unexpired claim is enough.
type AuthMiddleware struct {
	uc usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(uc usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{uc: uc}
}

// Authenticate validates the bearer token and stores the subject's public
// account on the context for handlers to use.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return errors.Wrap(domainerrors.ErrInvalidToken, "authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return errors.Wrap(domainerrors.ErrInvalidToken, "authorization header is not a bearer token")
		}

		account, err := m.uc.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(ContextKeyAccount, account)

		return next(c)
	}
}
