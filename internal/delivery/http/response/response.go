// Package response defines the wire shapes of the public API: {user, token}
// on success and {error} on failure.
package response

import (
	"marquee/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// AuthBody is the success body of register and login.
type AuthBody struct {
	User  *entity.PublicAccount `json:"user"`
	Token string                `json:"token"`
}

// UserBody is the success body of token-guarded account reads.
type UserBody struct {
	User *entity.PublicAccount `json:"user"`
}

// ErrorBody is the body of every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Auth writes the {user, token} success body.
func Auth(c echo.Context, statusCode int, user *entity.PublicAccount, token string) error {
	return c.JSON(statusCode, AuthBody{User: user, Token: token})
}

// User writes the {user} success body.
func User(c echo.Context, statusCode int, user *entity.PublicAccount) error {
	return c.JSON(statusCode, UserBody{User: user})
}

// Error writes the {error} body with the given status.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorBody{Error: message})
}
