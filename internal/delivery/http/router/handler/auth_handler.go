// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"marquee/internal/delivery/http/middleware"
	"marquee/internal/delivery/http/response"
	"marquee/internal/domain/entity"
	domainerrors "marquee/internal/domain/errors"
	"marquee/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the credential endpoints.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerRequest struct {
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Phone    *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errors.Wrap(domainerrors.ErrRegisterFieldsRequired, "failed to bind register request")
	}
	if err := c.Validate(&req); err != nil {
		return errors.Wrap(domainerrors.ErrRegisterFieldsRequired, err.Error())
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Auth(c, http.StatusCreated, output.User, output.Token)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errors.Wrap(domainerrors.ErrLoginFieldsRequired, "failed to bind login request")
	}
	if err := c.Validate(&req); err != nil {
		return errors.Wrap(domainerrors.ErrLoginFieldsRequired, err.Error())
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Auth(c, http.StatusOK, output.User, output.Token)
}

// Profile handles GET /api/auth/profile, guarded by the bearer-token
// middleware which stores the resolved account on the context.
func (h *AuthHandler) Profile(c echo.Context) error {
	account, ok := c.Get(middleware.ContextKeyAccount).(*entity.PublicAccount)
	if !ok || account == nil {
		return errors.Wrap(domainerrors.ErrInvalidToken, "no authenticated account on context")
	}

	return response.User(c, http.StatusOK, account)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
