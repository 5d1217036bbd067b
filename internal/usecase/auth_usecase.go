// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"marquee/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    *string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is the result of both flows: the client-safe account view and
// a freshly issued bearer token.
type AuthOutput struct {
	User  *entity.PublicAccount
	Token string
}

// AuthUsecase defines the interface for credential issuance and validation.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new account and issues a token for it.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a fresh token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Authenticate verifies a bearer token and loads its subject's account.
	// It is the downstream consumer path; register and login never call it.
	Authenticate(ctx context.Context, token string) (*entity.PublicAccount, error)
}
