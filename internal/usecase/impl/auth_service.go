// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "marquee/internal/delivery/context"
	"marquee/internal/domain/entity"
	domainerrors "marquee/internal/domain/errors"
	"marquee/internal/domain/repository"
	"marquee/internal/domain/service"
	"marquee/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It holds no state across
// calls; the only shared resources are the connection pool behind the
// repository and the token service's immutable secret.
type authService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the account registration flow: validate, pre-check
// uniqueness, hash, insert, issue a token. Validation happens before any
// side effect. The pre-check only buys a friendly error in the common case;
// the database constraint at insert time is authoritative and covers the
// window where two requests pass the pre-check together.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if input == nil || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, errors.WithStack(domainerrors.ErrRegisterFieldsRequired)
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	existing, err := srv.accountRepo.FindByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Error("Failed to pre-check account uniqueness", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to pre-check account uniqueness")
	}
	if existing != nil {
		return nil, errors.Wrap(domainerrors.ErrAccountConflict, "registration pre-check found existing account")
	}

	// bcrypt is CPU-bound by design; no pool connection is held while it runs.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	account := &entity.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Phone:        input.Phone,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		// The conflict AppError passes through untouched so the losing side
		// of a pre-check race gets the same answer as a plain duplicate.
		srv.log(ctx).Warn("Failed to create account", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account")
	}

	token, err := srv.tokenService.Issue(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Int64("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("accountID", account.ID))

	return &usecase.AuthOutput{User: account.Public(), Token: token}, nil
}

// Login verifies credentials and issues a fresh token. An unknown email and
// a wrong password produce the same error so accounts cannot be enumerated.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input == nil || input.Email == "" || input.Password == "" {
		return nil, errors.WithStack(domainerrors.ErrLoginFieldsRequired)
	}

	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		srv.log(ctx).Error("Failed to load account for login", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// Check password outside any store interaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.Issue(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after login", slog.Int64("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	srv.log(ctx).Debug("Login completed", slog.Int64("accountID", account.ID))

	return &usecase.AuthOutput{User: account.Public(), Token: token}, nil
}

// Authenticate verifies a bearer token and resolves its subject. This is the
// downstream consumer path for self-contained tokens; no revocation list is
// consulted.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.PublicAccount, error) {
	subject, err := srv.tokenService.Verify(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, errors.Wrap(domainerrors.ErrTokenExpired, "token verification failed")
		}

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "token verification failed")
	}

	account, err := srv.accountRepo.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// A valid signature over a subject that no longer resolves still
			// reads as an invalid token to the caller.
			return nil, errors.Wrap(domainerrors.ErrInvalidToken, "token subject not found")
		}

		return nil, errors.Wrap(err, "failed to load account for token subject")
	}

	return account.Public(), nil
}
