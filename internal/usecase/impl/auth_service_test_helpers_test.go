package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"marquee/config"
	"marquee/internal/domain/entity"
	domainerrors "marquee/internal/domain/errors"
	"marquee/internal/domain/repository"
	"marquee/internal/domain/service"
	"marquee/internal/infra/auth"
	"marquee/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAccountRepo is an in-memory credential store. Its mutex makes the
// unique constraints exactly as authoritative as the database's, which is
// what the concurrent registration tests rely on.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts []*entity.Account
	nextID   int64

	// skipPrecheck simulates the race window: the pre-check reports no
	// match even when a conflicting row exists, leaving the insert-time
	// constraint as the only guard.
	skipPrecheck bool

	findCalls   int
	createCalls int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1}
}

func (f *fakeAccountRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.findCalls++

	if f.skipPrecheck {
		return nil, repository.ErrAccountNotFound
	}

	for _, account := range f.accounts {
		if account.Email == email || account.Username == username {
			clone := *account

			return &clone, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (f *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++

	for _, existing := range f.accounts {
		if existing.Email == account.Email || existing.Username == account.Username {
			return errors.Wrap(domainerrors.ErrAccountConflict, "unique constraint rejected insert")
		}
	}

	account.ID = f.nextID
	f.nextID++

	clone := *account
	f.accounts = append(f.accounts, &clone)

	return nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, account := range f.accounts {
		if account.Email == email {
			clone := *account

			return &clone, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id int64) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, account := range f.accounts {
		if account.ID == id {
			clone := *account

			return &clone, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	repo         *fakeAccountRepo
	tokenService service.TokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Signing = "test_signing_secret_very_long_for_testing"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	repo := newFakeAccountRepo()

	svc := NewAuthService(AuthServiceParams{
		AccountRepo:  repo,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return authServiceFixtures{
		service:      svc,
		repo:         repo,
		tokenService: tokenService,
	}
}
