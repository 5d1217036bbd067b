package impl

import (
	"context"
	"sync"
	"testing"

	domainerrors "marquee/internal/domain/errors"
	"marquee/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	phone := "+1-555-0100"
	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "Secret123",
		Phone:    &phone,
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	require.NotNil(t, output.User)
	assert.NotZero(t, output.User.ID)
	assert.Equal(t, "alice", output.User.Username)
	assert.Equal(t, "alice@x.com", output.User.Email)
	require.NotNil(t, output.User.Phone)
	assert.Equal(t, phone, *output.User.Phone)

	// The issued token must verify and carry the new account as subject.
	subject, err := fx.tokenService.Verify(output.Token)
	require.NoError(t, err)
	assert.Equal(t, output.User.ID, subject)
}

func TestAuthService_Register_HashNeverStoredAsPlaintext(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "Secret123",
	})
	require.NoError(t, err)

	stored, err := fx.repo.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestAuthService_Register_ValidationBeforeSideEffects(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	inputs := []*usecase.RegisterInput{
		{Username: "", Email: "a@b.com", Password: "x"},
		{Username: "alice", Email: "", Password: "x"},
		{Username: "alice", Email: "a@b.com", Password: ""},
		nil,
	}

	for _, input := range inputs {
		_, err := fx.service.Register(ctx, input)
		assert.ErrorIs(t, err, domainerrors.ErrRegisterFieldsRequired)
	}

	// No store operation may run before validation passes.
	assert.Zero(t, fx.repo.findCalls)
	assert.Zero(t, fx.repo.createCalls)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "Secret123",
	})
	require.NoError(t, err)

	// Same email, different username.
	_, err = fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice2", Email: "alice@x.com", Password: "Secret123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAccountConflict)

	// Same username, different email.
	_, err = fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice", Email: "other@x.com", Password: "Secret123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAccountConflict)
}

func TestAuthService_Register_InsertTimeConflictWinsOverPrecheck(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "Secret123",
	})
	require.NoError(t, err)

	// Simulate the race window: the pre-check misses the existing account,
	// so only the storage layer's constraint can reject the duplicate.
	fx.repo.skipPrecheck = true

	_, err = fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "impostor", Email: "alice@x.com", Password: "Secret123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAccountConflict)
}

func TestAuthService_Register_ConcurrentSameEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	// Blind the pre-check so every request reaches the insert, as in the
	// worst-case interleaving.
	fx.repo.skipPrecheck = true

	const attempts = 16

	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = fx.service.Register(ctx, &usecase.RegisterInput{
				Username: "alice",
				Email:    "alice@x.com",
				Password: "Secret123",
			})
		}()
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, domainerrors.ErrAccountConflict)
	}
	assert.Equal(t, 1, successes)

	// Exactly one account persisted.
	fx.repo.skipPrecheck = false
	account, err := fx.repo.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Len(t, fx.repo.accounts, 1)
	assert.Equal(t, "alice", account.Username)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "Secret123",
	})
	require.NoError(t, err)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@x.com",
		Password: "Secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, output.User.ID)

	subject, err := fx.tokenService.Verify(output.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, subject)
}

func TestAuthService_Login_Validation(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	for _, input := range []*usecase.LoginInput{
		{Email: "", Password: "x"},
		{Email: "a@b.com", Password: ""},
		nil,
	} {
		_, err := fx.service.Login(ctx, input)
		assert.ErrorIs(t, err, domainerrors.ErrLoginFieldsRequired)
	}
}

func TestAuthService_Login_NoAccountEnumeration(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "Secret123",
	})
	require.NoError(t, err)

	// Unknown email and wrong password must be indistinguishable.
	_, unknownErr := fx.service.Login(ctx, &usecase.LoginInput{
		Email: "nobody@x.com", Password: "whatever",
	})
	_, wrongPassErr := fx.service.Login(ctx, &usecase.LoginInput{
		Email: "alice@x.com", Password: "wrong",
	})

	require.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassErr, domainerrors.ErrInvalidCredentials)

	var unknownApp, wrongApp domainerrors.AppError
	require.True(t, errors.As(unknownErr, &unknownApp))
	require.True(t, errors.As(wrongPassErr, &wrongApp))
	assert.Equal(t, unknownApp.Message(), wrongApp.Message())
	assert.Equal(t, unknownApp.HTTPCode(), wrongApp.HTTPCode())
}

func TestAuthService_Authenticate(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "Secret123",
	})
	require.NoError(t, err)

	account, err := fx.service.Authenticate(ctx, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, account.ID)
	assert.Equal(t, "alice", account.Username)
}

func TestAuthService_Authenticate_InvalidToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_Authenticate_UnknownSubject(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	// A well-signed token whose subject was never persisted.
	token, err := fx.tokenService.Issue(9999)
	require.NoError(t, err)

	_, err = fx.service.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}
