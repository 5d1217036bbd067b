// Package repository defines the persistence contracts of the domain layer.
// Concrete implementations live under internal/infra/persistence.
package repository

import (
	"context"

	"marquee/internal/domain/entity"
	"marquee/internal/errors"
)

// ErrAccountNotFound is returned when no account matches a lookup. It is a
// sentinel so callers can distinguish "absent" from a store failure.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository is the credential store: durable storage and lookup of
// account records. Every operation checks a single connection out of the
// shared pool for the duration of one statement and releases it on all exit
// paths; no operation spans multiple statements.
type AccountRepository interface {
	// FindByEmailOrUsername returns the first account matching either value.
	// It exists only as a uniqueness pre-check; the database constraint
	// remains the authoritative guard.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.Account, error)

	// Create persists a new account and fills in its assigned ID. A
	// uniqueness violation at the storage layer surfaces as the conflict
	// AppError, covering the race window after a passing pre-check.
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail returns the account for a login attempt, including its
	// stored password hash.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID resolves a verified token subject back to its account.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)
}
