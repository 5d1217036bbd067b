// Package entity contains the core domain entities of the application.
// Entities are pure data structures with no dependency on infrastructure.
package entity

import "time"

// Account is the persisted identity record. An account is created exactly
// once at registration and is never mutated or deleted afterwards.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Phone        *string
	CreatedAt    time.Time
}

// PublicAccount is the subset of an Account that is safe to return to a
// client. It never carries the password hash.
type PublicAccount struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
}

// Public projects the account onto its client-safe representation.
func (a *Account) Public() *PublicAccount {
	if a == nil {
		return nil
	}

	return &PublicAccount{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Phone:    a.Phone,
	}
}
