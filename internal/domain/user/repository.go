package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	// GetCredits returns the current balance for the user.
	GetCredits(ctx context.Context, id uint) (int, error)
	// SetCredits replaces the balance outright.
	SetCredits(ctx context.Context, id uint, credits int) error
	// AddCredits atomically increments the balance.
	AddCredits(ctx context.Context, id uint, delta int) error
}
