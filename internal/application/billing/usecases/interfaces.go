package usecases

import (
	"context"

	"gavel/internal/domain/billing"
)

// UserCreditStore is the slice of the user repository the billing core needs.
type UserCreditStore interface {
	GetCredits(ctx context.Context, id uint) (int, error)
	SetCredits(ctx context.Context, id uint, credits int) error
	AddCredits(ctx context.Context, id uint, delta int) error
}

// SubscriptionCache fronts the active-subscription lookup. Implementations
// must be safe to skip: a nil cache disables caching.
type SubscriptionCache interface {
	GetActive(ctx context.Context, userID uint) (*ActiveSubscription, bool, error)
	SetActive(ctx context.Context, userID uint, sub *ActiveSubscription) error
	Invalidate(ctx context.Context, userID uint) error
}

// ExpiryNotifier tells a user their subscription lapsed. Renewal treats
// notification errors as non-fatal.
type ExpiryNotifier interface {
	NotifyExpired(ctx context.Context, userID uint, planName string) error
}

// ActiveSubscription is the subscription joined with its plan, as returned to
// callers of the active-subscription query.
type ActiveSubscription struct {
	Subscription *billing.Subscription
	Plan         *billing.Plan
}
