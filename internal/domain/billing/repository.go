package billing

import (
	"context"
	"time"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetByIDAndUserID(ctx context.Context, id, userID uint) (*Subscription, error)
	// GetActiveByUserID returns the user's ACTIVE subscription or nil.
	GetActiveByUserID(ctx context.Context, userID uint) (*Subscription, error)
	Update(ctx context.Context, subscription *Subscription) error
	List(ctx context.Context) ([]*Subscription, error)

	// FindExpiringWithin returns ACTIVE subscriptions whose end date lies in
	// the half-open window (now, now+horizon].
	FindExpiringWithin(ctx context.Context, now time.Time, horizon time.Duration) ([]*Subscription, error)

	// ActivateExclusively demotes any existing ACTIVE subscription of the
	// user to INACTIVE, inserts the new one and grants creditDelta credits,
	// in a single transaction with a row lock on the prior active row. This
	// is what enforces the one-active-subscription-per-user invariant under
	// concurrent purchases and keeps credit and status changes atomic.
	ActivateExclusively(ctx context.Context, subscription *Subscription, creditDelta int) error
}

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	ListActive(ctx context.Context) ([]*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
}

type PaymentMethodRepository interface {
	Create(ctx context.Context, method *PaymentMethod) error
	GetByID(ctx context.Context, id uint) (*PaymentMethod, error)
	// GetDefaultByUserID returns the user's default active method or nil.
	GetDefaultByUserID(ctx context.Context, userID uint) (*PaymentMethod, error)
	ListByUserID(ctx context.Context, userID uint) ([]*PaymentMethod, error)
	Update(ctx context.Context, method *PaymentMethod) error
	// SetDefaultExclusively stores the method as the user's only default,
	// clearing the flag on every other method inside one transaction so the
	// renewal sweep never observes zero or two defaults. A method without an
	// ID is inserted; an existing one is promoted.
	SetDefaultExclusively(ctx context.Context, method *PaymentMethod) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	ListByUserID(ctx context.Context, userID uint) ([]*Payment, error)
}
