package billing

import (
	"fmt"
	"time"

	vo "gavel/internal/domain/billing/valueobjects"
)

// Subscription is the aggregate root for a user's paid plan period. Rows are
// never physically deleted; superseded, cancelled and lapsed subscriptions
// stay in the table under their terminal status.
type Subscription struct {
	id        uint
	userID    uint
	planID    uint
	status    vo.SubscriptionStatus
	startDate time.Time
	endDate   time.Time
	paymentID string
	amount    int64
	createdAt time.Time
	updatedAt time.Time
}

// NewSubscription creates an ACTIVE subscription for a confirmed purchase.
func NewSubscription(userID, planID uint, startDate, endDate time.Time, paymentID string, amount int64) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}
	if paymentID == "" {
		return nil, fmt.Errorf("payment reference is required")
	}

	now := time.Now().UTC()
	return &Subscription{
		userID:    userID,
		planID:    planID,
		status:    vo.StatusActive,
		startDate: startDate,
		endDate:   endDate,
		paymentID: paymentID,
		amount:    amount,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	id, userID, planID uint,
	status vo.SubscriptionStatus,
	startDate, endDate time.Time,
	paymentID string,
	amount int64,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}

	return &Subscription{
		id:        id,
		userID:    userID,
		planID:    planID,
		status:    status,
		startDate: startDate,
		endDate:   endDate,
		paymentID: paymentID,
		amount:    amount,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (s *Subscription) ID() uint                      { return s.id }
func (s *Subscription) UserID() uint                  { return s.userID }
func (s *Subscription) PlanID() uint                  { return s.planID }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) StartDate() time.Time          { return s.startDate }
func (s *Subscription) EndDate() time.Time            { return s.endDate }
func (s *Subscription) PaymentID() string             { return s.paymentID }
func (s *Subscription) Amount() int64                 { return s.amount }
func (s *Subscription) CreatedAt() time.Time          { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time          { return s.updatedAt }

// SetID assigns the database-generated ID after insert.
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *Subscription) IsActive() bool {
	return s.status == vo.StatusActive
}

// Supersede demotes the subscription when a newer purchase activates. Dates
// are left untouched so the superseded period remains auditable.
func (s *Subscription) Supersede() error {
	if !s.status.CanTransitionTo(vo.StatusInactive) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, s.status, vo.StatusInactive)
	}
	s.status = vo.StatusInactive
	s.updatedAt = time.Now().UTC()
	return nil
}

// Cancel terminates the subscription at the user's request. A second cancel
// returns ErrAlreadyCancelled.
func (s *Subscription) Cancel(now time.Time) error {
	if s.status == vo.StatusCancelled {
		return ErrAlreadyCancelled
	}
	s.status = vo.StatusCancelled
	s.endDate = now
	s.updatedAt = now
	return nil
}

// Expire terminates the subscription because renewal failed or was impossible.
func (s *Subscription) Expire(now time.Time) {
	s.status = vo.StatusExpired
	s.endDate = now
	s.updatedAt = now
}

// RollForward shifts an ACTIVE subscription into its next paid period.
func (s *Subscription) RollForward(now, newEndDate time.Time) error {
	if s.status != vo.StatusActive {
		return fmt.Errorf("cannot renew subscription in status %s", s.status)
	}
	if !newEndDate.After(now) {
		return fmt.Errorf("new end date must be after renewal time")
	}
	s.startDate = now
	s.endDate = newEndDate
	s.updatedAt = now
	return nil
}
