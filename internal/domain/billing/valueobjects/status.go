package valueobjects

// SubscriptionStatus is the persisted lifecycle state of a subscription.
//
// ACTIVE    - current paid subscription, at most one per user
// INACTIVE  - superseded by a newer purchase
// CANCELLED - terminated by the user
// EXPIRED   - lapsed through failed or impossible renewal
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "ACTIVE"
	StatusInactive  SubscriptionStatus = "INACTIVE"
	StatusCancelled SubscriptionStatus = "CANCELLED"
	StatusExpired   SubscriptionStatus = "EXPIRED"
)

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:    true,
	StatusInactive:  true,
	StatusCancelled: true,
	StatusExpired:   true,
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	return ValidStatuses[s]
}

// IsTerminal reports whether the status permits no further transitions.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusActive:    {StatusInactive, StatusCancelled, StatusExpired, StatusActive},
		StatusInactive:  {StatusCancelled},
		StatusCancelled: {},
		StatusExpired:   {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}
