package billing

import "errors"

var (
	ErrPaymentNotCompleted   = errors.New("payment not completed")
	ErrPlanNotFound          = errors.New("subscription plan not found")
	ErrPlanInactive          = errors.New("subscription plan inactive")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrAlreadyCancelled      = errors.New("subscription already cancelled")
	ErrInvalidTransition     = errors.New("invalid subscription status transition")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrGatewayFailure        = errors.New("charge gateway failure")
	ErrInvalidInterval       = errors.New("invalid billing interval")
	ErrInvalidPrice          = errors.New("invalid price")
)
