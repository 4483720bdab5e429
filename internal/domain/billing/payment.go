package billing

import (
	"fmt"
	"time"
)

// Payment records a settled gateway charge for audit. One row per confirmed
// purchase or renewal charge.
type Payment struct {
	id              uint
	userID          uint
	amount          int64
	currency        string
	gatewayIntentID string
	status          string
	createdAt       time.Time
}

func NewPayment(userID uint, amount int64, currency, gatewayIntentID, status string) (*Payment, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if gatewayIntentID == "" {
		return nil, fmt.Errorf("gateway intent ID is required")
	}
	if currency == "" {
		currency = "usd"
	}
	if status == "" {
		status = "succeeded"
	}

	return &Payment{
		userID:          userID,
		amount:          amount,
		currency:        currency,
		gatewayIntentID: gatewayIntentID,
		status:          status,
		createdAt:       time.Now().UTC(),
	}, nil
}

func ReconstructPayment(id, userID uint, amount int64, currency, gatewayIntentID, status string, createdAt time.Time) (*Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	return &Payment{
		id:              id,
		userID:          userID,
		amount:          amount,
		currency:        currency,
		gatewayIntentID: gatewayIntentID,
		status:          status,
		createdAt:       createdAt,
	}, nil
}

func (p *Payment) ID() uint                { return p.id }
func (p *Payment) UserID() uint            { return p.userID }
func (p *Payment) Amount() int64           { return p.amount }
func (p *Payment) Currency() string        { return p.currency }
func (p *Payment) GatewayIntentID() string { return p.gatewayIntentID }
func (p *Payment) Status() string          { return p.status }
func (p *Payment) CreatedAt() time.Time    { return p.createdAt }

func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID already set")
	}
	if id == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = id
	return nil
}
