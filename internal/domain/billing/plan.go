package billing

import (
	"fmt"
	"time"

	vo "gavel/internal/domain/billing/valueobjects"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

// Plan is a catalog entry. Price is stored in minor currency units; the HTTP
// layer converts from major units at the boundary. CreditAmount is the number
// of credits granted on purchase and on each renewal.
type Plan struct {
	id           uint
	name         string
	description  string
	price        int64
	interval     vo.BillingInterval
	creditAmount int
	features     []string
	status       PlanStatus
	createdAt    time.Time
	updatedAt    time.Time
}

func NewPlan(name, description string, price int64, interval vo.BillingInterval, creditAmount int, features []string) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if !interval.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	if creditAmount < 0 {
		return nil, fmt.Errorf("credit amount cannot be negative")
	}
	if features == nil {
		features = []string{}
	}

	now := time.Now().UTC()
	return &Plan{
		name:         name,
		description:  description,
		price:        price,
		interval:     interval,
		creditAmount: creditAmount,
		features:     features,
		status:       PlanStatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructPlan(id uint, name, description string, price int64, interval vo.BillingInterval,
	creditAmount int, features []string, status string, createdAt, updatedAt time.Time) (*Plan, error) {

	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}

	planStatus := PlanStatus(status)
	if planStatus != PlanStatusActive && planStatus != PlanStatusInactive {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}

	if features == nil {
		features = []string{}
	}

	return &Plan{
		id:           id,
		name:         name,
		description:  description,
		price:        price,
		interval:     interval,
		creditAmount: creditAmount,
		features:     features,
		status:       planStatus,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Plan) ID() uint                      { return p.id }
func (p *Plan) Name() string                  { return p.name }
func (p *Plan) Description() string           { return p.description }
func (p *Plan) Price() int64                  { return p.price }
func (p *Plan) Interval() vo.BillingInterval  { return p.interval }
func (p *Plan) CreditAmount() int             { return p.creditAmount }
func (p *Plan) Features() []string            { return p.features }
func (p *Plan) Status() PlanStatus            { return p.status }
func (p *Plan) CreatedAt() time.Time          { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time          { return p.updatedAt }

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Plan) IsActive() bool {
	return p.status == PlanStatusActive
}

type PlanUpdate struct {
	Name         *string
	Description  *string
	Price        *int64
	Interval     *vo.BillingInterval
	CreditAmount *int
	Features     []string
	Status       *PlanStatus
}

// Apply mutates the plan with the provided fields.
func (p *Plan) Apply(update PlanUpdate) error {
	if update.Name != nil {
		if *update.Name == "" {
			return fmt.Errorf("plan name cannot be empty")
		}
		p.name = *update.Name
	}
	if update.Description != nil {
		p.description = *update.Description
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return ErrInvalidPrice
		}
		p.price = *update.Price
	}
	if update.Interval != nil {
		if !update.Interval.IsValid() {
			return fmt.Errorf("%w: %s", ErrInvalidInterval, *update.Interval)
		}
		p.interval = *update.Interval
	}
	if update.CreditAmount != nil {
		if *update.CreditAmount < 0 {
			return fmt.Errorf("credit amount cannot be negative")
		}
		p.creditAmount = *update.CreditAmount
	}
	if update.Features != nil {
		p.features = update.Features
	}
	if update.Status != nil {
		if *update.Status != PlanStatusActive && *update.Status != PlanStatusInactive {
			return fmt.Errorf("invalid plan status: %s", *update.Status)
		}
		p.status = *update.Status
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate hides the plan from the catalog without touching existing subscriptions.
func (p *Plan) Deactivate() {
	p.status = PlanStatusInactive
	p.updatedAt = time.Now().UTC()
}
