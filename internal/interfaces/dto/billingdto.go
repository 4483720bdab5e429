package dto

import (
	"time"

	"gavel/internal/application/billing/usecases"
	"gavel/internal/domain/billing"
)

// PlanDTO is the HTTP representation of a catalog plan
type PlanDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	Interval     string    `json:"interval"`
	CreditAmount int       `json:"credit_amount"`
	Features     []string  `json:"features"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SubscriptionDTO is the HTTP representation of a subscription
type SubscriptionDTO struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	PlanID    uint      `json:"plan_id"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	PaymentID string    `json:"payment_id,omitempty"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// ActiveSubscriptionDTO joins a subscription with its plan details
type ActiveSubscriptionDTO struct {
	Subscription SubscriptionDTO `json:"subscription"`
	Plan         PlanDTO         `json:"plan"`
}

// PaymentMethodDTO is the HTTP representation of a stored charge instrument.
// Only display metadata leaves the server.
type PaymentMethodDTO struct {
	ID             uint      `json:"id"`
	CardholderName string    `json:"cardholder_name"`
	ExpiryMonth    string    `json:"expiry_month"`
	ExpiryYear     string    `json:"expiry_year"`
	LastFourDigits string    `json:"last_four_digits"`
	CardType       string    `json:"card_type"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

// PaymentDTO is the HTTP representation of a settled charge record
type PaymentDTO struct {
	ID              uint      `json:"id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	GatewayIntentID string    `json:"gateway_intent_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func PlanToDTO(plan *billing.Plan) PlanDTO {
	return PlanDTO{
		ID:           plan.ID(),
		Name:         plan.Name(),
		Description:  plan.Description(),
		Price:        plan.Price(),
		Interval:     string(plan.Interval()),
		CreditAmount: plan.CreditAmount(),
		Features:     plan.Features(),
		Status:       string(plan.Status()),
		CreatedAt:    plan.CreatedAt(),
		UpdatedAt:    plan.UpdatedAt(),
	}
}

func PlansToDTO(plans []*billing.Plan) []PlanDTO {
	dtos := make([]PlanDTO, 0, len(plans))
	for _, p := range plans {
		dtos = append(dtos, PlanToDTO(p))
	}
	return dtos
}

func SubscriptionToDTO(sub *billing.Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		ID:        sub.ID(),
		UserID:    sub.UserID(),
		PlanID:    sub.PlanID(),
		Status:    string(sub.Status()),
		StartDate: sub.StartDate(),
		EndDate:   sub.EndDate(),
		PaymentID: sub.PaymentID(),
		Amount:    sub.Amount(),
		CreatedAt: sub.CreatedAt(),
	}
}

func ActiveSubscriptionToDTO(active *usecases.ActiveSubscription) ActiveSubscriptionDTO {
	return ActiveSubscriptionDTO{
		Subscription: SubscriptionToDTO(active.Subscription),
		Plan:         PlanToDTO(active.Plan),
	}
}

func PaymentMethodToDTO(method *billing.PaymentMethod) PaymentMethodDTO {
	return PaymentMethodDTO{
		ID:             method.ID(),
		CardholderName: method.CardholderName(),
		ExpiryMonth:    method.ExpiryMonth(),
		ExpiryYear:     method.ExpiryYear(),
		LastFourDigits: method.LastFourDigits(),
		CardType:       method.CardType(),
		IsDefault:      method.IsDefault(),
		CreatedAt:      method.CreatedAt(),
	}
}

func PaymentMethodsToDTO(methods []*billing.PaymentMethod) []PaymentMethodDTO {
	dtos := make([]PaymentMethodDTO, 0, len(methods))
	for _, m := range methods {
		dtos = append(dtos, PaymentMethodToDTO(m))
	}
	return dtos
}

func PaymentToDTO(payment *billing.Payment) PaymentDTO {
	return PaymentDTO{
		ID:              payment.ID(),
		Amount:          payment.Amount(),
		Currency:        payment.Currency(),
		GatewayIntentID: payment.GatewayIntentID(),
		Status:          payment.Status(),
		CreatedAt:       payment.CreatedAt(),
	}
}

func PaymentsToDTO(payments []*billing.Payment) []PaymentDTO {
	dtos := make([]PaymentDTO, 0, len(payments))
	for _, p := range payments {
		dtos = append(dtos, PaymentToDTO(p))
	}
	return dtos
}
