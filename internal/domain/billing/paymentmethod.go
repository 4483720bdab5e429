package billing

import (
	"fmt"
	"time"
)

// PaymentMethod references a charge instrument stored at the gateway. The raw
// card number never reaches this system; the gateway method ID is the only
// handle renewal charges use.
type PaymentMethod struct {
	id              uint
	userID          uint
	gatewayMethodID string
	cardholderName  string
	expiryMonth     string
	expiryYear      string
	lastFourDigits  string
	cardType        string
	isDefault       bool
	active          bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewPaymentMethod(userID uint, gatewayMethodID, cardholderName, expiryMonth, expiryYear, lastFour, cardType string) (*PaymentMethod, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if gatewayMethodID == "" {
		return nil, fmt.Errorf("gateway payment method ID is required")
	}
	if len(lastFour) != 4 {
		return nil, fmt.Errorf("last four digits must be exactly 4 characters")
	}
	if cardType == "" {
		return nil, fmt.Errorf("card type is required")
	}

	now := time.Now().UTC()
	return &PaymentMethod{
		userID:          userID,
		gatewayMethodID: gatewayMethodID,
		cardholderName:  cardholderName,
		expiryMonth:     expiryMonth,
		expiryYear:      expiryYear,
		lastFourDigits:  lastFour,
		cardType:        cardType,
		isDefault:       true,
		active:          true,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructPaymentMethod(id, userID uint, gatewayMethodID, cardholderName, expiryMonth, expiryYear,
	lastFour, cardType string, isDefault, active bool, createdAt, updatedAt time.Time) (*PaymentMethod, error) {

	if id == 0 {
		return nil, fmt.Errorf("payment method ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &PaymentMethod{
		id:              id,
		userID:          userID,
		gatewayMethodID: gatewayMethodID,
		cardholderName:  cardholderName,
		expiryMonth:     expiryMonth,
		expiryYear:      expiryYear,
		lastFourDigits:  lastFour,
		cardType:        cardType,
		isDefault:       isDefault,
		active:          active,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (m *PaymentMethod) ID() uint                { return m.id }
func (m *PaymentMethod) UserID() uint            { return m.userID }
func (m *PaymentMethod) GatewayMethodID() string { return m.gatewayMethodID }
func (m *PaymentMethod) CardholderName() string  { return m.cardholderName }
func (m *PaymentMethod) ExpiryMonth() string     { return m.expiryMonth }
func (m *PaymentMethod) ExpiryYear() string      { return m.expiryYear }
func (m *PaymentMethod) LastFourDigits() string  { return m.lastFourDigits }
func (m *PaymentMethod) CardType() string        { return m.cardType }
func (m *PaymentMethod) IsDefault() bool         { return m.isDefault }
func (m *PaymentMethod) IsActive() bool          { return m.active }
func (m *PaymentMethod) CreatedAt() time.Time    { return m.createdAt }
func (m *PaymentMethod) UpdatedAt() time.Time    { return m.updatedAt }

func (m *PaymentMethod) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("payment method ID already set")
	}
	if id == 0 {
		return fmt.Errorf("payment method ID cannot be zero")
	}
	m.id = id
	return nil
}

// Deactivate soft-deletes the stored method.
func (m *PaymentMethod) Deactivate() {
	m.active = false
	m.isDefault = false
	m.updatedAt = time.Now().UTC()
}

func (m *PaymentMethod) MarkDefault() {
	m.isDefault = true
	m.updatedAt = time.Now().UTC()
}
