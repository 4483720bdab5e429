package models

import (
	"time"

	"gavel/internal/shared/constants"
)

// PaymentModel is the persistence model for settled charge audit records.
type PaymentModel struct {
	ID              uint   `gorm:"primarykey"`
	UserID          uint   `gorm:"not null;index:idx_user_payment"`
	Amount          int64  `gorm:"not null"`
	Currency        string `gorm:"not null;size:10;default:usd"`
	GatewayIntentID string `gorm:"not null;size:100;index:idx_gateway_intent"`
	Status          string `gorm:"not null;size:30;default:succeeded"`
	CreatedAt       time.Time
}

func (PaymentModel) TableName() string {
	return constants.TablePayments
}
