package models

import (
	"time"

	"gavel/internal/shared/constants"
)

// PaymentMethodModel is the persistence model for stored charge instruments.
// Only gateway tokens and display metadata are persisted; raw card numbers
// never reach this table.
type PaymentMethodModel struct {
	ID              uint   `gorm:"primarykey"`
	UserID          uint   `gorm:"not null;index:idx_user_payment_method"`
	GatewayMethodID string `gorm:"not null;size:100"`
	CardholderName  string `gorm:"size:100"`
	ExpiryMonth     string `gorm:"size:2"`
	ExpiryYear      string `gorm:"size:4"`
	LastFourDigits  string `gorm:"not null;size:4"`
	CardType        string `gorm:"not null;size:20"`
	IsDefault       bool   `gorm:"not null;default:false;index:idx_default_method"`
	Active          bool   `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PaymentMethodModel) TableName() string {
	return constants.TablePaymentMethods
}
