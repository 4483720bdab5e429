package models

import (
	"time"

	"gavel/internal/shared/constants"
)

// SubscriptionModel is the persistence model for subscriptions. This is the
// anti-corruption layer between domain and database. Rows are never deleted;
// terminal statuses stay in the table for audit.
type SubscriptionModel struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"not null;index:idx_user_subscription"`
	PlanID    uint      `gorm:"not null;index:idx_plan_subscription"`
	Status    string    `gorm:"not null;size:20;index:idx_status"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null;index:idx_end_date"`
	PaymentID string    `gorm:"size:100"`
	Amount    int64     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
