package models

import (
	"time"

	"gorm.io/gorm"

	"gavel/internal/shared/constants"
)

// UserModel is the persistence model for users. Only the billing-relevant
// columns are mapped here; identity lives in the auth service.
type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	Name      string `gorm:"size:100"`
	Status    string `gorm:"not null;size:20;default:active"`
	Credits   int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
