package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gavel/internal/shared/constants"
)

// PlanModel is the persistence model for catalog plans. Price is stored in
// minor currency units; Features is a JSON array of feature labels.
type PlanModel struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"not null;size:100"`
	Description  string `gorm:"size:500"`
	Price        int64  `gorm:"not null;default:0"`
	Interval     string `gorm:"not null;size:20"`
	CreditAmount int    `gorm:"not null;default:0"`
	Features     datatypes.JSON
	Status       string `gorm:"not null;size:20;default:active;index:idx_plan_status"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}
