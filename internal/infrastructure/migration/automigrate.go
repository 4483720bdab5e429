package migration

import (
	"gavel/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.PaymentMethodModel{},
		&models.PaymentModel{},
	}
}
