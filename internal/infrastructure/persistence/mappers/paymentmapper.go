package mappers

import (
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/infrastructure/persistence/models"
	"gavel/internal/shared/mapper"
)

type PaymentMapper interface {
	ToEntity(model *models.PaymentModel) (*billing.Payment, error)
	ToModel(entity *billing.Payment) (*models.PaymentModel, error)
	ToEntities(models []*models.PaymentModel) ([]*billing.Payment, error)
}

type PaymentMapperImpl struct{}

func NewPaymentMapper() PaymentMapper {
	return &PaymentMapperImpl{}
}

func (m *PaymentMapperImpl) ToEntity(model *models.PaymentModel) (*billing.Payment, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := billing.ReconstructPayment(
		model.ID,
		model.UserID,
		model.Amount,
		model.Currency,
		model.GatewayIntentID,
		model.Status,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct payment entity: %w", err)
	}

	return entity, nil
}

func (m *PaymentMapperImpl) ToModel(entity *billing.Payment) (*models.PaymentModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PaymentModel{
		ID:              entity.ID(),
		UserID:          entity.UserID(),
		Amount:          entity.Amount(),
		Currency:        entity.Currency(),
		GatewayIntentID: entity.GatewayIntentID(),
		Status:          entity.Status(),
		CreatedAt:       entity.CreatedAt(),
	}, nil
}

func (m *PaymentMapperImpl) ToEntities(modelList []*models.PaymentModel) ([]*billing.Payment, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PaymentModel) uint { return model.ID })
}
