package mappers

import (
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/infrastructure/persistence/models"
	"gavel/internal/shared/mapper"
)

type PaymentMethodMapper interface {
	ToEntity(model *models.PaymentMethodModel) (*billing.PaymentMethod, error)
	ToModel(entity *billing.PaymentMethod) (*models.PaymentMethodModel, error)
	ToEntities(models []*models.PaymentMethodModel) ([]*billing.PaymentMethod, error)
}

type PaymentMethodMapperImpl struct{}

func NewPaymentMethodMapper() PaymentMethodMapper {
	return &PaymentMethodMapperImpl{}
}

func (m *PaymentMethodMapperImpl) ToEntity(model *models.PaymentMethodModel) (*billing.PaymentMethod, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := billing.ReconstructPaymentMethod(
		model.ID,
		model.UserID,
		model.GatewayMethodID,
		model.CardholderName,
		model.ExpiryMonth,
		model.ExpiryYear,
		model.LastFourDigits,
		model.CardType,
		model.IsDefault,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct payment method entity: %w", err)
	}

	return entity, nil
}

func (m *PaymentMethodMapperImpl) ToModel(entity *billing.PaymentMethod) (*models.PaymentMethodModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PaymentMethodModel{
		ID:              entity.ID(),
		UserID:          entity.UserID(),
		GatewayMethodID: entity.GatewayMethodID(),
		CardholderName:  entity.CardholderName(),
		ExpiryMonth:     entity.ExpiryMonth(),
		ExpiryYear:      entity.ExpiryYear(),
		LastFourDigits:  entity.LastFourDigits(),
		CardType:        entity.CardType(),
		IsDefault:       entity.IsDefault(),
		Active:          entity.IsActive(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

func (m *PaymentMethodMapperImpl) ToEntities(modelList []*models.PaymentMethodModel) ([]*billing.PaymentMethod, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PaymentMethodModel) uint { return model.ID })
}
