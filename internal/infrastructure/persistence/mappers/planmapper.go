package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"gavel/internal/domain/billing"
	vo "gavel/internal/domain/billing/valueobjects"
	"gavel/internal/infrastructure/persistence/models"
	"gavel/internal/shared/mapper"
)

type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*billing.Plan, error)
	ToModel(entity *billing.Plan) (*models.PlanModel, error)
	ToEntities(models []*models.PlanModel) ([]*billing.Plan, error)
}

type PlanMapperImpl struct{}

func NewPlanMapper() PlanMapper {
	return &PlanMapperImpl{}
}

func (m *PlanMapperImpl) ToEntity(model *models.PlanModel) (*billing.Plan, error) {
	if model == nil {
		return nil, nil
	}

	interval, err := vo.ParseInterval(model.Interval)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan interval: %w", err)
	}

	var features []string
	if model.Features != nil {
		if err := json.Unmarshal(model.Features, &features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan features: %w", err)
		}
	}

	entity, err := billing.ReconstructPlan(
		model.ID,
		model.Name,
		model.Description,
		model.Price,
		interval,
		model.CreditAmount,
		features,
		model.Status,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}

	return entity, nil
}

func (m *PlanMapperImpl) ToModel(entity *billing.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	var featuresJSON datatypes.JSON
	if features := entity.Features(); len(features) > 0 {
		data, err := json.Marshal(features)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal plan features: %w", err)
		}
		featuresJSON = data
	}

	return &models.PlanModel{
		ID:           entity.ID(),
		Name:         entity.Name(),
		Description:  entity.Description(),
		Price:        entity.Price(),
		Interval:     entity.Interval().String(),
		CreditAmount: entity.CreditAmount(),
		Features:     featuresJSON,
		Status:       string(entity.Status()),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *PlanMapperImpl) ToEntities(modelList []*models.PlanModel) ([]*billing.Plan, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PlanModel) uint { return model.ID })
}
