package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"gavel/internal/application/billing/usecases"
	"gavel/internal/interfaces/dto"
	"gavel/internal/shared/logger"
	"gavel/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC     *usecases.CreatePlanUseCase
	updatePlanUC     *usecases.UpdatePlanUseCase
	getPlanUC        *usecases.GetPlanUseCase
	listPlansUC      *usecases.ListPlansUseCase
	deactivatePlanUC *usecases.DeactivatePlanUseCase
	logger           logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	updatePlanUC *usecases.UpdatePlanUseCase,
	getPlanUC *usecases.GetPlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
	deactivatePlanUC *usecases.DeactivatePlanUseCase,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:     createPlanUC,
		updatePlanUC:     updatePlanUC,
		getPlanUC:        getPlanUC,
		listPlansUC:      listPlansUC,
		deactivatePlanUC: deactivatePlanUC,
		logger:           logger.NewLogger(),
	}
}

// Plan prices arrive in major currency units and are stored in minor units.
type CreatePlanRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=100"`
	Description  string   `json:"description" binding:"max=500"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	Interval     string   `json:"interval" binding:"required,billing_interval"`
	CreditAmount int      `json:"credit_amount" binding:"gte=0"`
	Features     []string `json:"features"`
}

type UpdatePlanRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description  *string  `json:"description" binding:"omitempty,max=500"`
	Price        *float64 `json:"price" binding:"omitempty,gt=0"`
	Interval     *string  `json:"interval" binding:"omitempty,billing_interval"`
	CreditAmount *int     `json:"credit_amount" binding:"omitempty,gte=0"`
	Features     []string `json:"features"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

func toMinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.CreatePlanCommand{
		Name:         req.Name,
		Description:  req.Description,
		Price:        toMinorUnits(req.Price),
		Interval:     req.Interval,
		CreditAmount: req.CreditAmount,
		Features:     req.Features,
	}

	plan, err := h.createPlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.PlanToDTO(plan), "Plan created successfully")
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update plan",
			"plan_id", planID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var price *int64
	if req.Price != nil {
		minor := toMinorUnits(*req.Price)
		price = &minor
	}

	cmd := usecases.UpdatePlanCommand{
		PlanID:       planID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        price,
		Interval:     req.Interval,
		CreditAmount: req.CreditAmount,
		Features:     req.Features,
		Status:       req.Status,
	}

	plan, err := h.updatePlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", dto.PlanToDTO(plan))
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	plan, err := h.getPlanUC.Execute(c.Request.Context(), planID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.PlanToDTO(plan))
}

// ListPlans returns active plans; ?include_inactive=true widens the listing
// for admin callers.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	plans, err := h.listPlansUC.Execute(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.PlansToDTO(plans))
}

func (h *PlanHandler) DeactivatePlan(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deactivatePlanUC.Execute(c.Request.Context(), planID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan deactivated successfully", nil)
}
