package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gavel/internal/application/billing/usecases"
	"gavel/internal/interfaces/dto"
	"gavel/internal/interfaces/http/middleware"
	"gavel/internal/shared/logger"
	"gavel/internal/shared/utils"
)

type SubscriptionHandler struct {
	getActiveUC *usecases.GetActiveSubscriptionUseCase
	cancelUC    *usecases.CancelSubscriptionUseCase
	listAllUC   *usecases.ListSubscriptionsUseCase
	logger      logger.Interface
}

func NewSubscriptionHandler(
	getActiveUC *usecases.GetActiveSubscriptionUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
	listAllUC *usecases.ListSubscriptionsUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		getActiveUC: getActiveUC,
		cancelUC:    cancelUC,
		listAllUC:   listAllUC,
		logger:      logger.NewLogger(),
	}
}

// GetActive returns the caller's active subscription with plan details, or
// null data when none exists.
func (h *SubscriptionHandler) GetActive(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	active, err := h.getActiveUC.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if active == nil {
		utils.SuccessResponse(c, http.StatusOK, "", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ActiveSubscriptionToDTO(active))
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	subscriptionID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CancelSubscriptionCommand{
		SubscriptionID: subscriptionID,
		UserID:         userID,
	}

	sub, err := h.cancelUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", dto.SubscriptionToDTO(sub))
}

// ListAll returns every subscription with plan details. Admin surface.
func (h *SubscriptionHandler) ListAll(c *gin.Context) {
	items, err := h.listAllUC.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, 0, len(items))
	for _, item := range items {
		entry := gin.H{"subscription": dto.SubscriptionToDTO(item.Subscription)}
		if item.Plan != nil {
			entry["plan"] = dto.PlanToDTO(item.Plan)
		}
		result = append(result, entry)
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
