package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gavel/internal/application/billing/usecases"
	"gavel/internal/shared/logger"
	"gavel/internal/shared/utils"
)

// RenewalHandler triggers the renewal sweep on demand. The scheduler runs the
// same use case on its own cadence; this endpoint exists for operators.
type RenewalHandler struct {
	renewUC *usecases.RenewSubscriptionsUseCase
	logger  logger.Interface
}

func NewRenewalHandler(renewUC *usecases.RenewSubscriptionsUseCase) *RenewalHandler {
	return &RenewalHandler{
		renewUC: renewUC,
		logger:  logger.NewLogger(),
	}
}

func (h *RenewalHandler) RunSweep(c *gin.Context) {
	renewed, err := h.renewUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("manual renewal sweep failed", "error", err)
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Renewal sweep completed", gin.H{"renewed": renewed})
}
