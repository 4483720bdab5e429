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

// PaymentHandler exposes the charge flow: open an intent, confirm it after
// client-side authorization, and read back credits and payment history.
type PaymentHandler struct {
	createIntentUC    *usecases.CreateChargeIntentUseCase
	confirmPurchaseUC *usecases.ConfirmPurchaseUseCase
	getCreditsUC      *usecases.GetCreditsUseCase
	listPaymentsUC    *usecases.ListPaymentsUseCase
	logger            logger.Interface
}

func NewPaymentHandler(
	createIntentUC *usecases.CreateChargeIntentUseCase,
	confirmPurchaseUC *usecases.ConfirmPurchaseUseCase,
	getCreditsUC *usecases.GetCreditsUseCase,
	listPaymentsUC *usecases.ListPaymentsUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		createIntentUC:    createIntentUC,
		confirmPurchaseUC: confirmPurchaseUC,
		getCreditsUC:      getCreditsUC,
		listPaymentsUC:    listPaymentsUC,
		logger:            logger.NewLogger(),
	}
}

type CreateIntentRequest struct {
	Amount   int64  `json:"amount" binding:"omitempty,gt=0"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
	PlanID   uint   `json:"plan_id"`
}

type ConfirmPurchaseRequest struct {
	IntentID     string `json:"intent_id" binding:"required"`
	CreditAmount int    `json:"credit_amount"`
	PlanID       uint   `json:"plan_id"`
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create intent", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.CreateChargeIntentCommand{
		UserID:   userID,
		Amount:   req.Amount,
		Currency: req.Currency,
		PlanID:   req.PlanID,
	}

	result, err := h.createIntentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"intent_id":     result.IntentID,
		"client_secret": result.ClientSecret,
		"amount":        result.Amount,
		"currency":      result.Currency,
	})
}

func (h *PaymentHandler) ConfirmPurchase(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req ConfirmPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for confirm purchase", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.ConfirmPurchaseCommand{
		UserID:       userID,
		IntentID:     req.IntentID,
		CreditAmount: req.CreditAmount,
		PlanID:       req.PlanID,
	}

	result, err := h.confirmPurchaseUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	data := gin.H{"credits": result.Credits}
	if result.Subscription != nil {
		data["subscription"] = dto.SubscriptionToDTO(result.Subscription)
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment confirmed successfully", data)
}

func (h *PaymentHandler) GetCredits(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	credits, err := h.getCreditsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"credits": credits})
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	payments, err := h.listPaymentsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.PaymentsToDTO(payments))
}
