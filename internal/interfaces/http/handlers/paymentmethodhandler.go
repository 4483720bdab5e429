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

type PaymentMethodHandler struct {
	addMethodUC        *usecases.AddPaymentMethodUseCase
	listMethodsUC      *usecases.ListPaymentMethodsUseCase
	removeMethodUC     *usecases.RemovePaymentMethodUseCase
	setDefaultMethodUC *usecases.SetDefaultPaymentMethodUseCase
	logger             logger.Interface
}

func NewPaymentMethodHandler(
	addMethodUC *usecases.AddPaymentMethodUseCase,
	listMethodsUC *usecases.ListPaymentMethodsUseCase,
	removeMethodUC *usecases.RemovePaymentMethodUseCase,
	setDefaultMethodUC *usecases.SetDefaultPaymentMethodUseCase,
) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		addMethodUC:        addMethodUC,
		listMethodsUC:      listMethodsUC,
		removeMethodUC:     removeMethodUC,
		setDefaultMethodUC: setDefaultMethodUC,
		logger:             logger.NewLogger(),
	}
}

type AddPaymentMethodRequest struct {
	GatewayMethodID string `json:"gateway_method_id" binding:"required"`
	CardholderName  string `json:"cardholder_name" binding:"max=100"`
	ExpiryMonth     string `json:"expiry_month" binding:"required,len=2"`
	ExpiryYear      string `json:"expiry_year" binding:"required,len=4"`
	LastFourDigits  string `json:"last_four_digits" binding:"required,len=4,numeric"`
	CardType        string `json:"card_type" binding:"required"`
}

func (h *PaymentMethodHandler) AddMethod(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req AddPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add payment method", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.AddPaymentMethodCommand{
		UserID:          userID,
		GatewayMethodID: req.GatewayMethodID,
		CardholderName:  req.CardholderName,
		ExpiryMonth:     req.ExpiryMonth,
		ExpiryYear:      req.ExpiryYear,
		LastFourDigits:  req.LastFourDigits,
		CardType:        req.CardType,
	}

	method, err := h.addMethodUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.PaymentMethodToDTO(method), "Payment method added successfully")
}

func (h *PaymentMethodHandler) ListMethods(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	methods, err := h.listMethodsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.PaymentMethodsToDTO(methods))
}

func (h *PaymentMethodHandler) RemoveMethod(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	methodID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removeMethodUC.Execute(c.Request.Context(), methodID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *PaymentMethodHandler) SetDefaultMethod(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing user identity")
		return
	}

	methodID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	method, err := h.setDefaultMethodUC.Execute(c.Request.Context(), methodID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Default payment method updated", dto.PaymentMethodToDTO(method))
}
