package handlers

import (
	stderrors "errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"gavel/internal/domain/billing"
	"gavel/internal/domain/user"
	"gavel/internal/shared/errors"
	"gavel/internal/shared/utils"
)

// respondError maps domain errors onto HTTP responses. Unknown errors are
// reported as internal without leaking details.
func respondError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, billing.ErrPlanNotFound),
		stderrors.Is(err, billing.ErrSubscriptionNotFound),
		stderrors.Is(err, billing.ErrPaymentMethodNotFound),
		stderrors.Is(err, user.ErrUserNotFound):
		utils.ErrorResponseWithError(c, errors.NewNotFoundError(err.Error()))

	case stderrors.Is(err, billing.ErrAlreadyCancelled):
		utils.ErrorResponseWithError(c, errors.NewConflictError(err.Error()))

	case stderrors.Is(err, billing.ErrPaymentNotCompleted):
		utils.ErrorResponseWithError(c, errors.NewPaymentRequiredError(err.Error()))

	case stderrors.Is(err, billing.ErrPlanInactive),
		stderrors.Is(err, billing.ErrInvalidInterval),
		stderrors.Is(err, billing.ErrInvalidPrice):
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))

	default:
		utils.ErrorResponseWithError(c, err)
	}
}

// parseIDParam reads a positive uint path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	idStr := c.Param(name)
	if idStr == "" {
		return 0, errors.NewValidationError(name + " is required")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name + " format")
	}

	return uint(id), nil
}
