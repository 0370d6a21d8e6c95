package v1

import (
	"errors"
	"net/http"

	"github.com/ajo-zero/backend/internal/models"
	"github.com/ajo-zero/backend/internal/paystack"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrPlanCodesExhausted) {
		return http.StatusConflict
	}

	if errors.Is(err, paystack.ErrUnavailable) {
		return http.StatusBadGateway
	}

	return http.StatusBadRequest
}

// Deposit errors
var (
	errDepositAmountInvalid = errors.New("the deposit amount must be a positive decimal number")
)

// Webhook errors
var (
	errSignatureInvalid = errors.New("the webhook signature is missing or does not match the request body")
)
