package handler

import (
	"errors"
	"net/http"

	"github.com/vistalabs/vista/internal/domain"
)

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgBackupsDisabled       = "Snapshot backups are not configured"

	ErrMsgIngredientNotFound = "Ingredient not found"
	ErrMsgPackagingNotFound  = "Packaging not found"
	ErrMsgProductNotFound    = "Product not found"
	ErrMsgResourceInUse      = "Resource is still used by a product formula"
	ErrMsgDuplicateID        = "A resource with that id already exists"
	ErrMsgInsufficientStock  = "Not enough stock"
	ErrMsgInvalidMode        = "Mode must be units or batchVolume"
)

// Success messages
const (
	MsgDeleted = "Deleted"
)

// Log messages
const (
	LogMsgEncodeFailed   = "Failed to encode JSON response"
	LogMsgWriteFailed    = "Failed to write response buffer"
	LogMsgReadinessError = "Readiness check failed"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on. Validation errors keep their detail.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	switch {
	case errors.Is(err, domain.ErrIngredientNotFound):
		return http.StatusNotFound, ErrMsgIngredientNotFound
	case errors.Is(err, domain.ErrPackagingNotFound):
		return http.StatusNotFound, ErrMsgPackagingNotFound
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, ErrMsgProductNotFound
	case errors.Is(err, domain.ErrResourceInUse):
		return http.StatusConflict, ErrMsgResourceInUse
	case errors.Is(err, domain.ErrDuplicateID):
		return http.StatusConflict, ErrMsgDuplicateID
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, ErrMsgInsufficientStock
	case errors.Is(err, domain.ErrInvalidMode):
		return http.StatusBadRequest, ErrMsgInvalidMode
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
