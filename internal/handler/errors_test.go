package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vistalabs/vista/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgGenericServerError},
		{"ingredient", fmt.Errorf("%w: gly", domain.ErrIngredientNotFound), http.StatusNotFound, ErrMsgIngredientNotFound},
		{"packaging", fmt.Errorf("%w: jar", domain.ErrPackagingNotFound), http.StatusNotFound, ErrMsgPackagingNotFound},
		{"product wrapped twice", fmt.Errorf("lookup: %w", fmt.Errorf("%w: x", domain.ErrProductNotFound)), http.StatusNotFound, ErrMsgProductNotFound},
		{"in use", domain.ErrResourceInUse, http.StatusConflict, ErrMsgResourceInUse},
		{"duplicate", domain.ErrDuplicateID, http.StatusConflict, ErrMsgDuplicateID},
		{"negative stock", fmt.Errorf("%w: gly", domain.ErrInsufficientStock), http.StatusConflict, ErrMsgInsufficientStock},
		{"mode", domain.ErrInvalidMode, http.StatusBadRequest, ErrMsgInvalidMode},
		{"invalid input", fmt.Errorf("%w: name is required", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: name is required"},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
