package dto

import (
	"errors"
	"net/http"
	"testing"

	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict},
		{"concurrency conflict", shared.ErrConcurrencyConflict, http.StatusConflict},
		{"validation error", shared.NewValidationError("NO_LINES", "A return draft requires at least one line"), http.StatusBadRequest},
		{"field validation error", shared.NewFieldValidationError("amount", "INVALID_AMOUNT", "Applied amount must be positive"), http.StatusBadRequest},
		{"state error", shared.NewStateError("FINALIZED", "INVALID_RETURN_STATUS", "Only a draft return can be finalized"), http.StatusUnprocessableEntity},
		{"consistency error", shared.NewConsistencyError("REFUND_EXCEEDS_NET_PAID", "Refund return total exceeds the net amount paid on the order"), http.StatusUnprocessableEntity},
		{"bare domain error", shared.NewDomainError("SOMETHING", "something domain-level"), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorInfoFromError(t *testing.T) {
	t.Run("validation error carries the field", func(t *testing.T) {
		info := ErrorInfoFromError(shared.NewFieldValidationError("sku", "INVALID_SKU", "SKU cannot be empty"))

		require.NotNil(t, info)
		assert.Equal(t, "INVALID_SKU", info.Code)
		assert.Equal(t, "SKU cannot be empty", info.Message)
		assert.Equal(t, "sku", info.Field)
	})

	t.Run("state error keeps its code and decorated message", func(t *testing.T) {
		info := ErrorInfoFromError(shared.NewStateError("CANCELLED", "INVALID_RETURN_STATUS", "Only a draft return can be finalized"))

		assert.Equal(t, "INVALID_RETURN_STATUS", info.Code)
		assert.Equal(t, "Only a draft return can be finalized (current state: CANCELLED)", info.Message)
		assert.Empty(t, info.Field)
	})

	t.Run("consistency error passes through", func(t *testing.T) {
		info := ErrorInfoFromError(shared.NewConsistencyError("CURRENCY_MISMATCH", "Credit currency EUR does not match order currency USD"))

		assert.Equal(t, "CURRENCY_MISMATCH", info.Code)
		assert.Equal(t, "Credit currency EUR does not match order currency USD", info.Message)
	})

	t.Run("sentinel domain errors keep their code", func(t *testing.T) {
		info := ErrorInfoFromError(shared.ErrNotFound)

		assert.Equal(t, "NOT_FOUND", info.Code)
		assert.Equal(t, "Resource not found", info.Message)
	})

	t.Run("unknown errors are not leaked to the client", func(t *testing.T) {
		info := ErrorInfoFromError(errors.New("pq: connection refused"))

		assert.Equal(t, ErrCodeInternal, info.Code)
		assert.NotContains(t, info.Message, "pq:")
	})
}
