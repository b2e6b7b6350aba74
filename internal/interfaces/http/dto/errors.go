package dto

import (
	"errors"
	"net/http"

	"github.com/retailcore/backoffice/internal/domain/shared"
)

// Error codes surfaced by the HTTP layer itself. Domain error codes pass
// through as-is; only the transport-level conditions get codes here.
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
	ErrCodeInternal    = "INTERNAL"
)

// HTTPStatus maps an error to an HTTP status code by its domain type.
// Validation failures are 400, missing resources 404, concurrency conflicts
// 409, state and consistency violations 422, anything unknown 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrAlreadyExists),
		errors.Is(err, shared.ErrConcurrencyConflict):
		return http.StatusConflict
	}

	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var stateErr *shared.StateError
	if errors.As(err, &stateErr) {
		return http.StatusUnprocessableEntity
	}

	var consistencyErr *shared.ConsistencyError
	if errors.As(err, &consistencyErr) {
		return http.StatusUnprocessableEntity
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

// ErrorInfoFromError builds the error payload for a domain error, carrying
// the field name for validation errors
func ErrorInfoFromError(err error) *ErrorInfo {
	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		return &ErrorInfo{
			Code:    validationErr.Code,
			Message: validationErr.Message,
			Field:   validationErr.Field,
		}
	}

	var stateErr *shared.StateError
	if errors.As(err, &stateErr) {
		return &ErrorInfo{
			Code:    stateErr.Code,
			Message: stateErr.Message,
		}
	}

	var consistencyErr *shared.ConsistencyError
	if errors.As(err, &consistencyErr) {
		return &ErrorInfo{
			Code:    consistencyErr.Code,
			Message: consistencyErr.Message,
		}
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return &ErrorInfo{
			Code:    domainErr.Code,
			Message: domainErr.Message,
		}
	}

	return &ErrorInfo{
		Code:    ErrCodeInternal,
		Message: "An unexpected error occurred",
	}
}
