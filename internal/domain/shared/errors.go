package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ValidationError reports malformed input: a missing field, an empty line
// list, a quantity outside its allowed range. It is raised before any write
// takes place.
type ValidationError struct {
	DomainError
	Field string `json:"field,omitempty"`
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{DomainError: DomainError{Code: code, Message: message}}
}

// NewFieldValidationError creates a validation error tied to a specific field
func NewFieldValidationError(field, code, message string) *ValidationError {
	return &ValidationError{
		DomainError: DomainError{Code: code, Message: message},
		Field:       field,
	}
}

// StateError reports an illegal lifecycle transition. CurrentState carries the
// state the entity was actually in so callers can explain the rejection.
type StateError struct {
	DomainError
	CurrentState string `json:"current_state"`
}

// NewStateError creates a state error for the given current state
func NewStateError(currentState, code, message string) *StateError {
	return &StateError{
		DomainError:  DomainError{Code: code, Message: fmt.Sprintf("%s (current state: %s)", message, currentState)},
		CurrentState: currentState,
	}
}

// ConsistencyError reports a cross-entity violation computed defensively
// before any write: a refund exceeding net paid, a currency mismatch, an
// application amount above the applicable maximum.
type ConsistencyError struct {
	DomainError
}

// NewConsistencyError creates a consistency error
func NewConsistencyError(code, message string) *ConsistencyError {
	return &ConsistencyError{DomainError: DomainError{Code: code, Message: message}}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)
