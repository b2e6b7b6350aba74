package csvimport

import (
	"errors"
	"fmt"
)

// Row-level error codes surfaced in the import report
const (
	ErrCodeRequiredField   = "IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidNumber   = "IMPORT_INVALID_NUMBER"
	ErrCodeInvalidCurrency = "IMPORT_INVALID_CURRENCY"
	ErrCodeDuplicateInFile = "IMPORT_DUPLICATE_IN_FILE"
	ErrCodeDuplicateSKU    = "IMPORT_DUPLICATE_SKU"
	ErrCodeMalformedRow    = "IMPORT_MALFORMED_ROW"
)

// File-level errors that abort the import before any row is processed
var (
	ErrEmptyFile       = errors.New("CSV file is empty")
	ErrInvalidEncoding = errors.New("CSV file is not valid UTF-8")
	ErrMissingHeader   = errors.New("CSV file missing header row")
)

// RowError is an error tied to a specific CSV row. The import keeps going
// past row errors and reports them all at the end.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a new RowError
func NewRowError(row int, column, code, message string) RowError {
	return RowError{Row: row, Column: column, Code: code, Message: message}
}
