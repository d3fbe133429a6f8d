package invoicer

import (
	"errors"
	"fmt"

	"github.com/xraph/invoicer/lineitem"
)

// Sentinel errors for common failure scenarios.
var (
	// Ledger errors
	ErrRecordNotFound = errors.New("invoicer: invoice record not found")
	ErrAlreadyExists  = errors.New("invoicer: invoice record already exists")

	// Draft errors
	ErrUnknownField     = lineitem.ErrUnknownField
	ErrFieldNotEditable = lineitem.ErrFieldNotEditable

	// Store errors
	ErrStoreClosed = errors.New("invoicer: store is closed")
)

// ValidationError represents a rejected form input.
type ValidationError struct {
	Field string
	Err   error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invoicer: invalid field %q: %v", e.Field, e.Err)
}

func (e ValidationError) Unwrap() error { return e.Err }

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

// IsFieldError returns true if the error rejects a field name.
func IsFieldError(err error) bool {
	return errors.Is(err, ErrUnknownField) || errors.Is(err, ErrFieldNotEditable)
}
