package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgIngredientNotFound = "ingredient not found"
	ErrMsgPackagingNotFound  = "packaging not found"
	ErrMsgProductNotFound    = "product not found"
	ErrMsgResourceInUse      = "resource is referenced by a product"
	ErrMsgDuplicateID        = "id already exists"

	// Production errors
	ErrMsgInvalidPackaging   = "invalid packaging"
	ErrMsgDegenerateBatch    = "batch produces no units"
	ErrMsgFormulaIntegrity   = "formula references a missing ingredient"
	ErrMsgInsufficientStock  = "insufficient stock"
	ErrMsgStaleStateConflict = "stock changed since preview"
	ErrMsgInvalidQuantity    = "invalid production quantity"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"
	ErrMsgInvalidMode  = "invalid production mode"

	// Database/System errors
	ErrMsgTxClosed      = "tx is closed"
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrIngredientNotFound = errors.New(ErrMsgIngredientNotFound)
	ErrPackagingNotFound  = errors.New(ErrMsgPackagingNotFound)
	ErrProductNotFound    = errors.New(ErrMsgProductNotFound)
	ErrResourceInUse      = errors.New(ErrMsgResourceInUse)
	ErrDuplicateID        = errors.New(ErrMsgDuplicateID)

	ErrInvalidPackaging   = errors.New(ErrMsgInvalidPackaging)
	ErrDegenerateBatch    = errors.New(ErrMsgDegenerateBatch)
	ErrFormulaIntegrity   = errors.New(ErrMsgFormulaIntegrity)
	ErrInsufficientStock  = errors.New(ErrMsgInsufficientStock)
	ErrStaleStateConflict = errors.New(ErrMsgStaleStateConflict)
	ErrInvalidQuantity    = errors.New(ErrMsgInvalidQuantity)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
	ErrInvalidMode  = errors.New(ErrMsgInvalidMode)
)

// FailureKind classifies why a production run cannot proceed.
type FailureKind string

const (
	FailureInvalidPackaging   FailureKind = "InvalidPackaging"
	FailureDegenerateBatch    FailureKind = "DegenerateBatch"
	FailureFormulaIntegrity   FailureKind = "FormulaIntegrityError"
	FailureInsufficientStock  FailureKind = "InsufficientStock"
	FailureStaleStateConflict FailureKind = "StaleStateConflict"
	// FailureInvalidQuantity covers runs above MaxBatchUnits and unit counts
	// that do not match the submitted batch volume.
	FailureInvalidQuantity FailureKind = "InvalidQuantity"
)

// Sentinel returns the package error matching the kind.
func (k FailureKind) Sentinel() error {
	switch k {
	case FailureInvalidPackaging:
		return ErrInvalidPackaging
	case FailureDegenerateBatch:
		return ErrDegenerateBatch
	case FailureFormulaIntegrity:
		return ErrFormulaIntegrity
	case FailureInsufficientStock:
		return ErrInsufficientStock
	case FailureStaleStateConflict:
		return ErrStaleStateConflict
	case FailureInvalidQuantity:
		return ErrInvalidQuantity
	}
	return nil
}

// Failure is a production failure returned as data.
// It satisfies error so hosts can match it with errors.Is against the sentinels.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	// ResourceID is the first failing ingredient or packaging, when there is one.
	ResourceID   string   `json:"resource_id,omitempty"`
	ResourceName string   `json:"resource_name,omitempty"`
	Shortfall    float64  `json:"shortfall,omitempty"`
	Cause        *Failure `json:"cause,omitempty"`
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap exposes the kind sentinel and, for stale-state conflicts, the cause.
func (f *Failure) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := f.Kind.Sentinel(); s != nil {
		errs = append(errs, s)
	}
	if f.Cause != nil {
		errs = append(errs, f.Cause)
	}
	return errs
}
