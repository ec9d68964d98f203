// Package apperrors defines the error kinds the service layer returns and
// their HTTP mapping. The four hard kinds (validation, not-found, conflict,
// insufficient stock, invalid transition) always abort the operation with a
// full rollback; best-effort side effects never surface through these.
package apperrors

import (
	"fmt"
	"net/http"
)

// ValidationError is malformed or missing required input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ConflictError means the operation violates a referential or state
// invariant (deleting referenced inventory, staff/NGO mismatch, ...).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// InsufficientStockError means consumption exceeds available quantity.
type InsufficientStockError struct {
	InventoryID uint
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("inventory %d has %d units, cannot consume %d",
		e.InventoryID, e.Available, e.Requested)
}

// InvalidTransitionError means the requested status change is not reachable
// from the current state.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %q to %q", e.From, e.To)
}

// HTTPStatus maps a service-layer error to the response code controllers
// should use. Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ValidationError, *InvalidTransitionError:
		return http.StatusBadRequest
	case *NotFoundError:
		return http.StatusNotFound
	case *ConflictError, *InsufficientStockError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
