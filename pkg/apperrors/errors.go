package apperrors

import (
	"errors"
	"fmt"

	"restaurant/pkg/models"
)

// ErrStoreUnavailable marks a transient store failure. Callers retry with
// backoff; handlers answer 500.
var ErrStoreUnavailable = errors.New("store unavailable")

func StoreUnavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NotFound(resource string, id int) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func Conflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PriceMismatchError carries the corrected cart lines so the client can
// re-present the cart instead of silently charging a stale price.
type PriceMismatchError struct {
	Corrected []models.CartLine
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("cart drifted from current catalog state on %d line(s)", len(e.Corrected))
}

type InvalidTransitionError struct {
	From models.ProcessingStatus
	To   models.ProcessingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("illegal transition %s -> %s", e.From, e.To)
}
