// Package apperr defines the error kinds surfaced by the shop's services.
// Callers branch on Kind, never on message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindInvalidTransition Kind = "invalid_transition"
	KindWindowExpired     Kind = "cancellation_window_expired"
	KindConflict          Kind = "conflict"
	KindUnauthorized      Kind = "unauthorized"
	KindInternal          Kind = "internal"
)

// Error carries a stable Kind, a message safe to show to clients and the
// identifier of the offending record when there is one.
type Error struct {
	Kind    Kind
	Message string
	Subject string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind onto an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInsufficientStock, KindInvalidTransition, KindWindowExpired:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Subject: field}
}

func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found", Subject: id}
}

func InsufficientStock(productID string, want, have int) *Error {
	return &Error{
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for product %s (need %d, have %d)", productID, want, have),
		Subject: productID,
	}
}

func InvalidTransition(entity, id, from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("%s cannot move from %s to %s", entity, from, to),
		Subject: id,
	}
}

func WindowExpired(orderID string) *Error {
	return &Error{Kind: KindWindowExpired, Message: "cancellation window has expired", Subject: orderID}
}

func Conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: err}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the kind of err; errors outside the taxonomy are KindInternal.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
