package domain

import (
	"errors"
	"fmt"
)

// Error codes shared by the cart, checkout and fulfillment flows. The
// handler layer turns each into an HTTP status.
const (
	EINVALID      = "invalid"          // bad quantity, malformed body, unknown field
	EUNAUTHORIZED = "unauthorized"     // no usable account or session identity
	EFORBIDDEN    = "forbidden"        // line item belongs to another owner's cart
	ENOTFOUND     = "not_found"        // cart, line item or product missing
	ECONFLICT     = "conflict"         // stock exhausted at fulfillment
	EGONE         = "gone"             // cart consumed or emptied before the webhook landed
	EPAYMENT      = "payment_required" // charged amount disagrees with the cart
	ERATELIMIT    = "rate_limit"       // checkout limiter tripped
	EINTERNAL     = "internal"         // anything else; detail stays in the logs
)

const internalMessage = "An internal error occurred. Please try again later."

// Error is a coded failure raised by the storefront. Message is safe to
// show to shoppers; Op and Err are for logs.
type Error struct {
	Code    string
	Message string
	Op      string // e.g. "cart.add_item"
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code carried by err. Errors raised outside the
// domain report EINTERNAL; nil reports "".
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the shopper-facing text for err. Internal and
// foreign errors never leak their detail.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok && e.Code != EINTERNAL {
		return e.Message
	}
	return internalMessage
}

// ErrorOp returns the operation recorded on err, if any.
func ErrorOp(err error) string {
	if e, ok := asError(err); ok {
		return e.Op
	}
	return ""
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Errorf builds a coded error for op.
func Errorf(code, op, format string, args ...any) error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a code and shopper message to err. A nil err stays nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: op, Message: message, Err: err}
}

// Unauthorized reports a request without a usable identity.
func Unauthorized(op, message string) error {
	return &Error{Code: EUNAUTHORIZED, Op: op, Message: message}
}

// Internal hides err behind a generic message.
func Internal(err error, op, message string) error {
	return &Error{Code: EINTERNAL, Op: op, Message: message, Err: err}
}

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Op     string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	var msg string
	if len(e.Fields) == 1 {
		for field, m := range e.Fields {
			msg = field + ": " + m
		}
	} else {
		msg = fmt.Sprintf("validation failed for %d fields", len(e.Fields))
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

// NewValidationError reports a single bad field.
func NewValidationError(op, field, message string) error {
	return &ValidationError{Op: op, Fields: map[string]string{field: message}}
}

// AddFieldError records field on the ValidationError inside err, or starts
// a new one for op when err is not a ValidationError.
func AddFieldError(err error, op, field, message string) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		ve.Fields[field] = message
		return ve
	}
	return NewValidationError(op, field, message)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetValidationFields returns the field messages of a ValidationError, or
// nil for any other error.
func GetValidationFields(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
