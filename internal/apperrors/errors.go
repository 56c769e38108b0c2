package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Ledger posting errors. Validation happens in this order; nothing is written
// when any of them fires.
var (
	// ErrInvalidAmount indicates a non-positive transaction amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidCurrency indicates a currency outside the supported set.
	ErrInvalidCurrency = errors.New("unsupported currency")

	// ErrUnknownAccount indicates a corporate account that does not exist.
	// Individual customers auto-vivify on first reference, corporates do not.
	ErrUnknownAccount = errors.New("unknown ledger account")

	// ErrRateNotConfigured indicates the system rate for the transaction
	// currency is still the zero sentinel. Posting must never fall back to
	// a default or stale rate.
	ErrRateNotConfigured = errors.New("exchange rate not configured for currency")
)

// Currency rate store errors.
var (
	// ErrRatesLocked indicates a mutation was attempted on a locked rate set.
	ErrRatesLocked = errors.New("currency rates are locked")

	// ErrStaleQuote indicates a central bank quote with a missing or
	// non-positive leg; refresh is all-or-nothing.
	ErrStaleQuote = errors.New("central bank quote is incomplete or stale")

	// ErrQuoteUnavailable indicates the central bank feed could not be
	// reached or parsed. Stored rates are never touched on this path.
	ErrQuoteUnavailable = errors.New("central bank quote unavailable")
)

// ErrInvalidRange indicates a report date range with date_to before date_from.
var ErrInvalidRange = errors.New("invalid date range")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
// Repositories use it for infrastructure failures so handlers can map them
// without inspecting driver errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that satisfies errors.Is(err, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
