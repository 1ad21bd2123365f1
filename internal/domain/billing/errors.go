package billing

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the billing service. Handlers map these to
// HTTP statuses; anything persistence-related is wrapped in a
// PersistenceError instead so callers can tell validation failures from
// retryable database trouble.
var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrInvalidLineItem      = errors.New("invalid or inactive catalog item")
	ErrInvalidQuantity      = errors.New("line quantity out of range")
	ErrEmptyInvoice         = errors.New("invoice has no lines")
	ErrInvalidDiscount      = errors.New("invalid discount")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInsufficientPayment  = errors.New("tendered amount below amount due")
	ErrInvoiceNotPayable    = errors.New("invoice is not pending")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrReceiptNotFound      = errors.New("receipt not found")
)

// PersistenceError wraps a database failure during a billing operation.
// These are transient from the caller's point of view: the transaction was
// rolled back and the operation may be retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("billing: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
