package service

import (
	"errors"
	"fmt"
)

var (
	ErrProductsRequired = errors.New("products array is required")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponExpired    = errors.New("coupon has expired")
	ErrCouponExhausted  = errors.New("coupon has reached maximum uses")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidStatus    = errors.New("invalid payment status")
)

// ValidationError reports a missing or malformed request field. It is
// always raised before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PartialFailureError reports a side-effect failure after the order
// document was already committed. There is no rollback; the caller must
// treat the order as likely created.
type PartialFailureError struct {
	OrderID     string
	OrderNumber string
	Step        string
	Err         error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("order %s was created but the %s step failed: %v", e.OrderNumber, e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
