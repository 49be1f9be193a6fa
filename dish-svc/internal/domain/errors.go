package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConstraint = errors.New("constraint violation")

	ErrDishNotFound  = errors.New("dish not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrOrderNotFound = errors.New("order not found")

	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

var (
	ErrAddressInUse = &ConstraintError{
		Constraint: "orders_delivery_address_id_fkey",
		Message:    "Cannot delete address because it is used in one or more orders.",
	}
	ErrDishInUse = &ConstraintError{
		Constraint: "order_items_dish_id_fkey",
		Message:    "Cannot delete dish because it is part of one or more orders.",
	}
	ErrMissingReference = &ConstraintError{
		Constraint: "foreign_key",
		Message:    "referenced dish, user or address does not exist",
	}
)

// ValidationError rejects malformed input before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConstraintError reports a write refused because of referential integrity.
// Message is meant to be shown to the caller as is.
type ConstraintError struct {
	Constraint string
	Message    string
}

func (e *ConstraintError) Error() string {
	return e.Message
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraint
}
