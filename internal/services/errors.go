package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Business-rule failures. These are the caller's problem, not the
// store's; storage failures are wrapped in StorageError instead so
// callers can tell "retry later" from "this request is invalid".
var (
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrGoalNotFound   = errors.New("saving goal not found")
	ErrBudgetNotFound = errors.New("budget not found")
)

// InvalidBudgetError reports a budget whose limit makes the alert
// percentage undefined. A configuration error, fatal for the computation.
type InvalidBudgetError struct {
	Category string
	Limit    decimal.Decimal
}

func (e *InvalidBudgetError) Error() string {
	return fmt.Sprintf("budget for category %q has non-positive limit %s", e.Category, e.Limit)
}

// InsufficientBalanceError carries the available balance so the caller
// can show it and retry with a smaller amount.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s, requested %s", e.Available, e.Requested)
}

// StorageError marks a transient durable-store failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
