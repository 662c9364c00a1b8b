package service

import (
	"errors"
	"fmt"
)

// Validation outcomes. These are deterministic results of an operation, not
// transient faults, and are surfaced to the caller as-is.
var (
	ErrNotFound           = errors.New("entity not found")
	ErrDuplicateIdentity  = errors.New("email or phone already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("not authorized")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInsufficientStock  = errors.New("not enough stock")
)

// StockError reports which product could not cover the requested quantity.
// It unwraps to ErrInsufficientStock.
type StockError struct {
	ProductID uint
	Name      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("not enough stock for product %q (id=%d): requested %d, available %d",
		e.Name, e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// StorageError wraps a storage-layer failure. It is fatal to the request and
// must never be confused with a validation outcome.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// storagef wraps err as a StorageError unless it is nil
func storagef(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
