package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by mutations addressed at a missing record.
	// Lookups never return it: a miss is (nil, nil).
	ErrNotFound = errors.New("not found")

	// ErrInvalid marks a rejected argument (unknown weekday, empty name, zero category).
	ErrInvalid = errors.New("invalid argument")
)

// StorageError wraps a failure of the underlying engine. State is left unchanged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// FormatError reports a malformed import document. Nothing was mutated.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid import document: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// wrap converts engine errors into *StorageError and passes domain errors through.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	var fe *FormatError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalid):
		return err
	case errors.As(err, &se), errors.As(err, &fe):
		return err
	}
	return &StorageError{Op: op, Err: err}
}
