package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a Backend when the slot has never been written.
	ErrNotFound = errors.New("no stored value")
	// ErrPersistence matches every *PersistenceError via errors.Is.
	ErrPersistence = errors.New("persistence failure")
)

// PersistenceError reports a storage read or write that did not complete.
type PersistenceError struct {
	Op      string
	Backend string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Backend, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrPersistence) match regardless of the cause.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
