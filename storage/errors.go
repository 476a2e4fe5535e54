package storage

import (
	"errors"
	"fmt"
)

// Common storage errors.
var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// PersistenceError reports a failed durable read or write. The operation
// it aborted must not have left partial state behind.
type PersistenceError struct {
	Op   string // "get", "set", "delete"
	Name string // record name
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
