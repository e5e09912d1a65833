package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by store methods. Callers should match with
// [errors.Is]. Per the engine's error model, any ErrStorage outcome must be
// treated as "no data available", never as a crash condition.
var (
	// ErrStorage wraps every initialization or I/O failure of the local
	// medium. It is the storage half of the engine's error taxonomy.
	ErrStorage = errors.New("local storage error")

	// ErrNotFound is returned by Get when no record with the requested id
	// exists in the collection. It is not a storage failure.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownCollection is returned when a caller names a collection
	// that is not part of the schema.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrUnknownIndex is returned when a caller names a secondary index
	// the collection does not declare.
	ErrUnknownIndex = errors.New("unknown index")
)

// storageErr wraps a low-level failure so that errors.Is(err, ErrStorage)
// holds while the original cause stays inspectable.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStorage, err))
}
