package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable marks a failure to open or initialize the store.
	// The operation may be retried.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNameReserved is returned when creating a list with the default name.
	ErrNameReserved = errors.New("list name is reserved")

	// ErrNameExists is returned when creating a list whose name is taken.
	ErrNameExists = errors.New("list name already exists")

	// ErrDefaultListProtected is returned when deleting the default list.
	ErrDefaultListProtected = errors.New("default list cannot be deleted")

	// ErrListNotFound is returned when mutating a list that does not exist.
	ErrListNotFound = errors.New("list not found")

	// ErrSerialization marks a stored word blob that could not be decoded.
	// Readers log it and fall back to an empty collection.
	ErrSerialization = errors.New("corrupt word collection")
)

// StorageError wraps a failure of the storage handle itself.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageUnavailable, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorageUnavailable) hold for every StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

// IsValidation reports whether err is one of the user-facing validation
// errors that callers surface as a message rather than a crash.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNameReserved) ||
		errors.Is(err, ErrNameExists) ||
		errors.Is(err, ErrDefaultListProtected) ||
		errors.Is(err, ErrListNotFound)
}
