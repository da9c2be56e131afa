package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Gateway error taxonomy. Driver-specific failures never escape this
// package: every method translates them before returning.
var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a storage constraint rejected the write, e.g. a
	// second open session for the same table losing the insert race.
	ErrConflict = errors.New("conflict with existing record")
	// ErrUnavailable covers connectivity and other transient store
	// failures; the caller owns the retry policy.
	ErrUnavailable = errors.New("store unavailable")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
