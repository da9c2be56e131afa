package services

import (
	"errors"
	"fmt"
	"time"

	"restaurant-ops/models"
	"restaurant-ops/store"
)

// Service-level error taxonomy, on top of the gateway's ErrNotFound /
// ErrConflict / ErrUnavailable. All of these are recoverable and surface to
// the caller verbatim so a client can show "table already taken", "cannot
// adjust a ready order" and so on.
var (
	// ErrInvalidTransition means the requested status change is not in the
	// allowed set for the order's current stored status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidState means the operation is not permitted in the entity's
	// current phase, e.g. adjusting a ready order.
	ErrInvalidState = errors.New("invalid state for operation")
	// ErrInvalidArgument means malformed input, e.g. non-positive quantity.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrForbidden means the actor lacks rights over the specific session,
	// e.g. closing a table opened by someone else.
	ErrForbidden = errors.New("forbidden")
)

// OccupiedError reports a lost occupancy race, naming the current occupant
// so the client can say who holds the table and since when.
type OccupiedError struct {
	TableID  uint
	OpenedBy uint
	OpenedAt time.Time
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("table %d is occupied by user %d since %s",
		e.TableID, e.OpenedBy, e.OpenedAt.Format(time.RFC3339))
}

func (e *OccupiedError) Unwrap() error { return store.ErrConflict }

// TransitionError reports a rejected status change with both endpoints.
type TransitionError struct {
	OrderID uint
	From    models.OrderStatus
	To      models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %d: cannot transition from %q to %q", e.OrderID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
