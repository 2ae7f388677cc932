package rewardsdomain

import "errors"

var (
	// ErrDuplicateEvent is returned when an event id has already been
	// recorded for the account. Callers may treat it as success; retried
	// delivery is made safe by this check.
	ErrDuplicateEvent = errors.New("duplicate event")

	// ErrInvalidAmount is returned for negative point grants.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNonMonotonicEvent is returned when an event's timestamp is not
	// strictly after the account's last recorded action. It indicates a
	// clock or ordering bug upstream; the engine never reorders.
	ErrNonMonotonicEvent = errors.New("non-monotonic event")

	// ErrInvalidEvent is returned for structurally malformed events.
	ErrInvalidEvent = errors.New("invalid event")
)
