package rewardsdb

import "errors"

// Sentinel errors for the repository layer.
// These represent infrastructure-level conditions callers may want
// to handle specially (not business-domain errors).
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoRowsAffected indicates an UPDATE/DELETE matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
