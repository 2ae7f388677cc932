package rewardsdomain

import (
	"fmt"
	"time"
)

// AccountID identifies a rewards account. Accounts are created on first
// action and never deleted, only deactivated.
type AccountID string

// Points uses a custom type to prevent floating-point errors.
type Points int64

// Coins is the secondary balance granted alongside points.
type Coins int64

// ActionType discriminates the kind of user action that produced an event.
type ActionType string

const (
	ActionDonation ActionType = "donation"
	ActionDhikr    ActionType = "dhikr"
	ActionPrayer   ActionType = "prayer"
	ActionOther    ActionType = "other"
)

// Valid reports whether t is one of the known action types.
func (t ActionType) Valid() bool {
	switch t {
	case ActionDonation, ActionDhikr, ActionPrayer, ActionOther:
		return true
	}
	return false
}

// ActionEvent is the immutable unit of input to the engine. It is produced
// by external collaborators (donation hook, dhikr page, prayer tracker) and
// consumed exactly once by the ledger, idempotent on EventID.
type ActionEvent struct {
	EventID    string
	AccountID  AccountID
	ActionType ActionType
	BasePoints Points
	OccurredAt time.Time
}

// Validate checks the structural invariants of an event before it enters the
// pipeline. A negative BasePoints is an InvalidAmount, not a refund.
func (e ActionEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: missing event id", ErrInvalidEvent)
	}
	if e.AccountID == "" {
		return fmt.Errorf("%w: missing account id", ErrInvalidEvent)
	}
	if !e.ActionType.Valid() {
		return fmt.Errorf("%w: unknown action type %q", ErrInvalidEvent, e.ActionType)
	}
	if e.BasePoints < 0 {
		return fmt.Errorf("%w: base points %d", ErrInvalidAmount, e.BasePoints)
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("%w: missing occurred_at", ErrInvalidEvent)
	}
	return nil
}
