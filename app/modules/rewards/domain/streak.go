package rewardsdomain

import (
	"fmt"
	"time"
)

// StreakRecord holds an account's continuation state. It is mutated only by
// AdvanceStreak, once per accepted event.
type StreakRecord struct {
	Current      int
	Longest      int
	LastActionAt time.Time
}

// StreakResult describes the outcome of advancing a streak.
type StreakResult struct {
	StreakAfter int
	Continued   bool
}

// AdvanceStreak applies one event at occurredAt to rec given the qualifying
// window. Within the window the streak increments; beyond it, or with no
// prior history, it restarts at 1. Events at or before the stored
// LastActionAt are rejected with ErrNonMonotonicEvent.
//
// rec is updated in place on success, including Longest.
func AdvanceStreak(rec *StreakRecord, occurredAt time.Time, window time.Duration) (StreakResult, error) {
	if rec.Current < 0 {
		return StreakResult{}, fmt.Errorf("corrupt streak record: current %d", rec.Current)
	}

	noHistory := rec.LastActionAt.IsZero()
	if !noHistory && !occurredAt.After(rec.LastActionAt) {
		return StreakResult{}, fmt.Errorf("%w: occurred_at %s is not after last action %s",
			ErrNonMonotonicEvent, occurredAt.Format(time.RFC3339), rec.LastActionAt.Format(time.RFC3339))
	}

	result := StreakResult{}
	switch {
	case noHistory || occurredAt.Sub(rec.LastActionAt) > window:
		result.StreakAfter = 1
		result.Continued = false
	default:
		result.StreakAfter = rec.Current + 1
		result.Continued = true
	}

	rec.Current = result.StreakAfter
	rec.LastActionAt = occurredAt
	if result.StreakAfter > rec.Longest {
		rec.Longest = result.StreakAfter
	}

	return result, nil
}
