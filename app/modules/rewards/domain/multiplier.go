package rewardsdomain

import (
	"fmt"
	"slices"
)

// MultiplierStep maps a minimum streak length to a point multiplier.
type MultiplierStep struct {
	MinStreak int
	Factor    int
}

// MultiplierTable is an ascending threshold table. Resolution picks the
// highest step whose MinStreak does not exceed the streak length.
type MultiplierTable []MultiplierStep

// DefaultMultiplierTable returns the stock table: 1x below 10, 2x from 10,
// 3x from 25, 5x from 50, 10x from 100.
func DefaultMultiplierTable() MultiplierTable {
	return MultiplierTable{
		{MinStreak: 0, Factor: 1},
		{MinStreak: 10, Factor: 2},
		{MinStreak: 25, Factor: 3},
		{MinStreak: 50, Factor: 5},
		{MinStreak: 100, Factor: 10},
	}
}

// Validate checks that the table is non-empty, strictly ascending, starts at
// streak 0 and carries positive factors.
func (t MultiplierTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("multiplier table is empty")
	}
	if t[0].MinStreak != 0 {
		return fmt.Errorf("multiplier table must start at streak 0, got %d", t[0].MinStreak)
	}
	for i, step := range t {
		if step.Factor <= 0 {
			return fmt.Errorf("multiplier step %d has non-positive factor %d", i, step.Factor)
		}
		if i > 0 && step.MinStreak <= t[i-1].MinStreak {
			return fmt.Errorf("multiplier table not strictly ascending at step %d", i)
		}
	}
	return nil
}

// Resolve returns the multiplier for the given streak length. Deterministic,
// no side effects.
func (t MultiplierTable) Resolve(streakLength int) int {
	if len(t) == 0 {
		return 1
	}
	// Find the first step above streakLength; the one before it applies.
	idx, _ := slices.BinarySearchFunc(t, streakLength, func(s MultiplierStep, target int) int {
		return s.MinStreak - target
	})
	if idx < len(t) && t[idx].MinStreak == streakLength {
		return t[idx].Factor
	}
	if idx == 0 {
		return 1
	}
	return t[idx-1].Factor
}
