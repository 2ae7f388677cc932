package rewardsdomain

import (
	"fmt"
	"time"
)

// DefaultStreakWindow is the qualifying window between consecutive actions.
// Midpoint of the product range (24-48h); override via configuration.
const DefaultStreakWindow = 36 * time.Hour

// DefaultCoinRatio grants one coin per this many points.
const DefaultCoinRatio = 10

// Rules is the single shared, versioned rules object injected into the
// engine. Every resolver reads from here so divergent per-widget tables
// cannot reappear.
type Rules struct {
	Version      string
	StreakWindow time.Duration
	Multipliers  MultiplierTable
	Ranks        RankTable
	CoinRatio    int
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		Version:      "v1",
		StreakWindow: DefaultStreakWindow,
		Multipliers:  DefaultMultiplierTable(),
		Ranks:        DefaultRankTable(),
		CoinRatio:    DefaultCoinRatio,
	}
}

// Validate checks every embedded table.
func (r Rules) Validate() error {
	if r.StreakWindow <= 0 {
		return fmt.Errorf("streak window must be positive, got %s", r.StreakWindow)
	}
	if r.CoinRatio <= 0 {
		return fmt.Errorf("coin ratio must be positive, got %d", r.CoinRatio)
	}
	if err := r.Multipliers.Validate(); err != nil {
		return fmt.Errorf("multiplier table: %w", err)
	}
	if err := r.Ranks.Validate(); err != nil {
		return fmt.Errorf("rank table: %w", err)
	}
	return nil
}

// Grant computes the points and coins awarded for base points at the given
// streak length.
func (r Rules) Grant(basePoints Points, streakLength int) (Points, Coins) {
	multiplier := r.Multipliers.Resolve(streakLength)
	points := basePoints * Points(multiplier)
	return points, Coins(int64(points) / int64(r.CoinRatio))
}
