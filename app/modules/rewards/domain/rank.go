package rewardsdomain

import (
	"fmt"
	"sort"
)

// RankTier is one row of the static rank threshold table. Icon and Gradient
// are opaque presentation hints carried through to the UI.
type RankTier struct {
	Name      string
	MinPoints Points
	Icon      string
	Gradient  string
}

// RankTable is the ordered tier table, ascending by MinPoints. It is
// immutable reference data injected from configuration, never per-account
// state.
type RankTable []RankTier

// RankStatus is the resolved rank for a balance, with progress toward the
// next tier. NextRank is nil at the top tier; that is the terminal state,
// not an error.
type RankStatus struct {
	Rank            RankTier
	NextRank        *RankTier
	ProgressPercent float64
	PointsToNext    Points
}

// DefaultRankTable returns the stock tier table used when no override is
// configured.
func DefaultRankTable() RankTable {
	return RankTable{
		{Name: "Newcomer", MinPoints: 0, Icon: "seedling", Gradient: "from-stone-400 to-stone-600"},
		{Name: "Helper", MinPoints: 250, Icon: "hand-heart", Gradient: "from-emerald-400 to-emerald-600"},
		{Name: "Giver", MinPoints: 1000, Icon: "gift", Gradient: "from-sky-400 to-sky-600"},
		{Name: "Patron", MinPoints: 2500, Icon: "star", Gradient: "from-violet-400 to-violet-600"},
		{Name: "Guardian", MinPoints: 5000, Icon: "shield", Gradient: "from-amber-400 to-amber-600"},
		{Name: "Champion", MinPoints: 10000, Icon: "crown", Gradient: "from-yellow-300 to-orange-500"},
	}
}

// Validate checks that the table is non-empty, starts at zero points and is
// strictly ascending with unique names.
func (t RankTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("rank table is empty")
	}
	if t[0].MinPoints != 0 {
		return fmt.Errorf("rank table must start at 0 points, got %d", t[0].MinPoints)
	}
	seen := make(map[string]bool, len(t))
	for i, tier := range t {
		if tier.Name == "" {
			return fmt.Errorf("rank tier %d has no name", i)
		}
		if seen[tier.Name] {
			return fmt.Errorf("duplicate rank tier name %q", tier.Name)
		}
		seen[tier.Name] = true
		if i > 0 && tier.MinPoints <= t[i-1].MinPoints {
			return fmt.Errorf("rank table not strictly ascending at tier %q", tier.Name)
		}
	}
	return nil
}

// Resolve returns the rank status for a balance: the highest tier whose
// MinPoints does not exceed the balance, plus progress toward the tier
// above. Pure function of the balance and the table.
func (t RankTable) Resolve(balance Points) RankStatus {
	if balance < 0 {
		balance = 0
	}
	// First tier with MinPoints > balance; the current rank sits before it.
	idx := sort.Search(len(t), func(i int) bool { return t[i].MinPoints > balance })
	if idx == 0 {
		// Table validation guarantees tier 0 starts at 0 points.
		idx = 1
	}
	current := t[idx-1]

	status := RankStatus{Rank: current}
	if idx >= len(t) {
		return status
	}

	next := t[idx]
	status.NextRank = &next
	status.PointsToNext = next.MinPoints - balance
	if status.PointsToNext < 0 {
		status.PointsToNext = 0
	}

	span := next.MinPoints - current.MinPoints
	if span > 0 {
		progress := float64(balance-current.MinPoints) / float64(span) * 100
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		status.ProgressPercent = progress
	}
	return status
}
