package rewardsdomain

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// LeaderboardEntry is one account's standing input: cumulative points and
// the moment the account first reached that balance. Earlier achievers rank
// higher on ties.
type LeaderboardEntry struct {
	AccountID      AccountID
	Points         Points
	FirstReachedAt time.Time
}

// Standing is a positioned leaderboard row. Position is 1-based.
type Standing struct {
	AccountID      AccountID
	Points         Points
	Position       int
	FirstReachedAt time.Time
}

// CompareEntries is the total order used everywhere a leaderboard is built:
// descending points, then ascending FirstReachedAt, then account id as the
// final deterministic tie-break.
func CompareEntries(a, b LeaderboardEntry) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := a.FirstReachedAt.Compare(b.FirstReachedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.AccountID, b.AccountID)
}

// Leaderboard maintains the shared ordered index of accounts by points.
// It carries its own lock so cross-account repositioning never holds an
// account-level lock.
type Leaderboard struct {
	mu      sync.RWMutex
	entries map[AccountID]LeaderboardEntry
	ordered []LeaderboardEntry // kept sorted by CompareEntries
}

// NewLeaderboard returns an empty leaderboard.
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{
		entries: make(map[AccountID]LeaderboardEntry),
	}
}

// Upsert inserts or repositions an account. It is idempotent: an unchanged
// entry does not alter position; a changed balance triggers repositioning
// only.
func (l *Leaderboard) Upsert(accountID AccountID, points Points, firstReachedAt time.Time) {
	entry := LeaderboardEntry{AccountID: accountID, Points: points, FirstReachedAt: firstReachedAt}

	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.entries[accountID]; ok {
		if prev == entry {
			return
		}
		l.removeOrdered(prev)
	}
	l.entries[accountID] = entry

	idx, _ := slices.BinarySearchFunc(l.ordered, entry, CompareEntries)
	l.ordered = slices.Insert(l.ordered, idx, entry)
}

// Remove drops an account from the index (deactivation). History elsewhere
// is untouched.
func (l *Leaderboard) Remove(accountID AccountID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.entries[accountID]
	if !ok {
		return
	}
	delete(l.entries, accountID)
	l.removeOrdered(prev)
}

// removeOrdered must be called with the write lock held.
func (l *Leaderboard) removeOrdered(entry LeaderboardEntry) {
	idx, found := slices.BinarySearchFunc(l.ordered, entry, CompareEntries)
	if found {
		l.ordered = slices.Delete(l.ordered, idx, idx+1)
	}
}

// Rank returns the 1-based position of an account, or false if it has no
// standing.
func (l *Leaderboard) Rank(accountID AccountID) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.entries[accountID]
	if !ok {
		return 0, false
	}
	idx, found := slices.BinarySearchFunc(l.ordered, entry, CompareEntries)
	if !found {
		return 0, false
	}
	return idx + 1, true
}

// Top returns the first n standings in order. n <= 0 or beyond the index
// size returns everything.
func (l *Leaderboard) Top(n int) []Standing {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.ordered) {
		n = len(l.ordered)
	}
	standings := make([]Standing, n)
	for i := 0; i < n; i++ {
		e := l.ordered[i]
		standings[i] = Standing{
			AccountID:      e.AccountID,
			Points:         e.Points,
			Position:       i + 1,
			FirstReachedAt: e.FirstReachedAt,
		}
	}
	return standings
}

// Len returns the number of ranked accounts.
func (l *Leaderboard) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ordered)
}

// BuildStandings sorts raw entries into positioned standings. A from-scratch
// rebuild through this function must reproduce the incremental index
// exactly.
func BuildStandings(entries []LeaderboardEntry) []Standing {
	sorted := make([]LeaderboardEntry, len(entries))
	copy(sorted, entries)
	slices.SortFunc(sorted, CompareEntries)

	standings := make([]Standing, len(sorted))
	for i, e := range sorted {
		standings[i] = Standing{
			AccountID:      e.AccountID,
			Points:         e.Points,
			Position:       i + 1,
			FirstReachedAt: e.FirstReachedAt,
		}
	}
	return standings
}
