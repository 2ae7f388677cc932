package rewardsdomain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var lbBase = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestLeaderboardTieBreakFavorsEarlierAchiever(t *testing.T) {
	lb := NewLeaderboard()
	lb.Upsert("b", 500, lbBase.Add(20*time.Second))
	lb.Upsert("a", 500, lbBase.Add(10*time.Second))

	top := lb.Top(2)
	if top[0].AccountID != "a" || top[1].AccountID != "b" {
		t.Fatalf("expected a before b on equal points, got %+v", top)
	}
	if top[0].Position != 1 || top[1].Position != 2 {
		t.Fatalf("positions must be 1-based and sequential, got %+v", top)
	}
}

func TestLeaderboardUpsertIsIdempotent(t *testing.T) {
	lb := NewLeaderboard()
	lb.Upsert("a", 300, lbBase)
	lb.Upsert("b", 200, lbBase)

	before := lb.Top(0)
	lb.Upsert("a", 300, lbBase)
	after := lb.Top(0)

	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("unchanged upsert altered standings (-before +after):\n%s", diff)
	}
}

func TestLeaderboardRepositionsOnBalanceChange(t *testing.T) {
	lb := NewLeaderboard()
	lb.Upsert("a", 100, lbBase)
	lb.Upsert("b", 200, lbBase.Add(time.Second))

	if pos, _ := lb.Rank("a"); pos != 2 {
		t.Fatalf("expected a at position 2, got %d", pos)
	}

	lb.Upsert("a", 300, lbBase.Add(2*time.Second))
	if pos, _ := lb.Rank("a"); pos != 1 {
		t.Fatalf("expected a promoted to position 1, got %d", pos)
	}
	if pos, _ := lb.Rank("b"); pos != 2 {
		t.Fatalf("expected b demoted to position 2, got %d", pos)
	}
}

func TestLeaderboardRankUnknownAccount(t *testing.T) {
	lb := NewLeaderboard()
	if _, ok := lb.Rank("ghost"); ok {
		t.Fatal("unknown account must have no rank")
	}
}

func TestLeaderboardRemove(t *testing.T) {
	lb := NewLeaderboard()
	lb.Upsert("a", 100, lbBase)
	lb.Upsert("b", 50, lbBase)

	lb.Remove("a")
	if lb.Len() != 1 {
		t.Fatalf("expected one entry after removal, got %d", lb.Len())
	}
	if pos, _ := lb.Rank("b"); pos != 1 {
		t.Fatalf("expected b promoted after removal, got %d", pos)
	}
	// Removing twice is a no-op.
	lb.Remove("a")
}

func TestLeaderboardTopLimits(t *testing.T) {
	lb := NewLeaderboard()
	for i := 0; i < 5; i++ {
		lb.Upsert(AccountID(fmt.Sprintf("acct-%d", i)), Points(i*10), lbBase.Add(time.Duration(i)*time.Second))
	}

	if got := len(lb.Top(3)); got != 3 {
		t.Fatalf("Top(3) returned %d rows", got)
	}
	if got := len(lb.Top(100)); got != 5 {
		t.Fatalf("Top(100) should cap at size, got %d", got)
	}
	if got := len(lb.Top(0)); got != 5 {
		t.Fatalf("Top(0) should return everything, got %d", got)
	}
}

func TestLeaderboardConsistencyWithRebuild(t *testing.T) {
	// Incrementally built state must equal a from-scratch rebuild for any
	// interleaving of account updates.
	rng := rand.New(rand.NewSource(42))
	lb := NewLeaderboard()
	latest := make(map[AccountID]LeaderboardEntry)

	for i := 0; i < 1000; i++ {
		id := AccountID(fmt.Sprintf("acct-%d", rng.Intn(50)))
		entry := LeaderboardEntry{
			AccountID:      id,
			Points:         Points(rng.Intn(2000)),
			FirstReachedAt: lbBase.Add(time.Duration(i) * time.Second),
		}
		lb.Upsert(entry.AccountID, entry.Points, entry.FirstReachedAt)
		latest[id] = entry
	}

	raw := make([]LeaderboardEntry, 0, len(latest))
	for _, entry := range latest {
		raw = append(raw, entry)
	}
	rebuilt := BuildStandings(raw)

	if diff := cmp.Diff(rebuilt, lb.Top(0)); diff != "" {
		t.Fatalf("incremental standings diverge from rebuild (-rebuilt +incremental):\n%s", diff)
	}
}
