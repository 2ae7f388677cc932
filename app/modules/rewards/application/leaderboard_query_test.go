package rewardsservice

import (
	"context"
	"testing"
	"time"

	"github.com/uptrace/bun"

	rewardsdb "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories"
)

func seedAccounts(repo *FakeRewardsRepository, base time.Time) {
	repo.Accounts["alice"] = &rewardsdb.Account{
		AccountID: "alice", PointsBalance: 900, FirstReachedAt: base, IsActive: true,
	}
	repo.Accounts["bobby"] = &rewardsdb.Account{
		AccountID: "bobby", PointsBalance: 1200, FirstReachedAt: base.Add(time.Hour), IsActive: true,
	}
	repo.Accounts["carol"] = &rewardsdb.Account{
		AccountID: "carol", PointsBalance: 900, FirstReachedAt: base.Add(-time.Hour), IsActive: true,
	}
	repo.Accounts["dave"] = &rewardsdb.Account{
		AccountID: "dave", PointsBalance: 5000, FirstReachedAt: base, IsActive: false,
	}
}

func TestRewardsService_WarmUpAndGetLeaderboard(t *testing.T) {
	repo := NewFakeRewardsRepository()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	seedAccounts(repo, base)
	service := newTestService(repo)

	if err := service.WarmUp(context.Background()); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	rows, err := service.GetLeaderboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// dave is inactive and must not appear; carol outranks alice on the
	// earlier first-reached tie-break.
	want := []LeaderboardRow{
		{AccountID: "bobby", Points: 1200, Position: 1},
		{AccountID: "carol", Points: 900, Position: 2},
		{AccountID: "alice", Points: 900, Position: 3},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d: %+v", len(want), len(rows), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}

	top1, err := service.GetLeaderboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top1) != 1 || top1[0].AccountID != "bobby" {
		t.Errorf("expected bobby alone in top 1, got %+v", top1)
	}
}

func TestRewardsService_VerifyLeaderboard(t *testing.T) {
	repo := NewFakeRewardsRepository()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	seedAccounts(repo, base)
	service := newTestService(repo)

	if err := service.WarmUp(context.Background()); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	consistent, err := service.VerifyLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !consistent {
		t.Error("fresh warmup must match the rebuilt standings")
	}

	// Tamper with the live index to simulate drift.
	service.leaderboard.Upsert("alice", 9999, base)
	consistent, err = service.VerifyLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consistent {
		t.Error("expected drift to be detected")
	}
}

func TestRewardsService_SnapshotLeaderboard(t *testing.T) {
	repo := NewFakeRewardsRepository()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	seedAccounts(repo, base)
	service := newTestService(repo)

	if err := service.WarmUp(context.Background()); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}
	if err := service.SnapshotLeaderboard(context.Background()); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	snapshot, err := repo.LatestSnapshot(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected a stored snapshot")
	}
	if !snapshot.Consistent {
		t.Error("expected a consistent snapshot")
	}
	if len(snapshot.Standings) != 3 {
		t.Errorf("expected 3 standings rows, got %d", len(snapshot.Standings))
	}
	if snapshot.Standings[0].AccountID != "bobby" || snapshot.Standings[0].Position != 1 {
		t.Errorf("unexpected first row: %+v", snapshot.Standings[0])
	}
}

func TestRewardsService_DeactivateAccount(t *testing.T) {
	repo := NewFakeRewardsRepository()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	seedAccounts(repo, base)
	service := newTestService(repo)

	if err := service.WarmUp(context.Background()); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	result, err := service.DeactivateAccount(context.Background(), "carol", "user request")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected success, got %+v", result.Failure)
	}

	if _, ok := service.leaderboard.Rank("carol"); ok {
		t.Error("deactivated account must leave the leaderboard")
	}
	if repo.Accounts["carol"].IsActive {
		t.Error("expected persisted row to be inactive")
	}
	if repo.Accounts["carol"].PointsBalance != 900 {
		t.Error("deactivation must keep balances")
	}

	// alice moves up after carol leaves.
	rows, err := service.GetLeaderboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[1].AccountID != "alice" || rows[1].Position != 2 {
		t.Errorf("unexpected standings after deactivation: %+v", rows)
	}
}

func TestRewardsService_DeactivateAccount_Unknown(t *testing.T) {
	service := newTestService(NewFakeRewardsRepository())

	result, err := service.DeactivateAccount(context.Background(), "ghost", "cleanup")
	if err != nil {
		t.Fatalf("unknown account should not surface a transport error: %v", err)
	}
	if !result.IsFailure() {
		t.Fatal("expected failure result")
	}
	if result.Failure.Reason != "unknown_account" {
		t.Errorf("expected unknown_account reason, got %q", result.Failure.Reason)
	}
}

func TestRewardsService_VerifyLeaderboard_MicrosecondRoundTrip(t *testing.T) {
	repo := NewFakeRewardsRepository()
	service := newTestService(repo)

	// Producers stamp events with wall-clock times carrying nanoseconds.
	at := time.Date(2026, time.March, 1, 12, 0, 0, 123456789, time.UTC)
	result, err := service.ProcessActionEvent(context.Background(), testEvent("evt-ns", "alice", 50, at))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected success, got %+v", result.Failure)
	}

	// Postgres keeps timestamps at microsecond precision, so a reload
	// returns the truncated value.
	stored := repo.Accounts["alice"]
	stored.FirstReachedAt = stored.FirstReachedAt.Truncate(time.Microsecond)

	consistent, err := service.VerifyLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !consistent {
		t.Error("precision loss on the stored timestamp must not count as drift")
	}
}

func TestRewardsService_SnapshotLeaderboard_VerdictMatchesRows(t *testing.T) {
	repo := NewFakeRewardsRepository()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	seedAccounts(repo, base)
	service := newTestService(repo)

	if err := service.WarmUp(context.Background()); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	// An event lands on the index while the snapshot is being verified.
	// The persisted rows must still be the ones the verdict was computed
	// on, not a later view.
	repo.ListActiveAccountsFunc = func(ctx context.Context, db bun.IDB) ([]rewardsdb.Account, error) {
		repo.ListActiveAccountsFunc = nil
		service.leaderboard.Upsert("eve", 9000, base.Add(time.Hour))
		return repo.ListActiveAccounts(ctx, db)
	}

	if err := service.SnapshotLeaderboard(context.Background()); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	snapshot, err := repo.LatestSnapshot(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected a stored snapshot")
	}
	if !snapshot.Consistent {
		t.Error("expected a consistent verdict for the captured standings")
	}
	if len(snapshot.Standings) != 3 {
		t.Fatalf("expected the 3 captured rows, got %d", len(snapshot.Standings))
	}
	for _, row := range snapshot.Standings {
		if row.AccountID == "eve" {
			t.Error("rows added after capture must not be persisted with the old verdict")
		}
	}
}
