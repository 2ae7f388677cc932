package rewardsservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/uptrace/bun"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
	rewardsdb "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories"
)

// ------------------------
// Fake Rewards Repo
// ------------------------

// FakeRewardsRepository is an in-memory stand-in for rewardsdb.Repository.
// Every method can be overridden per test; the defaults behave like an empty
// database that accepts all writes.
type FakeRewardsRepository struct {
	mu    sync.Mutex
	trace []string

	Accounts  map[string]*rewardsdb.Account
	Entries   []rewardsdb.LedgerEntry
	Snapshots []rewardsdb.LeaderboardSnapshot

	GetAccountFunc         func(ctx context.Context, db bun.IDB, accountID string) (*rewardsdb.Account, error)
	HasEventFunc           func(ctx context.Context, db bun.IDB, accountID, eventID string) (bool, error)
	RecordGrantFunc        func(ctx context.Context, account *rewardsdb.Account, entry *rewardsdb.LedgerEntry) error
	ListActiveAccountsFunc func(ctx context.Context, db bun.IDB) ([]rewardsdb.Account, error)
}

// NewFakeRewardsRepository initializes an empty fake.
func NewFakeRewardsRepository() *FakeRewardsRepository {
	return &FakeRewardsRepository{
		Accounts: make(map[string]*rewardsdb.Account),
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRewardsRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRewardsRepository) record(step string) {
	f.mu.Lock()
	f.trace = append(f.trace, step)
	f.mu.Unlock()
}

func (f *FakeRewardsRepository) GetAccount(ctx context.Context, db bun.IDB, accountID string) (*rewardsdb.Account, error) {
	f.record("GetAccount")
	if f.GetAccountFunc != nil {
		return f.GetAccountFunc(ctx, db, accountID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.Accounts[accountID]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (f *FakeRewardsRepository) HasEvent(ctx context.Context, db bun.IDB, accountID, eventID string) (bool, error) {
	f.record("HasEvent")
	if f.HasEventFunc != nil {
		return f.HasEventFunc(ctx, db, accountID, eventID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, entry := range f.Entries {
		if entry.AccountID == accountID && entry.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeRewardsRepository) RecordGrant(ctx context.Context, account *rewardsdb.Account, entry *rewardsdb.LedgerEntry) error {
	f.record("RecordGrant")
	if f.RecordGrantFunc != nil {
		return f.RecordGrantFunc(ctx, account, entry)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.Entries {
		if existing.AccountID == entry.AccountID && existing.EventID == entry.EventID {
			return fmt.Errorf("FakeRewardsRepository.RecordGrant: %w", rewardsdomain.ErrDuplicateEvent)
		}
	}
	f.Entries = append(f.Entries, *entry)
	copied := *account
	f.Accounts[account.AccountID] = &copied
	return nil
}

func (f *FakeRewardsRepository) GetLedgerEntries(ctx context.Context, db bun.IDB, accountID string, limit int) ([]rewardsdb.LedgerEntry, error) {
	f.record("GetLedgerEntries")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []rewardsdb.LedgerEntry
	for _, entry := range f.Entries {
		if entry.AccountID == accountID {
			out = append(out, entry)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *FakeRewardsRepository) ListActiveAccounts(ctx context.Context, db bun.IDB) ([]rewardsdb.Account, error) {
	f.record("ListActiveAccounts")
	if f.ListActiveAccountsFunc != nil {
		return f.ListActiveAccountsFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []rewardsdb.Account
	for _, account := range f.Accounts {
		if account.IsActive {
			out = append(out, *account)
		}
	}
	return out, nil
}

func (f *FakeRewardsRepository) SetAccountActive(ctx context.Context, db bun.IDB, accountID string, active bool) error {
	f.record("SetAccountActive")
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.Accounts[accountID]
	if !ok {
		return rewardsdb.ErrNoRowsAffected
	}
	account.IsActive = active
	return nil
}

func (f *FakeRewardsRepository) SaveSnapshot(ctx context.Context, db bun.IDB, snapshot *rewardsdb.LeaderboardSnapshot) error {
	f.record("SaveSnapshot")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Snapshots = append(f.Snapshots, *snapshot)
	return nil
}

func (f *FakeRewardsRepository) LatestSnapshot(ctx context.Context, db bun.IDB) (*rewardsdb.LeaderboardSnapshot, error) {
	f.record("LatestSnapshot")
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Snapshots) == 0 {
		return nil, nil
	}
	copied := f.Snapshots[len(f.Snapshots)-1]
	return &copied, nil
}

var _ rewardsdb.Repository = (*FakeRewardsRepository)(nil)

// newTestService wires a service around the fake repo with silent telemetry.
func newTestService(repo rewardsdb.Repository) *RewardsService {
	return NewRewardsService(
		repo,
		nil,
		rewardsdomain.DefaultRules(),
		testLogger(),
		testMetrics(),
		testTracer(),
	)
}
