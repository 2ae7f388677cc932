package rewardshandlers

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace/noop"

	rewardsservice "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/application"
	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability"
)

// FakeRewardsService stubs the service interface for handler tests.
type FakeRewardsService struct {
	ProcessActionEventFunc func(ctx context.Context, event rewardsdomain.ActionEvent) (rewardsservice.ActionOperationResult, error)
	DeactivateAccountFunc  func(ctx context.Context, accountID rewardsdomain.AccountID, reason string) (rewardsservice.DeactivateOperationResult, error)
}

func (f *FakeRewardsService) ProcessActionEvent(ctx context.Context, event rewardsdomain.ActionEvent) (rewardsservice.ActionOperationResult, error) {
	if f.ProcessActionEventFunc != nil {
		return f.ProcessActionEventFunc(ctx, event)
	}
	return rewardsservice.ActionOperationResult{}, nil
}

func (f *FakeRewardsService) DeactivateAccount(ctx context.Context, accountID rewardsdomain.AccountID, reason string) (rewardsservice.DeactivateOperationResult, error) {
	if f.DeactivateAccountFunc != nil {
		return f.DeactivateAccountFunc(ctx, accountID, reason)
	}
	return rewardsservice.DeactivateOperationResult{}, nil
}

func (f *FakeRewardsService) GetAccountSummary(ctx context.Context, accountID rewardsdomain.AccountID) (*rewardsservice.AccountSummary, error) {
	return &rewardsservice.AccountSummary{AccountID: string(accountID)}, nil
}

func (f *FakeRewardsService) GetLeaderboard(ctx context.Context, limit int) ([]rewardsservice.LeaderboardRow, error) {
	return nil, nil
}

func (f *FakeRewardsService) RankTable() rewardsdomain.RankTable {
	return rewardsdomain.DefaultRankTable()
}

func (f *FakeRewardsService) WarmUp(ctx context.Context) error { return nil }

func (f *FakeRewardsService) VerifyLeaderboard(ctx context.Context) (bool, error) { return true, nil }

func (f *FakeRewardsService) SnapshotLeaderboard(ctx context.Context) error { return nil }

func (f *FakeRewardsService) RenderPointsChart(ctx context.Context, accountID rewardsdomain.AccountID, days int) ([]byte, error) {
	return nil, nil
}

func (f *FakeRewardsService) ExportLeaderboard(ctx context.Context, limit int) ([]byte, error) {
	return nil, nil
}

func (f *FakeRewardsService) ImportActionEvents(ctx context.Context, r io.Reader) (*rewardsservice.ImportReport, error) {
	return &rewardsservice.ImportReport{}, nil
}

var _ rewardsservice.Service = (*FakeRewardsService)(nil)

func newTestHandlers(service rewardsservice.Service) *RewardsHandlers {
	return NewRewardsHandlers(
		service,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewTestRewardsMetrics(),
		noop.NewTracerProvider().Tracer("test"),
	).(*RewardsHandlers)
}
