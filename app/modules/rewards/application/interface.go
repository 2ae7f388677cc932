package rewardsservice

import (
	"context"
	"io"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
)

// Service handles rewards business logic.
type Service interface {
	ProcessActionEvent(ctx context.Context, event rewardsdomain.ActionEvent) (ActionOperationResult, error)
	GetAccountSummary(ctx context.Context, accountID rewardsdomain.AccountID) (*AccountSummary, error)
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)
	RankTable() rewardsdomain.RankTable
	DeactivateAccount(ctx context.Context, accountID rewardsdomain.AccountID, reason string) (DeactivateOperationResult, error)
	WarmUp(ctx context.Context) error
	VerifyLeaderboard(ctx context.Context) (bool, error)
	SnapshotLeaderboard(ctx context.Context) error
	RenderPointsChart(ctx context.Context, accountID rewardsdomain.AccountID, days int) ([]byte, error)
	ExportLeaderboard(ctx context.Context, limit int) ([]byte, error)
	ImportActionEvents(ctx context.Context, r io.Reader) (*ImportReport, error)
}
