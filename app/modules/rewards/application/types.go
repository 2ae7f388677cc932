package rewardsservice

import (
	"time"

	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/results"
)

// ActionOperationResult is the outcome of processing one action event.
type ActionOperationResult = results.OperationResult[rewardsevents.ActionProcessedPayload, rewardsevents.ActionFailedPayload]

// DeactivateOperationResult is the outcome of a deactivation request.
type DeactivateOperationResult = results.OperationResult[rewardsevents.AccountDeactivatePayload, rewardsevents.ActionFailedPayload]

// RankView is the UI-facing form of a rank tier.
type RankView struct {
	Name      string `json:"name"`
	MinPoints int64  `json:"min_points"`
	Icon      string `json:"icon"`
	Gradient  string `json:"gradient"`
}

// AccountSummary is the derived view the UI widgets read. It is always the
// result of a fully-applied or fully-rejected event, never an intermediate
// state.
type AccountSummary struct {
	AccountID           string    `json:"account_id"`
	PointsBalance       int64     `json:"points_balance"`
	CoinsBalance        int64     `json:"coins_balance"`
	CurrentStreak       int       `json:"current_streak"`
	LongestStreak       int       `json:"longest_streak"`
	LastActionAt        time.Time `json:"last_action_at,omitzero"`
	Rank                RankView  `json:"rank"`
	NextRank            *RankView `json:"next_rank,omitempty"`
	ProgressPercent     float64   `json:"progress_percent"`
	PointsToNext        int64     `json:"points_to_next"`
	LeaderboardPosition int       `json:"leaderboard_position,omitempty"`
}

// LeaderboardRow is one positioned row of the public leaderboard view.
type LeaderboardRow struct {
	AccountID string `json:"account_id"`
	Points    int64  `json:"points"`
	Position  int    `json:"position"`
}

// ImportReport summarizes a bulk spreadsheet import.
type ImportReport struct {
	Rows       int `json:"rows"`
	Applied    int `json:"applied"`
	Duplicates int `json:"duplicates"`
	Rejected   int `json:"rejected"`
}
