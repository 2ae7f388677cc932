// Package rewardsevents defines the topics and payloads the rewards module
// consumes and publishes.
package rewardsevents

import (
	"time"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
)

// Stream is the JetStream stream carrying all rewards subjects.
const Stream = "rewards"

const (
	// ActionReceived is the inbound subject for action events from the
	// donation hook, dhikr page and prayer tracker.
	ActionReceived = "rewards.action.received"

	// ActionProcessed reports a fully-applied event.
	ActionProcessed = "rewards.action.processed"

	// ActionFailed reports a rejected event.
	ActionFailed = "rewards.action.failed"

	// RankPromoted fires when an event moves an account across a rank
	// boundary. Celebration layers subscribe to this.
	RankPromoted = "rewards.rank.promoted"

	// AccountDeactivateRequested asks the engine to hide an account from
	// the leaderboard.
	AccountDeactivateRequested = "rewards.account.deactivate"

	// AccountDeactivated confirms the request.
	AccountDeactivated = "rewards.account.deactivated"
)

// ActionEventPayload is the wire form of a domain ActionEvent.
type ActionEventPayload struct {
	EventID    string    `json:"event_id"`
	AccountID  string    `json:"account_id"`
	ActionType string    `json:"action_type"`
	BasePoints int64     `json:"base_points"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToDomain converts the payload to its domain form.
func (p ActionEventPayload) ToDomain() rewardsdomain.ActionEvent {
	return rewardsdomain.ActionEvent{
		EventID:    p.EventID,
		AccountID:  rewardsdomain.AccountID(p.AccountID),
		ActionType: rewardsdomain.ActionType(p.ActionType),
		BasePoints: rewardsdomain.Points(p.BasePoints),
		OccurredAt: p.OccurredAt,
	}
}

// ActionProcessedPayload reports a fully-applied event.
type ActionProcessedPayload struct {
	EventID       string    `json:"event_id"`
	AccountID     string    `json:"account_id"`
	ActionType    string    `json:"action_type"`
	PointsGranted int64     `json:"points_granted"`
	CoinsGranted  int64     `json:"coins_granted"`
	Multiplier    int       `json:"multiplier"`
	BalanceAfter  int64     `json:"balance_after"`
	CoinsAfter    int64     `json:"coins_after"`
	StreakAfter   int       `json:"streak_after"`
	Continued     bool      `json:"continued"`
	Rank          string    `json:"rank"`
	PreviousRank  string    `json:"previous_rank"`
	Promoted      bool      `json:"promoted"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ActionFailedPayload reports a rejected event. Duplicate events are
// reported with Duplicate set so upstream transports can treat the replay
// as success.
type ActionFailedPayload struct {
	EventID   string `json:"event_id"`
	AccountID string `json:"account_id"`
	Reason    string `json:"reason"`
	Duplicate bool   `json:"duplicate"`
}

// RankPromotedPayload announces a tier boundary crossing.
type RankPromotedPayload struct {
	AccountID string    `json:"account_id"`
	FromRank  string    `json:"from_rank"`
	ToRank    string    `json:"to_rank"`
	Balance   int64     `json:"balance"`
	At        time.Time `json:"at"`
}

// AccountDeactivatePayload asks for or confirms a deactivation.
type AccountDeactivatePayload struct {
	AccountID string `json:"account_id"`
}
