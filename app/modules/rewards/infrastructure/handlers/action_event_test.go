package rewardshandlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	rewardsservice "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/application"
	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/results"
)

func actionMessage(t *testing.T, payload rewardsevents.ActionEventPayload) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	middleware.SetCorrelationID("corr-123", msg)
	return msg
}

func TestHandleActionReceived_Success(t *testing.T) {
	occurredAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	service := &FakeRewardsService{
		ProcessActionEventFunc: func(ctx context.Context, event rewardsdomain.ActionEvent) (rewardsservice.ActionOperationResult, error) {
			if event.EventID != "evt-1" {
				t.Errorf("unexpected event id %q", event.EventID)
			}
			return results.SuccessResult[rewardsevents.ActionProcessedPayload, rewardsevents.ActionFailedPayload](rewardsevents.ActionProcessedPayload{
				EventID:       "evt-1",
				AccountID:     "user-1",
				PointsGranted: 50,
				Rank:          "Newcomer",
				PreviousRank:  "Newcomer",
				OccurredAt:    occurredAt,
			}), nil
		},
	}
	handlers := newTestHandlers(service)

	out, err := handlers.HandleActionReceived(actionMessage(t, rewardsevents.ActionEventPayload{
		EventID:    "evt-1",
		AccountID:  "user-1",
		ActionType: "donation",
		BasePoints: 50,
		OccurredAt: occurredAt,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one result message, got %d", len(out))
	}
	if topic := out[0].Metadata.Get(TopicMetadataKey); topic != rewardsevents.ActionProcessed {
		t.Errorf("expected topic %q, got %q", rewardsevents.ActionProcessed, topic)
	}
	if got := middleware.MessageCorrelationID(out[0]); got != "corr-123" {
		t.Errorf("expected correlation id to propagate, got %q", got)
	}

	var processed rewardsevents.ActionProcessedPayload
	if err := json.Unmarshal(out[0].Payload, &processed); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if processed.PointsGranted != 50 {
		t.Errorf("expected 50 points in result payload, got %d", processed.PointsGranted)
	}
}

func TestHandleActionReceived_Promotion(t *testing.T) {
	occurredAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	service := &FakeRewardsService{
		ProcessActionEventFunc: func(ctx context.Context, event rewardsdomain.ActionEvent) (rewardsservice.ActionOperationResult, error) {
			return results.SuccessResult[rewardsevents.ActionProcessedPayload, rewardsevents.ActionFailedPayload](rewardsevents.ActionProcessedPayload{
				EventID:      "evt-1",
				AccountID:    "user-1",
				BalanceAfter: 260,
				Rank:         "Helper",
				PreviousRank: "Newcomer",
				Promoted:     true,
				OccurredAt:   occurredAt,
			}), nil
		},
	}
	handlers := newTestHandlers(service)

	out, err := handlers.HandleActionReceived(actionMessage(t, rewardsevents.ActionEventPayload{
		EventID:    "evt-1",
		AccountID:  "user-1",
		ActionType: "donation",
		BasePoints: 20,
		OccurredAt: occurredAt,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected processed plus promotion messages, got %d", len(out))
	}
	if topic := out[1].Metadata.Get(TopicMetadataKey); topic != rewardsevents.RankPromoted {
		t.Errorf("expected promotion topic, got %q", topic)
	}

	var promotion rewardsevents.RankPromotedPayload
	if err := json.Unmarshal(out[1].Payload, &promotion); err != nil {
		t.Fatalf("unmarshal promotion: %v", err)
	}
	if promotion.FromRank != "Newcomer" || promotion.ToRank != "Helper" {
		t.Errorf("unexpected promotion payload: %+v", promotion)
	}
	if promotion.Balance != 260 {
		t.Errorf("expected balance 260, got %d", promotion.Balance)
	}
}

func TestHandleActionReceived_Failure(t *testing.T) {
	service := &FakeRewardsService{
		ProcessActionEventFunc: func(ctx context.Context, event rewardsdomain.ActionEvent) (rewardsservice.ActionOperationResult, error) {
			return results.FailureResult[rewardsevents.ActionProcessedPayload](rewardsevents.ActionFailedPayload{
				EventID:   event.EventID,
				AccountID: string(event.AccountID),
				Reason:    "duplicate_event",
				Duplicate: true,
			}, rewardsdomain.ErrDuplicateEvent), nil
		},
	}
	handlers := newTestHandlers(service)

	out, err := handlers.HandleActionReceived(actionMessage(t, rewardsevents.ActionEventPayload{
		EventID:    "evt-1",
		AccountID:  "user-1",
		ActionType: "donation",
		BasePoints: 50,
		OccurredAt: time.Now().UTC(),
	}))
	if err != nil {
		t.Fatalf("failure results must not error the handler: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one failed message, got %d", len(out))
	}
	if topic := out[0].Metadata.Get(TopicMetadataKey); topic != rewardsevents.ActionFailed {
		t.Errorf("expected failed topic, got %q", topic)
	}

	var failed rewardsevents.ActionFailedPayload
	if err := json.Unmarshal(out[0].Payload, &failed); err != nil {
		t.Fatalf("unmarshal failed payload: %v", err)
	}
	if !failed.Duplicate {
		t.Error("expected duplicate flag to carry through")
	}
}

func TestHandleActionReceived_TransportError(t *testing.T) {
	dbErr := errors.New("connection refused")
	service := &FakeRewardsService{
		ProcessActionEventFunc: func(ctx context.Context, event rewardsdomain.ActionEvent) (rewardsservice.ActionOperationResult, error) {
			return rewardsservice.ActionOperationResult{}, dbErr
		},
	}
	handlers := newTestHandlers(service)

	_, err := handlers.HandleActionReceived(actionMessage(t, rewardsevents.ActionEventPayload{
		EventID:    "evt-1",
		AccountID:  "user-1",
		ActionType: "donation",
		BasePoints: 50,
		OccurredAt: time.Now().UTC(),
	}))
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected transport error to propagate for redelivery, got %v", err)
	}
}

func TestHandleActionReceived_MalformedPayload(t *testing.T) {
	handlers := newTestHandlers(&FakeRewardsService{})

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	_, err := handlers.HandleActionReceived(msg)
	if err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestHandleAccountDeactivateRequested(t *testing.T) {
	service := &FakeRewardsService{
		DeactivateAccountFunc: func(ctx context.Context, accountID rewardsdomain.AccountID, reason string) (rewardsservice.DeactivateOperationResult, error) {
			return results.SuccessResult[rewardsevents.AccountDeactivatePayload, rewardsevents.ActionFailedPayload](rewardsevents.AccountDeactivatePayload{
				AccountID: string(accountID),
			}), nil
		},
	}
	handlers := newTestHandlers(service)

	data, _ := json.Marshal(rewardsevents.AccountDeactivatePayload{AccountID: "user-1"})
	msg := message.NewMessage(watermill.NewUUID(), data)

	out, err := handlers.HandleAccountDeactivateRequested(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one confirmation message, got %d", len(out))
	}
	if topic := out[0].Metadata.Get(TopicMetadataKey); topic != rewardsevents.AccountDeactivated {
		t.Errorf("expected confirmation topic, got %q", topic)
	}
}
