package rewardsdomain

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules must validate: %v", err)
	}
}

func TestRulesValidateRejectsBadValues(t *testing.T) {
	rules := DefaultRules()
	rules.StreakWindow = 0
	if err := rules.Validate(); err == nil {
		t.Error("expected error for zero streak window")
	}

	rules = DefaultRules()
	rules.CoinRatio = 0
	if err := rules.Validate(); err == nil {
		t.Error("expected error for zero coin ratio")
	}

	rules = DefaultRules()
	rules.Ranks = nil
	if err := rules.Validate(); err == nil {
		t.Error("expected error for missing rank table")
	}
}

func TestRulesGrantAppliesMultiplier(t *testing.T) {
	rules := DefaultRules()

	// Below the first threshold: 1x.
	points, coins := rules.Grant(100, 9)
	if points != 100 || coins != 10 {
		t.Fatalf("streak 9: got %d points %d coins", points, coins)
	}

	// At streak 10 the 2x tier applies: 50 base grants 100, not 50.
	points, coins = rules.Grant(50, 10)
	if points != 100 || coins != 10 {
		t.Fatalf("streak 10: got %d points %d coins", points, coins)
	}

	points, _ = rules.Grant(100, 100)
	if points != 1000 {
		t.Fatalf("streak 100: expected 10x, got %d", points)
	}
}

func TestActionEventValidate(t *testing.T) {
	valid := ActionEvent{
		EventID:    "evt-1",
		AccountID:  "acct-1",
		ActionType: ActionDonation,
		BasePoints: 100,
		OccurredAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	negative := valid
	negative.BasePoints = -5
	if err := negative.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	cases := []func(e *ActionEvent){
		func(e *ActionEvent) { e.EventID = "" },
		func(e *ActionEvent) { e.AccountID = "" },
		func(e *ActionEvent) { e.ActionType = "superlike" },
		func(e *ActionEvent) { e.OccurredAt = time.Time{} },
	}
	for i, mutate := range cases {
		event := valid
		mutate(&event)
		if err := event.Validate(); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("case %d: expected ErrInvalidEvent, got %v", i, err)
		}
	}
}
