package rewardshandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
)

// HandleAccountDeactivateRequested hides an account from the leaderboard.
func (h *RewardsHandlers) HandleAccountDeactivateRequested(msg *message.Message) ([]*message.Message, error) {
	return wrapHandler(h, "HandleAccountDeactivateRequested",
		func(ctx context.Context, msg *message.Message, payload *rewardsevents.AccountDeactivatePayload) ([]*message.Message, error) {
			result, err := h.service.DeactivateAccount(ctx, rewardsdomain.AccountID(payload.AccountID), "event request")
			if err != nil {
				return nil, err
			}

			if result.Failure != nil {
				failed, err := resultMessage(msg, rewardsevents.ActionFailed, result.Failure)
				if err != nil {
					return nil, err
				}
				return []*message.Message{failed}, nil
			}

			confirmed, err := resultMessage(msg, rewardsevents.AccountDeactivated, result.Success)
			if err != nil {
				return nil, err
			}
			return []*message.Message{confirmed}, nil
		},
	)(msg)
}
