package rewardshandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
)

// HandleActionReceived consumes inbound action events. Every delivery
// produces exactly one result message: processed or failed. Duplicates
// come back as failed with the duplicate flag so the producer can treat
// the redelivery as settled.
func (h *RewardsHandlers) HandleActionReceived(msg *message.Message) ([]*message.Message, error) {
	return wrapHandler(h, "HandleActionReceived",
		func(ctx context.Context, msg *message.Message, payload *rewardsevents.ActionEventPayload) ([]*message.Message, error) {
			result, err := h.service.ProcessActionEvent(ctx, payload.ToDomain())
			if err != nil {
				// Transport-level failure; let the router retry the delivery.
				return nil, err
			}

			if result.Failure != nil {
				failed, err := resultMessage(msg, rewardsevents.ActionFailed, result.Failure)
				if err != nil {
					return nil, err
				}
				return []*message.Message{failed}, nil
			}

			processed, err := resultMessage(msg, rewardsevents.ActionProcessed, result.Success)
			if err != nil {
				return nil, err
			}
			out := []*message.Message{processed}

			if result.Success.Promoted {
				promotion, err := resultMessage(msg, rewardsevents.RankPromoted, rewardsevents.RankPromotedPayload{
					AccountID: result.Success.AccountID,
					FromRank:  result.Success.PreviousRank,
					ToRank:    result.Success.Rank,
					Balance:   result.Success.BalanceAfter,
					At:        result.Success.OccurredAt,
				})
				if err != nil {
					return nil, err
				}
				out = append(out, promotion)

				h.logger.InfoContext(ctx, "Publishing rank promotion",
					attr.String("account_id", result.Success.AccountID),
					attr.String("to_rank", result.Success.Rank),
				)
			}

			return out, nil
		},
	)(msg)
}
