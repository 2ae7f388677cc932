// Package rewardshandlers adapts watermill messages to the rewards service.
package rewardshandlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	rewardsservice "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/application"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
)

// TopicMetadataKey carries the publish subject on handler result messages.
// The router resolves it before publishing.
const TopicMetadataKey = "topic"

// RewardsHandlers handles rewards-related events.
type RewardsHandlers struct {
	service rewardsservice.Service
	logger  *slog.Logger
	metrics *observability.RewardsMetrics
	tracer  trace.Tracer
}

// NewRewardsHandlers creates a new RewardsHandlers.
func NewRewardsHandlers(
	service rewardsservice.Service,
	logger *slog.Logger,
	metrics *observability.RewardsMetrics,
	tracer trace.Tracer,
) Handlers {
	return &RewardsHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// wrapHandler handles common tracing, logging, and payload unmarshalling.
func wrapHandler[P any](
	h *RewardsHandlers,
	handlerName string,
	handlerFunc func(ctx context.Context, msg *message.Message, payload *P) ([]*message.Message, error),
) func(msg *message.Message) ([]*message.Message, error) {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := h.tracer.Start(msg.Context(), handlerName)
		defer span.End()

		startTime := time.Now()
		defer func() {
			h.metrics.RecordOperationDuration(handlerName, time.Since(startTime))
		}()

		ctx = attr.WithCorrelationID(ctx, middleware.MessageCorrelationID(msg))

		h.logger.InfoContext(ctx, handlerName+" triggered",
			attr.CorrelationIDFromMsg(msg),
			attr.String("message_id", msg.UUID),
		)

		payload := new(P)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			h.logger.ErrorContext(ctx, "Failed to unmarshal payload",
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			return nil, fmt.Errorf("%s: failed to unmarshal payload: %w", handlerName, err)
		}

		out, err := handlerFunc(ctx, msg, payload)
		if err != nil {
			h.logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			return nil, err
		}

		h.logger.InfoContext(ctx, handlerName+" completed successfully",
			attr.CorrelationIDFromMsg(msg),
		)
		return out, nil
	}
}

// resultMessage builds an outgoing message for topic, carrying forward the
// correlation id of the message that produced it.
func resultMessage(parent *message.Message, topic string, payload interface{}) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(TopicMetadataKey, topic)
	middleware.SetCorrelationID(middleware.MessageCorrelationID(parent), msg)
	return msg, nil
}
