// Package rewardsrouter wires the rewards handlers into a watermill router.
package rewardsrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/eventbus"
	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
	rewardshandlers "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/handlers"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// RewardsRouter subscribes the rewards handlers and publishes their results.
type RewardsRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	bus            eventbus.EventBus
	metricsBuilder *metrics.PrometheusMetricsBuilder
	metricsEnabled bool
}

// NewRewardsRouter creates a new RewardsRouter.
func NewRewardsRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	prometheusRegistry *prometheus.Registry,
) *RewardsRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &RewardsRouter{
		logger:         logger,
		Router:         router,
		bus:            bus,
		metricsBuilder: metricsBuilder,
		metricsEnabled: prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure adds middleware and registers the rewards handlers.
func (r *RewardsRouter) Configure(routerCtx context.Context, handlers rewardshandlers.Handlers) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	return r.RegisterHandlers(routerCtx, handlers)
}

// RegisterHandlers subscribes each inbound subject and publishes the result
// messages on the subject each carries in its metadata.
func (r *RewardsRouter) RegisterHandlers(ctx context.Context, handlers rewardshandlers.Handlers) error {
	eventsToHandlers := map[string]func(*message.Message) ([]*message.Message, error){
		rewardsevents.ActionReceived:             handlers.HandleActionReceived,
		rewardsevents.AccountDeactivateRequested: handlers.HandleAccountDeactivateRequested,
	}

	for topic, handlerFunc := range eventsToHandlers {
		// Subjects already carry the module prefix, so they double as
		// handler names.
		handlerName := topic
		r.Router.AddNoPublisherHandler(
			handlerName,
			topic,
			r.bus.Subscriber(),
			func(msg *message.Message) error {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("message_id", msg.UUID),
						attr.Error(err),
					)
					return err
				}
				for _, m := range messages {
					publishTopic := m.Metadata.Get(rewardshandlers.TopicMetadataKey)
					if publishTopic == "" {
						r.logger.Error("handler result without publish topic, message dropped",
							attr.String("handler", handlerName),
							attr.String("message_id", m.UUID),
						)
						continue
					}
					if err := r.bus.Publish(ctx, publishTopic, m); err != nil {
						return fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil
			},
		)
	}
	return nil
}

func (r *RewardsRouter) Close() error {
	return r.Router.Close()
}
