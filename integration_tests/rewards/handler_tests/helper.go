package rewardshandlerintegrationtests

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/eventbus"
	rewardsmodule "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards"
	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/integration_tests/testutils"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// HandlerTestDeps bundles a running rewards module with its own event bus
// and router for one test.
type HandlerTestDeps struct {
	*testutils.TestEnvironment
	Module   *rewardsmodule.Module
	Router   *message.Router
	EventBus eventbus.EventBus
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing rewards handler test environment...")
		env, err := testutils.NewTestEnvironment(t)
		if err != nil {
			testEnvErr = err
			return
		}
		testEnv = env
	})

	if testEnvErr != nil {
		t.Fatalf("Rewards handler test environment initialization failed: %v", testEnvErr)
	}
	if testEnv == nil {
		t.Fatalf("Rewards handler test environment not initialized")
	}
	return testEnv
}

// SetupTestRewardsHandlers resets state and starts a rewards module on a
// fresh watermill router. The returned cleanup stops the router and bus.
func SetupTestRewardsHandlers(t *testing.T) (HandlerTestDeps, func()) {
	t.Helper()

	env := GetTestEnv(t)

	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bus, err := eventbus.NewEventBus(env.Ctx, env.Config.NATS.URL, discardLogger)
	if err != nil {
		t.Fatalf("Failed to create event bus: %v", err)
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 2 * time.Second}, watermill.NopLogger{})
	if err != nil {
		bus.Close()
		t.Fatalf("Failed to create watermill router: %v", err)
	}

	obs := &observability.Observability{
		Logger:  discardLogger,
		Tracer:  noop.NewTracerProvider().Tracer("test"),
		Metrics: observability.NewTestRewardsMetrics(),
	}

	module, err := rewardsmodule.NewModule(env.Ctx, env.Config, obs, env.DB, bus, router)
	if err != nil {
		router.Close()
		bus.Close()
		t.Fatalf("Failed to create rewards module: %v", err)
	}

	runCtx, runCancel := context.WithCancel(env.Ctx)
	go func() {
		if runErr := router.Run(runCtx); runErr != nil {
			log.Printf("Router run ended: %v", runErr)
		}
	}()

	select {
	case <-router.Running():
	case <-time.After(10 * time.Second):
		runCancel()
		router.Close()
		bus.Close()
		t.Fatal("Router did not start within 10s")
	}

	cleanup := func() {
		runCancel()
		router.Close()
		module.Close()
		bus.Close()
	}
	t.Cleanup(cleanup)

	return HandlerTestDeps{
		TestEnvironment: env,
		Module:          module,
		Router:          router,
		EventBus:        bus,
	}, cleanup
}

// PublishActionEvent publishes an inbound action event the way an upstream
// producer would.
func PublishActionEvent(t *testing.T, deps HandlerTestDeps, payload rewardsevents.ActionEventPayload) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal action event: %v", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := deps.EventBus.Publish(deps.Ctx, rewardsevents.ActionReceived, msg); err != nil {
		t.Fatalf("Failed to publish action event: %v", err)
	}
}

func publishRaw(t *testing.T, deps HandlerTestDeps, subject string, body []byte) {
	t.Helper()

	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := deps.EventBus.Publish(deps.Ctx, subject, msg); err != nil {
		t.Fatalf("Failed to publish to %s: %v", subject, err)
	}
}

// SubscribeTo opens a subscription on a subject. Call before publishing so
// the consumer exists when the result message is emitted.
func SubscribeTo(t *testing.T, deps HandlerTestDeps, subject string) <-chan *message.Message {
	t.Helper()

	subCtx, subCancel := context.WithCancel(deps.Ctx)
	t.Cleanup(subCancel)

	messages, err := deps.EventBus.Subscriber().Subscribe(subCtx, subject)
	if err != nil {
		t.Fatalf("Failed to subscribe to %s: %v", subject, err)
	}
	return messages
}

// WaitForMessage waits for one message on an open subscription.
func WaitForMessage(t *testing.T, messages <-chan *message.Message, subject string, timeout time.Duration) *message.Message {
	t.Helper()

	select {
	case msg, ok := <-messages:
		if !ok {
			t.Fatalf("Subscription to %s closed before a message arrived", subject)
		}
		msg.Ack()
		return msg
	case <-time.After(timeout):
		t.Fatalf("Timed out waiting for a message on %s", subject)
	}
	return nil
}
