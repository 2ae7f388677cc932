package rewardsrouter

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
)

type stubHandlers struct{}

func (stubHandlers) HandleActionReceived(*message.Message) ([]*message.Message, error) {
	return nil, nil
}

func (stubHandlers) HandleAccountDeactivateRequested(*message.Message) ([]*message.Message, error) {
	return nil, nil
}

type stubBus struct {
	pubsub *gochannel.GoChannel
}

func (b *stubBus) Publish(ctx context.Context, subject string, msg *message.Message) error {
	return b.pubsub.Publish(subject, msg)
}

func (b *stubBus) Subscriber() message.Subscriber { return b.pubsub }

func (b *stubBus) EnsureStream(context.Context, string, []string) error { return nil }

func (b *stubBus) Close() error { return b.pubsub.Close() }

func TestRegisterHandlers_HandlerNamesMatchSubjects(t *testing.T) {
	watermillRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("failed to create router: %v", err)
	}
	bus := &stubBus{pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRewardsRouter(logger, watermillRouter, bus, nil)
	if err := r.RegisterHandlers(context.Background(), stubHandlers{}); err != nil {
		t.Fatalf("failed to register handlers: %v", err)
	}

	registered := watermillRouter.Handlers()
	for _, subject := range []string{
		rewardsevents.ActionReceived,
		rewardsevents.AccountDeactivateRequested,
	} {
		if _, ok := registered[subject]; !ok {
			t.Errorf("expected a handler registered under %q, got %v", subject, handlerNames(registered))
		}
	}
	if len(registered) != 2 {
		t.Errorf("expected 2 handlers, got %v", handlerNames(registered))
	}
}

func handlerNames(handlers map[string]message.HandlerFunc) []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	return names
}
