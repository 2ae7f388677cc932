package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/eventbus"
	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/config"
)

var actionTypes = []rewardsdomain.ActionType{
	rewardsdomain.ActionDonation,
	rewardsdomain.ActionDhikr,
	rewardsdomain.ActionPrayer,
	rewardsdomain.ActionOther,
}

// seedFeed publishes synthetic action events so a fresh deployment has
// accounts, streaks and a populated leaderboard to look at.
type seedFeed struct {
	bus      eventbus.EventBus
	faker    *gofakeit.Faker
	limiter  *rate.Limiter
	accounts []string
	clock    time.Time
	logger   *slog.Logger
}

func newSeedFeed(bus eventbus.EventBus, accounts int, perSecond float64, seed uint64, logger *slog.Logger) *seedFeed {
	faker := gofakeit.New(seed)
	ids := make([]string, 0, accounts)
	for i := 0; i < accounts; i++ {
		ids = append(ids, fmt.Sprintf("%s-%s", faker.Username(), faker.DigitN(4)))
	}
	return &seedFeed{
		bus:      bus,
		faker:    faker,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), 1),
		accounts: ids,
		clock:    time.Now().UTC().Add(-30 * 24 * time.Hour),
		logger:   logger,
	}
}

// nextEvent fabricates an event with a monotonically advancing timestamp
// so the per-account ordering check never rejects it.
func (f *seedFeed) nextEvent() rewardsevents.ActionEventPayload {
	f.clock = f.clock.Add(time.Duration(f.faker.Number(1, 90)) * time.Minute)
	points := int64(f.faker.Number(1, 20) * 5)
	return rewardsevents.ActionEventPayload{
		EventID:    uuid.New().String(),
		AccountID:  f.accounts[f.faker.Number(0, len(f.accounts)-1)],
		ActionType: string(actionTypes[f.faker.Number(0, len(actionTypes)-1)]),
		BasePoints: points,
		OccurredAt: f.clock,
	}
}

func (f *seedFeed) run(ctx context.Context, total int) error {
	for i := 0; i < total; i++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return err
		}

		payload := f.nextEvent()
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}

		msg := message.NewMessage(watermill.NewUUID(), body)
		if err := f.bus.Publish(ctx, rewardsevents.ActionReceived, msg); err != nil {
			return fmt.Errorf("publish event %d: %w", i, err)
		}

		if (i+1)%100 == 0 {
			f.logger.Info("Published seed events", slog.Int("count", i+1))
		}
	}
	return nil
}

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	accounts := flag.Int("accounts", 25, "Number of synthetic accounts")
	events := flag.Int("events", 500, "Number of action events to publish")
	perSecond := flag.Float64("rate", 50, "Events published per second")
	seed := flag.Uint64("seed", 0, "Faker seed, 0 for time-based")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		log.Fatalf("failed to connect event bus: %v", err)
	}
	defer bus.Close()

	if err := bus.EnsureStream(ctx, rewardsevents.Stream, []string{"rewards.>"}); err != nil {
		log.Fatalf("failed to ensure stream: %v", err)
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}

	feed := newSeedFeed(bus, *accounts, *perSecond, s, logger)
	if err := feed.run(ctx, *events); err != nil {
		log.Fatalf("seed feed failed: %v", err)
	}

	logger.Info("Seed feed complete",
		slog.Int("accounts", *accounts),
		slog.Int("events", *events),
	)
}
