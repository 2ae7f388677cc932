// Package app composes the rewards engine process: database, event bus,
// watermill router, rewards module, and the HTTP read API.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/eventbus"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/handlers"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/config"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/db/bundb"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
)

// App is the composed rewards engine process.
type App struct {
	Cfg             *config.Config
	Observability   *observability.Observability
	DB              *bundb.DBService
	EventBus        eventbus.EventBus
	WatermillRouter *message.Router
	RewardsModule   *rewards.Module

	httpServer *http.Server
	wg         sync.WaitGroup
}

// NewApp wires every component. Nothing runs until Run.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Observability) (*App, error) {
	logger := obs.Logger

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}

	rewardsModule, err := rewards.NewModule(ctx, cfg, obs, dbService.GetDB(), bus, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rewards module: %w", err)
	}

	app := &App{
		Cfg:             cfg,
		Observability:   obs,
		DB:              dbService,
		EventBus:        bus,
		WatermillRouter: router,
		RewardsModule:   rewardsModule,
	}

	if cfg.HTTP.Address != "" {
		app.httpServer = &http.Server{
			Addr:    cfg.HTTP.Address,
			Handler: app.httpHandler(),
		}
	}

	logger.InfoContext(ctx, "Application wired",
		attr.String("http_address", cfg.HTTP.Address),
		attr.String("nats_url", cfg.NATS.URL),
	)
	return app, nil
}

func (app *App) httpHandler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(chimiddleware.Recoverer)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Mount("/rewards", handlers.NewRewardsHandler(app.RewardsModule.Service).Routes())
	return mux
}
