package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
)

// Run starts the watermill router, the rewards module, and the HTTP read
// API, then blocks until ctx is canceled.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		if err := app.WatermillRouter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorContext(ctx, "Watermill router stopped", attr.Error(err))
		}
	}()

	// Wait for the router handlers to be registered and running before
	// accepting reads.
	select {
	case <-app.WatermillRouter.Running():
	case <-ctx.Done():
		return ctx.Err()
	}

	app.wg.Add(1)
	go app.RewardsModule.Run(ctx, &app.wg)

	if app.httpServer != nil {
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			logger.InfoContext(ctx, "HTTP read API listening", attr.String("address", app.httpServer.Addr))
			if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorContext(ctx, "HTTP server stopped", attr.Error(err))
			}
		}()
	}

	<-ctx.Done()
	return nil
}

// Close shuts everything down in reverse dependency order.
func (app *App) Close() error {
	logger := app.Observability.Logger
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var firstErr error

	if app.httpServer != nil {
		if err := app.httpServer.Shutdown(shutdownCtx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("http shutdown: %w", err)
		}
	}

	if err := app.RewardsModule.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("rewards module close: %w", err)
	}

	if err := app.WatermillRouter.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("watermill router close: %w", err)
	}

	if err := app.EventBus.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("event bus close: %w", err)
	}

	if err := app.DB.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("database close: %w", err)
	}

	app.wg.Wait()
	logger.Info("Application shut down")
	return firstErr
}
