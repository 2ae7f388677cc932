// Package observability wires logging, metrics and tracing for the
// application. Modules receive the assembled Observability value and pull
// the pieces they need.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Config controls observability initialization.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	LogFormat      string // "json" or "text"
	MetricsAddress string
	OTLPEndpoint   string
	OTLPInsecure   bool
}

// Observability bundles the shared logger, metrics registry and tracer.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Tracer   trace.Tracer
	Metrics  *RewardsMetrics

	tracerProvider *sdktrace.TracerProvider
	metricsServer  *http.Server
}

// Init builds the observability stack. Tracing is a no-op unless an OTLP
// endpoint is configured; the metrics endpoint starts only when an address
// is given.
func Init(ctx context.Context, cfg Config) (*Observability, error) {
	logger := newLogger(cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	obs := &Observability{
		Logger:   logger,
		Registry: registry,
		Tracer:   tracenoop.NewTracerProvider().Tracer(cfg.ServiceName),
		Metrics:  NewRewardsMetrics(registry),
	}

	if cfg.OTLPEndpoint != "" {
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		otel.SetTracerProvider(tp)
		obs.tracerProvider = tp
		obs.Tracer = tp.Tracer(cfg.ServiceName)
	}

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		obs.metricsServer = &http.Server{Addr: cfg.MetricsAddress, Handler: mux}
		go func() {
			if err := obs.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server stopped", slog.Any("error", err))
			}
		}()
		logger.Info("Metrics endpoint listening", slog.String("address", cfg.MetricsAddress))
	}

	return obs, nil
}

// Shutdown flushes the tracer and stops the metrics endpoint.
func (o *Observability) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if o.metricsServer != nil {
		if err := o.metricsServer.Shutdown(ctx); err != nil {
			o.Logger.Warn("Metrics server shutdown failed", slog.Any("error", err))
		}
	}
	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down tracer provider: %w", err)
		}
	}
	return nil
}

func newLogger(cfg Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)
}
