// Package attr provides slog attribute helpers shared across modules.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

type correlationIDKey struct{}

// String returns a string attribute.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int returns an int attribute.
func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

// Int64 returns an int64 attribute.
func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

// Duration returns a duration attribute.
func Duration(key string, value time.Duration) slog.Attr {
	return slog.Duration(key, value)
}

// Bool returns a bool attribute.
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// Any returns an attribute for an arbitrary value.
func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Error returns the conventional error attribute.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// CorrelationID returns the conventional correlation attribute.
func CorrelationID(id string) slog.Attr {
	return slog.String("correlation_id", id)
}

// WithCorrelationID stores a correlation id on the context for later
// extraction in service-layer logs.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// ExtractCorrelationID returns the correlation attribute stored on the
// context, or an empty one.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return CorrelationID(id)
	}
	return CorrelationID("")
}

// CorrelationIDFromMsg reads the watermill correlation metadata.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return CorrelationID(middleware.MessageCorrelationID(msg))
}
