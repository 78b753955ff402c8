package events

import (
	"context"
	"log/slog"
)

// Emit publishes a pipeline event. The default is a no-op; binaries opt in
// to an emitter at startup.
var Emit = func(ctx context.Context, evt GenerationEvent) {}

// EnableLogEmitter routes events to slog.
func EnableLogEmitter() {
	Emit = func(ctx context.Context, evt GenerationEvent) {
		evt = scoped(ctx, evt)
		attrs := []any{
			slog.String("stage", evt.Stage),
			slog.String("request_id", evt.RequestID),
		}
		for k, v := range evt.Metadata {
			attrs = append(attrs, slog.String(k, v))
		}
		switch evt.Type {
		case EventWarn:
			slog.Warn(evt.Message, attrs...)
		case EventError:
			slog.Error(evt.Message, attrs...)
		default:
			slog.Info(evt.Message, attrs...)
		}
	}
}

// SetCustomEmitter replaces the emitter, e.g. for tests; nil restores the
// no-op default.
func SetCustomEmitter(f func(ctx context.Context, evt GenerationEvent)) {
	if f == nil {
		Emit = func(context.Context, GenerationEvent) {}
		return
	}
	Emit = func(ctx context.Context, evt GenerationEvent) {
		f(ctx, scoped(ctx, evt))
	}
}

func scoped(ctx context.Context, evt GenerationEvent) GenerationEvent {
	if evt.RequestID == "" {
		evt.RequestID = RequestFromContext(ctx)
	}
	return evt
}
