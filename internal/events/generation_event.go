package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo  EventType = "info"
	EventWarn  EventType = "warn"
	EventError EventType = "error"
	EventDone  EventType = "done"
)

// Pipeline stages that emit events.
const (
	StageClone     = "clone"
	StageSelect    = "select"
	StageAnalyze   = "analyze"
	StageSynthesis = "synthesis"
	StageFallback  = "fallback"
	StageDone      = "done"
)

// GenerationEvent is a lifecycle event of one README generation request.
type GenerationEvent struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Stage     string            `json:"stage"`
	Message   string            `json:"message"`
	RequestID string            `json:"requestId,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const requestContextKey contextKey = "readmegen/events/request"

// WithRequest returns a derived context annotated with the request ID so
// emitters can automatically scope payloads.
func WithRequest(ctx context.Context, requestID string) context.Context {
	if strings.TrimSpace(requestID) == "" {
		return ctx
	}
	return context.WithValue(ctx, requestContextKey, requestID)
}

// RequestFromContext extracts the request ID associated with ctx.
func RequestFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestContextKey).(string); ok {
		return v
	}
	return ""
}

func newEvent(t EventType, stage, message string) GenerationEvent {
	return GenerationEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info event for a pipeline stage.
func NewInfo(stage, message string) GenerationEvent { return newEvent(EventInfo, stage, message) }

// NewWarn creates a warning event for a pipeline stage.
func NewWarn(stage, message string) GenerationEvent { return newEvent(EventWarn, stage, message) }

// NewError creates an error event for a pipeline stage.
func NewError(stage, message string) GenerationEvent { return newEvent(EventError, stage, message) }

// NewDone creates a completion event.
func NewDone(message string) GenerationEvent { return newEvent(EventDone, StageDone, message) }
