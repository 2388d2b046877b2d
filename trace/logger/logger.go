package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/hark/trace"
)

// Event represents a trace event type that can be selectively enabled.
type Event int

const (
	// Utterance enables logging of utterance start/end.
	Utterance Event = iota
	// LLMRequest enables logging of LLM prompts.
	LLMRequest
	// LLMResponse enables logging of LLM raw responses and token usage.
	LLMResponse
	// ToolExec enables logging of tool execution (name, args, result, duration).
	ToolExec
	// CustomEvent enables logging of plan, repair and speech events.
	CustomEvent

	eventCount
)

type config struct {
	logger *slog.Logger
	events map[Event]bool
}

// Option configures the logger handler.
type Option func(*config)

// WithLogger sets a custom slog.Logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithEvents enables only the specified event types.
// When not specified, all events are enabled.
func WithEvents(events ...Event) Option {
	return func(c *config) {
		c.events = make(map[Event]bool, len(events))
		for _, e := range events {
			c.events[e] = true
		}
	}
}

type handler struct {
	cfg config
}

// New creates a new trace.Handler that logs trace events via slog.
func New(opts ...Option) trace.Handler {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.events == nil {
		cfg.events = make(map[Event]bool, eventCount)
		for i := Event(0); i < eventCount; i++ {
			cfg.events[i] = true
		}
	}

	return &handler{cfg: cfg}
}

func (h *handler) logger() *slog.Logger {
	if h.cfg.logger != nil {
		return h.cfg.logger
	}
	return slog.Default()
}

func (h *handler) enabled(e Event) bool {
	return h.cfg.events[e]
}

type startTimeKey struct{}

func withStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func startTimeFrom(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}

type toolInfoKey struct{}

type toolInfo struct {
	name string
	args map[string]any
}

func withToolInfo(ctx context.Context, info toolInfo) context.Context {
	return context.WithValue(ctx, toolInfoKey{}, info)
}

func toolInfoFrom(ctx context.Context) toolInfo {
	info, _ := ctx.Value(toolInfoKey{}).(toolInfo)
	return info
}

type utteranceIDKey struct{}

func (h *handler) StartUtterance(ctx context.Context, id string) context.Context {
	if h.enabled(Utterance) {
		h.logger().InfoContext(ctx, "utterance started", slog.String("id", id))
	}
	ctx = context.WithValue(ctx, utteranceIDKey{}, id)
	return withStartTime(ctx, time.Now())
}

func (h *handler) EndUtterance(ctx context.Context, data *trace.UtteranceData, err error) {
	if !h.enabled(Utterance) {
		return
	}

	id, _ := ctx.Value(utteranceIDKey{}).(string)
	attrs := []any{
		slog.String("id", id),
		slog.Duration("duration", time.Since(startTimeFrom(ctx))),
	}
	if data != nil {
		attrs = append(attrs,
			slog.String("transcript", data.Transcript),
			slog.Float64("confidence", data.Confidence),
			slog.String("tier", data.Tier),
			slog.String("outcome", data.Outcome),
		)
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	h.logger().InfoContext(ctx, "utterance ended", attrs...)
}

func (h *handler) StartLLMCall(ctx context.Context, _ string) context.Context {
	return withStartTime(ctx, time.Now())
}

// EndLLMCall logs LLM call details. LLMRequest controls the prompts and LLMResponse the raw
// response. If either is enabled, model and token usage are always included.
func (h *handler) EndLLMCall(ctx context.Context, data *trace.LLMCallData, err error) {
	reqEnabled := h.enabled(LLMRequest)
	respEnabled := h.enabled(LLMResponse)
	if !reqEnabled && !respEnabled {
		return
	}

	attrs := []any{
		slog.Duration("duration", time.Since(startTimeFrom(ctx))),
	}

	if data != nil {
		attrs = append(attrs,
			slog.String("purpose", data.Purpose),
			slog.String("model", data.Model),
			slog.Int("input_tokens", data.InputTokens),
			slog.Int("output_tokens", data.OutputTokens),
		)

		if reqEnabled {
			attrs = append(attrs,
				slog.String("system_prompt", data.SystemPrompt),
				slog.String("prompt", data.Prompt),
			)
		}
		if respEnabled {
			attrs = append(attrs, slog.String("response", data.Response))
		}
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	h.logger().InfoContext(ctx, "llm call", attrs...)
}

func (h *handler) StartToolExec(ctx context.Context, toolName string, args map[string]any) context.Context {
	ctx = withStartTime(ctx, time.Now())
	return withToolInfo(ctx, toolInfo{name: toolName, args: args})
}

func (h *handler) EndToolExec(ctx context.Context, result any, err error) {
	if !h.enabled(ToolExec) {
		return
	}

	info := toolInfoFrom(ctx)
	attrs := []any{
		slog.String("tool", info.name),
		slog.Any("args", info.args),
		slog.Duration("duration", time.Since(startTimeFrom(ctx))),
		slog.Any("result", result),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	h.logger().InfoContext(ctx, "tool execution", attrs...)
}

func (h *handler) AddEvent(ctx context.Context, kind string, data any) {
	if !h.enabled(CustomEvent) {
		return
	}

	h.logger().InfoContext(ctx, "event",
		slog.String("kind", kind),
		slog.Any("data", data),
	)
}

// Finish is a no-op for the logger handler. Persistence is the Recorder's responsibility.
func (h *handler) Finish(_ context.Context) error {
	return nil
}
