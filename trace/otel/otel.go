// Package otel bridges utterance trace events to OpenTelemetry spans, allowing export to any
// OTel-compatible backend.
//
//	handler := otel.New(otel.WithTracerProvider(tp))
package otel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/hark/trace"
	otelAPI "go.opentelemetry.io/otel"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/m-mizutani/hark"
)

// Option is a functional option for configuring the OTel handler.
type Option func(*handler)

// WithTracerProvider sets an explicit TracerProvider.
// If not set, the global TracerProvider is used.
func WithTracerProvider(tp otelTrace.TracerProvider) Option {
	return func(h *handler) {
		h.tracerProvider = tp
	}
}

type handler struct {
	tracerProvider otelTrace.TracerProvider
	tracer         otelTrace.Tracer
}

// New creates a new OTel trace handler.
func New(opts ...Option) trace.Handler {
	h := &handler{}
	for _, opt := range opts {
		opt(h)
	}

	if h.tracerProvider == nil {
		h.tracerProvider = otelAPI.GetTracerProvider()
	}
	h.tracer = h.tracerProvider.Tracer(tracerName)

	return h
}

func (h *handler) StartUtterance(ctx context.Context, id string) context.Context {
	ctx, span := h.tracer.Start(ctx, "utterance",
		otelTrace.WithSpanKind(otelTrace.SpanKindInternal),
	)
	span.SetAttributes(utteranceIDAttr(id))
	return ctx
}

func (h *handler) EndUtterance(ctx context.Context, data *trace.UtteranceData, err error) {
	span := otelTrace.SpanFromContext(ctx)
	if data != nil {
		span.SetAttributes(
			utteranceConfidenceAttr(data.Confidence),
			utteranceTierAttr(data.Tier),
			utteranceOutcomeAttr(data.Outcome),
		)
	}
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

func (h *handler) StartLLMCall(ctx context.Context, purpose string) context.Context {
	ctx, span := h.tracer.Start(ctx, fmt.Sprintf("llm:%s", purpose),
		otelTrace.WithSpanKind(otelTrace.SpanKindClient),
	)
	span.SetAttributes(llmPurposeAttr(purpose))
	return ctx
}

func (h *handler) EndLLMCall(ctx context.Context, data *trace.LLMCallData, err error) {
	span := otelTrace.SpanFromContext(ctx)
	if data != nil {
		span.SetAttributes(
			llmModelAttr(data.Model),
			llmInputTokensAttr(data.InputTokens),
			llmOutputTokensAttr(data.OutputTokens),
		)
	}
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

func (h *handler) StartToolExec(ctx context.Context, toolName string, args map[string]any) context.Context {
	ctx, span := h.tracer.Start(ctx, fmt.Sprintf("tool:%s", toolName),
		otelTrace.WithSpanKind(otelTrace.SpanKindInternal),
	)
	span.SetAttributes(toolNameAttr(toolName))
	if args != nil {
		if b, err := json.Marshal(args); err == nil {
			span.SetAttributes(toolArgsAttr(string(b)))
		}
	}
	return ctx
}

func (h *handler) EndToolExec(ctx context.Context, _ any, err error) {
	span := otelTrace.SpanFromContext(ctx)
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

func (h *handler) AddEvent(ctx context.Context, kind string, data any) {
	span := otelTrace.SpanFromContext(ctx)
	if data == nil {
		span.AddEvent(kind)
		return
	}
	b, err := json.Marshal(data)
	if err != nil {
		span.AddEvent(kind)
		return
	}
	span.AddEvent(kind, otelTrace.WithAttributes(eventDataAttr(string(b))))
}

// Finish is a no-op. Spans are exported by the TracerProvider's SpanProcessor.
func (h *handler) Finish(_ context.Context) error {
	return nil
}
