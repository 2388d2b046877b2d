package trace

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Option is a functional option for configuring a Recorder.
type Option func(*Recorder)

// WithRepository sets the repository for persisting trace data.
func WithRepository(repo Repository) Option {
	return func(r *Recorder) {
		r.repo = repo
	}
}

// WithMetadata sets the metadata for the trace.
func WithMetadata(meta TraceMetadata) Option {
	return func(r *Recorder) {
		r.metadata = meta
	}
}

// Recorder collects tracing data of one utterance at a time into an in-memory Trace structure.
// Each StartUtterance begins a new Trace; Finish persists the current one. Utterances are handled
// serially, so one Recorder serves the whole session.
type Recorder struct {
	trace    *Trace
	mu       sync.Mutex
	repo     Repository
	metadata TraceMetadata
}

// New creates a new Recorder with the given options.
func New(opts ...Option) *Recorder {
	r := &Recorder{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// context key types
type handlerKey struct{}
type currentSpanKey struct{}

// WithHandler stores the Handler in the context.
func WithHandler(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey{}, h)
}

// HandlerFrom retrieves the Handler from the context. Returns a no-op handler if not set, so
// callers never need a nil check.
func HandlerFrom(ctx context.Context) Handler {
	if h, ok := ctx.Value(handlerKey{}).(Handler); ok && h != nil {
		return h
	}
	return nopHandler{}
}

func withCurrentSpan(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, currentSpanKey{}, span)
}

func currentSpanFrom(ctx context.Context) *Span {
	s, _ := ctx.Value(currentSpanKey{}).(*Span)
	return s
}

func newSpanID() string {
	return uuid.New().String()
}

// StartUtterance starts the root utterance span. id becomes the trace ID; if empty, a UUID v7
// is generated.
func (r *Recorder) StartUtterance(ctx context.Context, id string) context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	span := &Span{
		SpanID:    newSpanID(),
		Kind:      SpanKindUtterance,
		Name:      "utterance",
		StartedAt: now,
		Status:    SpanStatusOK,
	}

	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}

	r.trace = &Trace{
		TraceID:   id,
		RootSpan:  span,
		Metadata:  r.metadata,
		StartedAt: now,
	}

	return withCurrentSpan(ctx, span)
}

// EndUtterance ends the root utterance span.
func (r *Recorder) EndUtterance(ctx context.Context, data *UtteranceData, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := currentSpanFrom(ctx)
	if span == nil || span.Kind != SpanKindUtterance {
		return
	}

	now := time.Now()
	span.EndedAt = now
	span.Duration = now.Sub(span.StartedAt)
	span.Utterance = data

	if err != nil {
		span.Status = SpanStatusError
		span.Error = err.Error()
	}

	if r.trace != nil {
		r.trace.EndedAt = now
	}
}

// StartLLMCall starts an llm_call span as a child of the current span.
func (r *Recorder) StartLLMCall(ctx context.Context, purpose string) context.Context {
	return r.startChildSpan(ctx, SpanKindLLMCall, purpose)
}

// EndLLMCall ends the llm_call span with the given data.
func (r *Recorder) EndLLMCall(ctx context.Context, data *LLMCallData, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := currentSpanFrom(ctx)
	if span == nil || span.Kind != SpanKindLLMCall {
		return
	}

	r.endSpan(span, err)
	span.LLMCall = data
}

// StartToolExec starts a tool_exec span as a child of the current span.
func (r *Recorder) StartToolExec(ctx context.Context, toolName string, args map[string]any) context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent := currentSpanFrom(ctx)
	if parent == nil {
		return ctx
	}

	span := &Span{
		SpanID:    newSpanID(),
		ParentID:  parent.SpanID,
		Kind:      SpanKindToolExec,
		Name:      toolName,
		StartedAt: time.Now(),
		Status:    SpanStatusOK,
		ToolExec: &ToolExecData{
			ToolName: toolName,
			Args:     args,
		},
	}

	parent.Children = append(parent.Children, span)
	return withCurrentSpan(ctx, span)
}

// EndToolExec ends the tool_exec span with the result.
func (r *Recorder) EndToolExec(ctx context.Context, result any, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := currentSpanFrom(ctx)
	if span == nil || span.Kind != SpanKindToolExec {
		return
	}

	r.endSpan(span, err)
	if span.ToolExec != nil {
		span.ToolExec.Result = result
		if err != nil {
			span.ToolExec.Error = err.Error()
		}
	}
}

// AddEvent adds an event span as a child of the current span.
func (r *Recorder) AddEvent(ctx context.Context, kind string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent := currentSpanFrom(ctx)
	if parent == nil {
		return
	}

	now := time.Now()
	span := &Span{
		SpanID:    newSpanID(),
		ParentID:  parent.SpanID,
		Kind:      SpanKindEvent,
		Name:      kind,
		StartedAt: now,
		EndedAt:   now,
		Status:    SpanStatusOK,
		Event: &EventData{
			Kind: kind,
			Data: data,
		},
	}

	parent.Children = append(parent.Children, span)
}

// Finish persists the current trace to the Repository.
func (r *Recorder) Finish(ctx context.Context) error {
	r.mu.Lock()
	trace := r.trace
	repo := r.repo
	r.mu.Unlock()

	if trace == nil || repo == nil {
		return nil
	}

	return repo.Save(ctx, trace)
}

// Trace returns the current trace data. Returns nil if no utterance was started.
func (r *Recorder) Trace() *Trace {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trace
}

func (r *Recorder) endSpan(span *Span, err error) {
	now := time.Now()
	span.EndedAt = now
	span.Duration = now.Sub(span.StartedAt)

	if err != nil {
		span.Status = SpanStatusError
		span.Error = err.Error()
	}
}

func (r *Recorder) startChildSpan(ctx context.Context, kind SpanKind, name string) context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent := currentSpanFrom(ctx)
	if parent == nil {
		return ctx
	}

	span := &Span{
		SpanID:    newSpanID(),
		ParentID:  parent.SpanID,
		Kind:      kind,
		Name:      name,
		StartedAt: time.Now(),
		Status:    SpanStatusOK,
	}

	parent.Children = append(parent.Children, span)
	return withCurrentSpan(ctx, span)
}

// nopHandler discards every event.
type nopHandler struct{}

func (nopHandler) StartUtterance(ctx context.Context, _ string) context.Context {
	return ctx
}

func (nopHandler) EndUtterance(context.Context, *UtteranceData, error) {}

func (nopHandler) StartLLMCall(ctx context.Context, _ string) context.Context {
	return ctx
}

func (nopHandler) EndLLMCall(context.Context, *LLMCallData, error) {}

func (nopHandler) StartToolExec(ctx context.Context, _ string, _ map[string]any) context.Context {
	return ctx
}

func (nopHandler) EndToolExec(context.Context, any, error) {}

func (nopHandler) AddEvent(context.Context, string, any) {}

func (nopHandler) Finish(context.Context) error { return nil }
