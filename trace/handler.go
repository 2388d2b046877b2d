package trace

import "context"

// Handler is the interface for trace backends.
// Implementations receive lifecycle events while an utterance is handled
// and can record, export, or forward them as needed.
type Handler interface {
	// StartUtterance starts the root span of one accepted utterance.
	StartUtterance(ctx context.Context, id string) context.Context
	// EndUtterance ends the root span.
	EndUtterance(ctx context.Context, data *UtteranceData, err error)

	// StartLLMCall starts an LLM call span. purpose is plan, repair or synthesize.
	StartLLMCall(ctx context.Context, purpose string) context.Context
	// EndLLMCall ends an LLM call span with the given data.
	EndLLMCall(ctx context.Context, data *LLMCallData, err error)

	// StartToolExec starts a tool execution span.
	StartToolExec(ctx context.Context, toolName string, args map[string]any) context.Context
	// EndToolExec ends a tool execution span with the result.
	EndToolExec(ctx context.Context, result any, err error)

	// AddEvent adds an event to the current span.
	AddEvent(ctx context.Context, kind string, data any)

	// Finish completes the trace and performs any final operations.
	Finish(ctx context.Context) error
}
