package trace

import (
	"context"
	"errors"
)

// multiHandler fans out trace events to multiple Handler implementations.
// Each handler receives its own isolated context, so two Recorders never share a current span.
type multiHandler struct {
	handlers []Handler
}

// Multi creates a Handler that forwards all events to the given handlers.
func Multi(handlers ...Handler) Handler {
	return &multiHandler{handlers: handlers}
}

// multiCtxKey is the context key for per-handler contexts.
type multiCtxKey struct{}

// getContexts retrieves per-handler contexts from the context.
// If not found, returns the base context for each handler.
func (m *multiHandler) getContexts(ctx context.Context) []context.Context {
	if v, ok := ctx.Value(multiCtxKey{}).([]context.Context); ok {
		return v
	}
	ctxs := make([]context.Context, len(m.handlers))
	for i := range ctxs {
		ctxs[i] = ctx
	}
	return ctxs
}

// wrapContexts stores per-handler contexts into a new context.
func (m *multiHandler) wrapContexts(base context.Context, handlerCtxs []context.Context) context.Context {
	return context.WithValue(base, multiCtxKey{}, handlerCtxs)
}

func (m *multiHandler) StartUtterance(ctx context.Context, id string) context.Context {
	handlerCtxs := make([]context.Context, len(m.handlers))
	for i, h := range m.handlers {
		handlerCtxs[i] = h.StartUtterance(ctx, id)
	}
	return m.wrapContexts(ctx, handlerCtxs)
}

func (m *multiHandler) EndUtterance(ctx context.Context, data *UtteranceData, err error) {
	for i, h := range m.handlers {
		h.EndUtterance(m.getContexts(ctx)[i], data, err)
	}
}

func (m *multiHandler) StartLLMCall(ctx context.Context, purpose string) context.Context {
	parentCtxs := m.getContexts(ctx)
	handlerCtxs := make([]context.Context, len(m.handlers))
	for i, h := range m.handlers {
		handlerCtxs[i] = h.StartLLMCall(parentCtxs[i], purpose)
	}
	return m.wrapContexts(ctx, handlerCtxs)
}

func (m *multiHandler) EndLLMCall(ctx context.Context, data *LLMCallData, err error) {
	for i, h := range m.handlers {
		h.EndLLMCall(m.getContexts(ctx)[i], data, err)
	}
}

func (m *multiHandler) StartToolExec(ctx context.Context, toolName string, args map[string]any) context.Context {
	parentCtxs := m.getContexts(ctx)
	handlerCtxs := make([]context.Context, len(m.handlers))
	for i, h := range m.handlers {
		handlerCtxs[i] = h.StartToolExec(parentCtxs[i], toolName, args)
	}
	return m.wrapContexts(ctx, handlerCtxs)
}

func (m *multiHandler) EndToolExec(ctx context.Context, result any, err error) {
	for i, h := range m.handlers {
		h.EndToolExec(m.getContexts(ctx)[i], result, err)
	}
}

func (m *multiHandler) AddEvent(ctx context.Context, kind string, data any) {
	for i, h := range m.handlers {
		h.AddEvent(m.getContexts(ctx)[i], kind, data)
	}
}

func (m *multiHandler) Finish(ctx context.Context) error {
	var errs []error
	for _, h := range m.handlers {
		if err := h.Finish(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
