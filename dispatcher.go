package hark

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark/metrics"
	"github.com/m-mizutani/hark/trace"
)

// ToolStatus is the status tag of a ToolResult.
type ToolStatus string

const (
	ToolStatusOK    ToolStatus = "ok"
	ToolStatusError ToolStatus = "error"
)

// ToolResult is the normalized outcome of one tool invocation. Result is set iff Status is ok,
// Error is set iff Status is error.
type ToolResult struct {
	Status ToolStatus `json:"status"`
	Result any        `json:"result,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// OK reports whether the invocation succeeded.
func (x *ToolResult) OK() bool {
	return x != nil && x.Status == ToolStatusOK
}

func okResult(v any) *ToolResult {
	return &ToolResult{Status: ToolStatusOK, Result: v}
}

func errorResult(msg string) *ToolResult {
	return &ToolResult{Status: ToolStatusError, Error: msg}
}

// ToolDispatcher invokes tools by name and isolates their failures from the caller. Dispatch
// never returns a Go error and never panics: every failure becomes a ToolResult.
type ToolDispatcher struct {
	registry *Registry
}

// NewToolDispatcher creates a dispatcher over the registry.
func NewToolDispatcher(registry *Registry) *ToolDispatcher {
	return &ToolDispatcher{registry: registry}
}

// Registry returns the registry the dispatcher looks tools up in.
func (x *ToolDispatcher) Registry() *Registry {
	return x.registry
}

// Dispatch looks up the tool and runs it with the arguments.
func (x *ToolDispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (result *ToolResult) {
	logger := ctxlog.From(ctx)
	if args == nil {
		args = map[string]any{}
	}

	h := trace.HandlerFrom(ctx)
	ctx = h.StartToolExec(ctx, name, args)
	defer func() {
		var err error
		if !result.OK() {
			err = goerr.New(result.Error)
		}
		h.EndToolExec(ctx, result.Result, err)
		metrics.ToolCalls.WithLabelValues(name, string(result.Status)).Inc()
	}()

	tool, ok := x.registry.Lookup(name)
	if !ok {
		logger.Info("tool not found", "tool", name)
		return errorResult(fmt.Sprintf("%s: %s", ErrToolNotFound.Error(), name))
	}

	spec := tool.Spec()
	if err := spec.ValidateArgs(args); err != nil {
		logger.Info("tool arguments rejected", "tool", name, "args", args, "error", err)
		return errorResult(err.Error())
	}

	value, err := invoke(ctx, tool, args)
	if err != nil {
		logger.Info("tool failed", "tool", name, "args", args, "error", err)
		return errorResult(err.Error())
	}

	// Boolean false is the failure signal of side-effecting capabilities.
	if b, isBool := value.(bool); isBool && !b {
		logger.Info("tool returned failure", "tool", name, "args", args)
		return errorResult(ErrToolFailed.Error())
	}

	logger.Debug("tool succeeded", "tool", name, "result", value)
	return okResult(value)
}

// invoke runs the tool under a guarded scope that converts a panic into an error.
func invoke(ctx context.Context, tool Tool, args map[string]any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerr.New(fmt.Sprintf("tool panicked: %v", r), goerr.V("tool", tool.Spec().Name))
		}
	}()

	return tool.Run(ctx, args)
}
