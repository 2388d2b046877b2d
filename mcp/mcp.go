// Package mcp exposes the assistant's tools to other agents as an MCP server. Calls are routed
// through hark.ToolDispatcher, so argument validation and result normalization are the same
// as for plan steps.
package mcp

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/internal/schema"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// DefaultServerName is the name advertised to MCP clients
	DefaultServerName = "hark"
)

// Server serves the tool registry.
type Server struct {
	mcp        *server.MCPServer
	dispatcher *hark.ToolDispatcher
}

// Option configures a Server.
type Option func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithServerInfo sets the name and version advertised to clients.
func WithServerInfo(name, version string) Option {
	return func(c *serverConfig) {
		c.name = name
		c.version = version
	}
}

// NewServer registers every tool of the dispatcher's registry.
func NewServer(dispatcher *hark.ToolDispatcher, options ...Option) (*Server, error) {
	cfg := &serverConfig{
		name:    DefaultServerName,
		version: "dev",
	}
	for _, opt := range options {
		opt(cfg)
	}

	s := &Server{
		mcp: server.NewMCPServer(cfg.name, cfg.version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		dispatcher: dispatcher,
	}

	for _, spec := range dispatcher.Registry().Specs() {
		raw, err := json.Marshal(schema.ToolInputSchema(spec))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode tool schema", goerr.V("tool", spec.Name))
		}
		tool := mcpgo.NewToolWithRawSchema(spec.Name.String(), spec.Description, raw)
		s.mcp.AddTool(tool, s.handle(spec.Name))
	}

	return s, nil
}

// MCPServer returns the underlying server.
func (x *Server) MCPServer() *server.MCPServer {
	return x.mcp
}

// ServeStdio serves JSON-RPC over the given streams until ctx is canceled or stdin is closed.
func (x *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	stdio := server.NewStdioServer(x.mcp)
	if err := stdio.Listen(ctx, stdin, stdout); err != nil && ctx.Err() == nil {
		return goerr.Wrap(err, "MCP stdio server stopped")
	}
	return nil
}

func (x *Server) handle(name hark.ToolName) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		args := req.GetArguments()
		ctxlog.From(ctx).Debug("MCP tool call", "tool", name, "args", args)

		result := x.dispatcher.Dispatch(ctx, name.String(), args)
		if !result.OK() {
			return mcpgo.NewToolResultError(result.Error), nil
		}
		return mcpgo.NewToolResultText(resultText(result.Result)), nil
	}
}

// resultText renders a tool result. Strings pass through; booleans and structured values are
// JSON encoded.
func resultText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
