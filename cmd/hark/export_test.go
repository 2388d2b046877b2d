package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/trace"
)

type ListTracesResponse = listTracesResponse

// LLMConfig is exported for testing.
type LLMConfig = llmConfig

func NewTestServer(src trace.Source) http.Handler {
	return newServer(withSource(src)).handler()
}

func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	return newLogger(w, level, format)
}

func NewLLMClient(ctx context.Context, cfg LLMConfig) (hark.LLMClient, error) {
	return newLLMClient(ctx, cfg)
}

func (x LLMConfig) ModelName() string {
	return x.modelName()
}

var (
	PrintTools = printTools
	ListTraces = listTraces
	ShowTrace  = showTrace
)
