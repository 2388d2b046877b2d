package hark

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark/metrics"
	"github.com/m-mizutani/hark/trace"
)

var (
	// promptScope is the logging scope for prompts sent to the language model service
	promptScope = ctxlog.NewScope("prompt", ctxlog.EnabledBy("HARK_LOGGING_PROMPT"))

	// responseScope is the logging scope for raw language model responses
	responseScope = ctxlog.NewScope("response", ctxlog.EnabledBy("HARK_LOGGING_RESPONSE"))
)

// DefaultRequestTimeout bounds each language model request.
const DefaultRequestTimeout = 60 * time.Second

// ContentType is the requested output format of a generation.
type ContentType string

const (
	ContentTypeText ContentType = "text"
	ContentTypeJSON ContentType = "json"
)

// LLMRequest is one single-turn generation request.
type LLMRequest struct {
	SystemPrompt string
	Prompt       string
	ContentType  ContentType
}

// LLMResponse is the text answer of the language model service.
type LLMResponse struct {
	Text        string
	Model       string
	InputToken  int
	OutputToken int
}

// LLMClient is a client for a language model service. Implementations wrap transport failures
// with ErrLLMTransport and report a blank answer as ErrEmptyResponse.
type LLMClient interface {
	Generate(ctx context.Context, req *LLMRequest) (*LLMResponse, error)
}

// Purposes of language model calls, used for tracing and metrics.
const (
	PurposePlan       = "plan"
	PurposeRepair     = "repair"
	PurposeSynthesize = "synthesize"
)

// generate issues one request under the request timeout and records it in the trace handler
// and metrics.
func generate(ctx context.Context, client LLMClient, timeout time.Duration, purpose string, req *LLMRequest) (*LLMResponse, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	h := trace.HandlerFrom(ctx)
	ctx = h.StartLLMCall(ctx, purpose)

	if logger := ctxlog.From(ctx, promptScope); logger.Enabled(ctx, slog.LevelInfo) {
		logger.Info("LLM prompt",
			"purpose", purpose,
			"system_prompt", req.SystemPrompt,
			"prompt", req.Prompt,
			"content_type", req.ContentType,
		)
	}

	started := time.Now()
	resp, err := client.Generate(ctx, req)
	metrics.LLMLatency.WithLabelValues(purpose).Observe(time.Since(started).Seconds())

	data := &trace.LLMCallData{
		Purpose:      purpose,
		SystemPrompt: req.SystemPrompt,
		Prompt:       req.Prompt,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.InputToken
		data.OutputTokens = resp.OutputToken
		data.Response = resp.Text
	}

	if err == nil && (resp == nil || strings.TrimSpace(resp.Text) == "") {
		err = goerr.Wrap(ErrEmptyResponse, "language model returned no text", goerr.V("purpose", purpose))
	}
	h.EndLLMCall(ctx, data, err)

	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, ErrLLMTransport) {
			err = goerr.Wrap(ErrLLMTransport, "language model request timed out",
				goerr.V("purpose", purpose),
				goerr.V("timeout", timeout.String()),
				goerr.V("cause", err.Error()))
		}
		return nil, err
	}

	if logger := ctxlog.From(ctx, responseScope); logger.Enabled(ctx, slog.LevelInfo) {
		logger.Info("LLM response",
			"purpose", purpose,
			"model", resp.Model,
			"text", resp.Text,
			"input_tokens", resp.InputToken,
			"output_tokens", resp.OutputToken,
		)
	}

	return resp, nil
}
