package hark

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
)

// SynthesizeFallback is spoken when the summary request fails.
const SynthesizeFallback = "I found the information but couldn't summarize it."

// ResponseSynthesizer turns the observations of a plan run into a spoken answer with one free
// text language model request. It fails closed to SynthesizeFallback.
type ResponseSynthesizer struct {
	client  LLMClient
	timeout time.Duration
}

// SynthesizerOption configures a ResponseSynthesizer.
type SynthesizerOption func(*ResponseSynthesizer)

// WithSynthesizerTimeout overrides DefaultRequestTimeout for summary requests.
func WithSynthesizerTimeout(d time.Duration) SynthesizerOption {
	return func(s *ResponseSynthesizer) {
		s.timeout = d
	}
}

func NewResponseSynthesizer(client LLMClient, opts ...SynthesizerOption) *ResponseSynthesizer {
	s := &ResponseSynthesizer{
		client:  client,
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize returns the text to speak for the goal given the observations.
func (x *ResponseSynthesizer) Synthesize(ctx context.Context, goal string, observations []Observation) string {
	logger := ctxlog.From(ctx)

	prompt, err := buildSynthesizePrompt(goal, observations)
	if err != nil {
		logger.Error("failed to build summary prompt", "error", err)
		return SynthesizeFallback
	}

	resp, err := generate(ctx, x.client, x.timeout, PurposeSynthesize, &LLMRequest{
		SystemPrompt: synthesizeSystemPrompt,
		Prompt:       prompt,
		ContentType:  ContentTypeText,
	})
	if err != nil {
		logger.Warn("summary request failed", "error", err)
		return SynthesizeFallback
	}

	return strings.TrimSpace(resp.Text)
}
