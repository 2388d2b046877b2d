package hark_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/internal"
	"github.com/m-mizutani/hark/mock"
	"github.com/m-mizutani/hark/trace"
)

func TestGenerate(t *testing.T) {
	req := &hark.LLMRequest{SystemPrompt: "sys", Prompt: "hello", ContentType: hark.ContentTypeText}

	t.Run("returns the answer", func(t *testing.T) {
		client := &mock.LLMClientMock{
			GenerateFunc: func(ctx context.Context, got *hark.LLMRequest) (*hark.LLMResponse, error) {
				gt.Equal(t, got, req)
				_, ok := ctx.Deadline()
				gt.True(t, ok)
				return &hark.LLMResponse{Text: "hi", Model: "m", InputToken: 3, OutputToken: 1}, nil
			},
		}
		resp, err := hark.Generate(internal.TestContext(), client, time.Minute, hark.PurposeSynthesize, req)
		gt.NoError(t, err)
		gt.Equal(t, resp.Text, "hi")
	})

	t.Run("blank answer is an empty response", func(t *testing.T) {
		client := &mock.LLMClientMock{
			GenerateFunc: func(context.Context, *hark.LLMRequest) (*hark.LLMResponse, error) {
				return &hark.LLMResponse{Text: "  \n"}, nil
			},
		}
		_, err := hark.Generate(internal.TestContext(), client, time.Minute, hark.PurposePlan, req)
		gt.True(t, errors.Is(err, hark.ErrEmptyResponse))
	})

	t.Run("timeout is a transport failure", func(t *testing.T) {
		client := &mock.LLMClientMock{
			GenerateFunc: func(ctx context.Context, _ *hark.LLMRequest) (*hark.LLMResponse, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}
		_, err := hark.Generate(internal.TestContext(), client, 10*time.Millisecond, hark.PurposePlan, req)
		gt.True(t, errors.Is(err, hark.ErrLLMTransport))
	})

	t.Run("transport error is kept", func(t *testing.T) {
		client := &mock.LLMClientMock{
			GenerateFunc: func(context.Context, *hark.LLMRequest) (*hark.LLMResponse, error) {
				return nil, hark.ErrLLMTransport
			},
		}
		_, err := hark.Generate(internal.TestContext(), client, time.Minute, hark.PurposePlan, req)
		gt.True(t, errors.Is(err, hark.ErrLLMTransport))
	})

	t.Run("records an llm span", func(t *testing.T) {
		rec := trace.New()
		ctx := trace.WithHandler(internal.TestContext(), rec)
		ctx = rec.StartUtterance(ctx, "utt")

		client := &mock.LLMClientMock{
			GenerateFunc: func(context.Context, *hark.LLMRequest) (*hark.LLMResponse, error) {
				return &hark.LLMResponse{Text: "ok", Model: "llama3", InputToken: 10, OutputToken: 2}, nil
			},
		}
		_, err := hark.Generate(ctx, client, 0, hark.PurposeRepair, req)
		gt.NoError(t, err)

		children := rec.Trace().RootSpan.Children
		gt.A(t, children).Length(1)
		gt.Equal(t, children[0].Kind, trace.SpanKindLLMCall)
		gt.Equal(t, children[0].LLMCall.Purpose, hark.PurposeRepair)
		gt.Equal(t, children[0].LLMCall.Model, "llama3")
		gt.Equal(t, children[0].LLMCall.InputTokens, 10)
		gt.Equal(t, children[0].LLMCall.Response, "ok")
	})
}
