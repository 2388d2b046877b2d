package openai

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// completer issues the single non-streaming chat completion behind Generate. Tests swap it for
// a canned response.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type sdkCompleter struct {
	client *openai.Client
}

func (x *sdkCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return x.client.CreateChatCompletion(ctx, req)
}
