package claude

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
)

// messenger sends one user message per plan, repair or summary request. The same SDK client
// serves the Anthropic API and Vertex AI.
type messenger interface {
	MessagesNew(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

type sdkMessenger struct {
	client *anthropic.Client
}

func (x *sdkMessenger) MessagesNew(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return x.client.Messages.New(ctx, params)
}
