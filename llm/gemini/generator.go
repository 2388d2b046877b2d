package gemini

import (
	"context"

	genai "google.golang.org/genai"
)

// generator produces content for a single-turn prompt. Utterances are planned statelessly, so no
// chat session is kept.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type sdkGenerator struct {
	client *genai.Client
}

func (x *sdkGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return x.client.Models.GenerateContent(ctx, model, contents, config)
}
