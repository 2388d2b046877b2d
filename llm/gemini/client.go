package gemini

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Client is a hark.LLMClient backed by Google's Gemini models, either through Vertex AI or the
// Gemini API.
type Client struct {
	api generator

	// model can be overridden using WithModel option.
	model string

	// generationConfig contains the default generation parameters
	generationConfig genai.GenerateContentConfig
}

// Option is a configuration option for the Gemini client.
type Option func(*Client)

// WithModel sets the model to use for text generation.
// Default: DefaultModel
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTemperature sets the temperature parameter for text generation.
// Range: 0.0 to 2.0
func WithTemperature(temp float32) Option {
	return func(c *Client) {
		c.generationConfig.Temperature = &temp
	}
}

// WithThinkingBudget sets the thinking token budget. Default is 0, which disables thinking for
// the lowest latency. A value of -1 enables automatic thinking budget allocation.
func WithThinkingBudget(budget int32) Option {
	return func(c *Client) {
		c.generationConfig.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}
}

func newClient(options ...Option) *Client {
	var budget int32
	client := &Client{
		model: DefaultModel,
		generationConfig: genai.GenerateContentConfig{
			ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: &budget},
		},
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// New creates a client using Vertex AI in the project and location.
func New(ctx context.Context, projectID, location string, options ...Option) (*Client, error) {
	if projectID == "" {
		return nil, goerr.New("projectID is required")
	}
	if location == "" {
		return nil, goerr.New("location is required")
	}

	return newWithConfig(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	}, options...)
}

// NewWithAPIKey creates a client using the Gemini API.
func NewWithAPIKey(ctx context.Context, apiKey string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.New("Gemini API key is required")
	}

	return newWithConfig(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, options...)
}

func newWithConfig(ctx context.Context, config *genai.ClientConfig, options ...Option) (*Client, error) {
	client := newClient(options...)
	c, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}
	client.api = &sdkGenerator{client: c}
	return client, nil
}

// Generate implements hark.LLMClient.
func (c *Client) Generate(ctx context.Context, req *hark.LLMRequest) (*hark.LLMResponse, error) {
	config := c.generationConfig
	switch req.ContentType {
	case hark.ContentTypeJSON:
		config.ResponseMIMEType = "application/json"
	default:
		config.ResponseMIMEType = "text/plain"
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	resp, err := c.api.GenerateContent(ctx, c.model, contents, &config)
	if err != nil {
		return nil, goerr.Wrap(hark.ErrLLMTransport, "failed to generate content",
			goerr.V("model", c.model),
			goerr.V("error", err.Error()))
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(hark.ErrEmptyResponse, "no text in Gemini response", goerr.V("model", c.model))
	}

	result := &hark.LLMResponse{
		Text:  text,
		Model: c.model,
	}
	if resp.ModelVersion != "" {
		result.Model = resp.ModelVersion
	}
	if resp.UsageMetadata != nil {
		result.InputToken = int(resp.UsageMetadata.PromptTokenCount)
		result.OutputToken = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return result, nil
}

// responseText joins the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
