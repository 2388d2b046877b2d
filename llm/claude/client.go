package claude

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/vertex"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
)

const (
	// DefaultModel is the model used with the Anthropic API.
	DefaultModel = "claude-sonnet-4-20250514"

	// DefaultVertexModel is the model used with Claude on Vertex AI.
	DefaultVertexModel = "claude-sonnet-4@20250514"
)

// generationParameters represents the parameters for text generation.
type generationParameters struct {
	// Temperature controls randomness in the output.
	Temperature float64

	// MaxTokens limits the number of tokens to generate.
	MaxTokens int64
}

// Client is a hark.LLMClient backed by Anthropic's Claude models.
type Client struct {
	api messenger

	// model can be overridden using WithModel option.
	model string

	params generationParameters
	opts   []option.RequestOption
}

// Option is a function that configures a Client.
type Option func(*Client)

// WithModel sets the model to use.
// Default: DefaultModel, or DefaultVertexModel for NewWithVertex
func WithModel(modelName string) Option {
	return func(c *Client) {
		c.model = modelName
	}
}

// WithTemperature sets the temperature parameter for text generation.
// Range: 0.0 to 1.0
// Default: 0.2
func WithTemperature(temp float64) Option {
	return func(c *Client) {
		c.params.Temperature = temp
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
// Default: 1024
func WithMaxTokens(maxTokens int64) Option {
	return func(c *Client) {
		c.params.MaxTokens = maxTokens
	}
}

// WithBaseURL sets the API endpoint, e.g. for a proxy.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.opts = append(c.opts, option.WithBaseURL(url))
	}
}

func newClient(model string, options ...Option) *Client {
	client := &Client{
		model: model,
		params: generationParameters{
			Temperature: 0.2,
			MaxTokens:   1024,
		},
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// New creates a new client for the Claude API.
func New(ctx context.Context, apiKey string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.New("Claude API key is required")
	}

	client := newClient(DefaultModel, options...)
	c := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, client.opts...)...)
	client.api = &sdkMessenger{client: &c}
	return client, nil
}

// NewWithVertex creates a client for Claude models served by Vertex AI. Credentials come from
// Application Default Credentials.
func NewWithVertex(ctx context.Context, region, projectID string, options ...Option) (*Client, error) {
	if region == "" {
		return nil, goerr.New("region is required")
	}
	if projectID == "" {
		return nil, goerr.New("projectID is required")
	}

	client := newClient(DefaultVertexModel, options...)
	c := anthropic.NewClient(append([]option.RequestOption{
		vertex.WithGoogleAuth(ctx, region, projectID),
	}, client.opts...)...)
	client.api = &sdkMessenger{client: &c}
	return client, nil
}

// Generate implements hark.LLMClient. Claude has no JSON output mode, so for JSON requests the
// first JSON object is cut out of the answer.
func (c *Client) Generate(ctx context.Context, req *hark.LLMRequest) (*hark.LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.params.MaxTokens,
		Temperature: anthropic.Float(c.params.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	resp, err := c.api.MessagesNew(ctx, params)
	if err != nil {
		return nil, goerr.Wrap(hark.ErrLLMTransport, "failed to create message",
			goerr.V("model", c.model),
			goerr.V("error", err.Error()))
	}

	var texts []string
	for _, content := range resp.Content {
		if content.Type == "text" {
			texts = append(texts, content.Text)
		}
	}
	text := strings.Join(texts, "")
	if req.ContentType == hark.ContentTypeJSON {
		text = extractJSONFromResponse(text)
	}
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(hark.ErrEmptyResponse, "no text in Claude response", goerr.V("model", c.model))
	}

	return &hark.LLMResponse{
		Text:        text,
		Model:       string(resp.Model),
		InputToken:  int(resp.Usage.InputTokens),
		OutputToken: int(resp.Usage.OutputTokens),
	}, nil
}
