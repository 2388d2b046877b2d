package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/sashabaranov/go-openai"
)

const DefaultModel = "gpt-4o-mini"

// generationParameters represents the parameters for text generation.
type generationParameters struct {
	// Temperature controls randomness in the output.
	Temperature float32

	// MaxTokens limits the number of tokens to generate. Zero leaves it to the server.
	MaxTokens int
}

// Client is a hark.LLMClient backed by the OpenAI chat completion API or any server speaking
// it, such as a local Ollama or llama.cpp instance.
type Client struct {
	api completer

	// model can be overridden using WithModel option.
	model string

	// baseURL is the custom base URL for the API. If empty, uses the OpenAI endpoint.
	baseURL string

	params generationParameters
}

// Option is a function that configures a Client.
type Option func(*Client)

// WithModel sets the model to use.
// See default model in [DefaultModel].
func WithModel(modelName string) Option {
	return func(c *Client) {
		c.model = modelName
	}
}

// WithTemperature sets the temperature parameter for text generation.
// Range: 0.0 to 2.0
// Default: 0.2
func WithTemperature(temp float32) Option {
	return func(c *Client) {
		c.params.Temperature = temp
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(maxTokens int) Option {
	return func(c *Client) {
		c.params.MaxTokens = maxTokens
	}
}

// WithBaseURL sets an OpenAI compatible endpoint, e.g. "http://localhost:11434/v1".
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func newClient(options ...Option) *Client {
	client := &Client{
		model: DefaultModel,
		params: generationParameters{
			Temperature: 0.2,
		},
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// New creates a new client for the OpenAI API. apiKey may be empty for a local compatible
// server configured with WithBaseURL.
func New(ctx context.Context, apiKey string, options ...Option) (*Client, error) {
	client := newClient(options...)
	if apiKey == "" && client.baseURL == "" {
		return nil, goerr.New("OpenAI API key is required")
	}

	config := openai.DefaultConfig(apiKey)
	if client.baseURL != "" {
		config.BaseURL = client.baseURL
	}
	client.api = &sdkCompleter{client: openai.NewClientWithConfig(config)}
	return client, nil
}

// Generate implements hark.LLMClient.
func (c *Client) Generate(ctx context.Context, req *hark.LLMRequest) (*hark.LLMResponse, error) {
	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.params.Temperature,
		MaxTokens:   c.params.MaxTokens,
	}
	if req.ContentType == hark.ContentTypeJSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		status := 0
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.HTTPStatusCode
		}
		return nil, goerr.Wrap(hark.ErrLLMTransport, "failed to create chat completion",
			goerr.V("model", c.model),
			goerr.V("status", status),
			goerr.V("error", err.Error()))
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, goerr.Wrap(hark.ErrEmptyResponse, "no content in chat completion", goerr.V("model", c.model))
	}

	return &hark.LLMResponse{
		Text:        resp.Choices[0].Message.Content,
		Model:       resp.Model,
		InputToken:  resp.Usage.PromptTokens,
		OutputToken: resp.Usage.CompletionTokens,
	}, nil
}
