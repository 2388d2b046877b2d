// Package ollama is the hark.LLMClient for a local Ollama server. It calls the native generate
// endpoint through the official API client, with streaming off and JSON format for plans.
package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/ollama/ollama/api"
)

const (
	DefaultURL   = "http://localhost:11434"
	DefaultModel = "qwen2.5:3b-instruct"
)

var jsonFormat = json.RawMessage(`"json"`)

// Client is a hark.LLMClient for Ollama. Request deadlines come from the context.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	api        *api.Client
}

// Option is a function that configures a Client.
type Option func(*Client)

// WithURL sets the base URL of the Ollama server.
// Default: DefaultURL
func WithURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithModel sets the model to use.
// Default: DefaultModel
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// New creates a client. It fails only on a malformed server URL.
func New(options ...Option) (*Client, error) {
	c := &Client{
		baseURL:    DefaultURL,
		model:      DefaultModel,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}

	base, err := url.Parse(c.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, goerr.New("invalid Ollama URL", goerr.V("url", c.baseURL))
	}
	c.api = api.NewClient(base, c.httpClient)
	return c, nil
}

// Generate implements hark.LLMClient.
func (c *Client) Generate(ctx context.Context, req *hark.LLMRequest) (*hark.LLMResponse, error) {
	stream := false
	genReq := &api.GenerateRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		System: req.SystemPrompt,
		Stream: &stream,
	}
	if req.ContentType == hark.ContentTypeJSON {
		genReq.Format = jsonFormat
	}

	eb := goerr.NewBuilder(goerr.V("url", c.baseURL), goerr.V("model", c.model))

	var out api.GenerateResponse
	var text strings.Builder
	err := c.api.Generate(ctx, genReq, func(resp api.GenerateResponse) error {
		text.WriteString(resp.Response)
		if resp.Done {
			out = resp
		}
		return nil
	})
	if err != nil {
		var status api.StatusError
		if errors.As(err, &status) {
			return nil, eb.Wrap(hark.ErrLLMTransport, "ollama returned error status",
				goerr.V("status", status.StatusCode),
				goerr.V("error", status.ErrorMessage))
		}
		return nil, eb.Wrap(hark.ErrLLMTransport, "generate request failed", goerr.V("error", err.Error()))
	}

	result := strings.TrimSpace(text.String())
	if result == "" {
		return nil, eb.Wrap(hark.ErrEmptyResponse, "ollama returned no text")
	}

	model := out.Model
	if model == "" {
		model = c.model
	}
	return &hark.LLMResponse{
		Text:        result,
		Model:       model,
		InputToken:  out.PromptEvalCount,
		OutputToken: out.EvalCount,
	}, nil
}

// Ping checks that the server is up.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.api.Heartbeat(ctx); err != nil {
		return goerr.Wrap(hark.ErrLLMTransport, "ollama is not reachable",
			goerr.V("url", c.baseURL),
			goerr.V("error", err.Error()))
	}
	return nil
}
