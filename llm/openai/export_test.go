package openai

type APIClient = completer

// NewWithAPIClient creates a client calling the given API client.
func NewWithAPIClient(api completer, options ...Option) *Client {
	client := newClient(options...)
	client.api = api
	return client
}
