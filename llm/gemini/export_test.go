package gemini

type APIClient = generator

// NewWithAPIClient creates a client calling the given API client.
func NewWithAPIClient(api generator, options ...Option) *Client {
	client := newClient(options...)
	client.api = api
	return client
}
