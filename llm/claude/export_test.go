package claude

var ExtractJSONFromResponse = extractJSONFromResponse

type APIClient = messenger

// NewWithAPIClient creates a client calling the given API client.
func NewWithAPIClient(api messenger, options ...Option) *Client {
	client := newClient(DefaultModel, options...)
	client.api = api
	return client
}
