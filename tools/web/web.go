// Package web opens pages in the default browser and searches the web through the DuckDuckGo
// HTML endpoint.
package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/tools/proc"
)

const (
	DefaultSearchURL = "https://html.duckduckgo.com/html/"
	MaxResults       = 3

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) hark"
)

// NoResults is the output of a search that matched nothing.
const NoResults = "No results found."

// OpenURL opens a URL with xdg-open. A URL without scheme gets https://.
type OpenURL struct {
	runner proc.Runner
}

func NewOpenURL(runner proc.Runner) *OpenURL {
	return &OpenURL{runner: runner}
}

func (x *OpenURL) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolOpenURL,
		Description: "Opens a URL in the default web browser.",
		Parameters: map[string]*hark.Parameter{
			"url": {
				Type:        hark.TypeString,
				Description: "The URL to open, e.g. 'youtube.com'",
			},
		},
		Required: []string{"url"},
	}
}

func (x *OpenURL) Run(ctx context.Context, args map[string]any) (any, error) {
	raw, _ := args["url"].(string)
	target, err := normalizeURL(raw)
	if err != nil {
		return nil, err
	}

	if err := x.runner.Start(ctx, "xdg-open", target); err != nil {
		return nil, goerr.Wrap(err, "failed to open url", goerr.V("url", target))
	}
	return true, nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", goerr.New("url is required")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", goerr.New("invalid url", goerr.V("url", raw))
	}
	return u.String(), nil
}

// SearchWeb returns the top results of a DuckDuckGo search, one per line as
// "n. title: snippet (url)".
type SearchWeb struct {
	client   *http.Client
	endpoint string
}

// SearchOption configures SearchWeb.
type SearchOption func(*SearchWeb)

// WithEndpoint replaces DefaultSearchURL.
func WithEndpoint(endpoint string) SearchOption {
	return func(x *SearchWeb) {
		x.endpoint = endpoint
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) SearchOption {
	return func(x *SearchWeb) {
		x.client = client
	}
}

func NewSearchWeb(options ...SearchOption) *SearchWeb {
	x := &SearchWeb{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: DefaultSearchURL,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *SearchWeb) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolSearchWeb,
		Description: "Searches the web and returns the top 3 results with title, snippet and URL.",
		Parameters: map[string]*hark.Parameter{
			"query": {
				Type:        hark.TypeString,
				Description: "The search query",
			},
		},
		Required: []string{"query"},
	}
}

// Result is one search hit.
type Result struct {
	Title   string
	Snippet string
	URL     string
}

func (x *SearchWeb) Run(ctx context.Context, args map[string]any) (any, error) {
	query, _ := args["query"].(string)
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, goerr.New("query is required")
	}

	results, err := x.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return formatResults(results), nil
}

// Search fetches and parses the result page.
func (x *SearchWeb) Search(ctx context.Context, query string) ([]Result, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build search request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	ctxlog.From(ctx).Debug("searching web", "query", query)
	resp, err := x.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "search request failed", goerr.V("query", query))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("search returned an error status",
			goerr.V("status", resp.StatusCode),
			goerr.V("query", query))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse search results")
	}
	return parseResults(doc), nil
}

func parseResults(doc *goquery.Document) []Result {
	var results []Result
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return true
		}

		results = append(results, Result{
			Title:   title,
			Snippet: strings.Join(strings.Fields(s.Find(".result__snippet").First().Text()), " "),
			URL:     resolveRedirect(href),
		})
		return len(results) < MaxResults
	})
	return results
}

// resolveRedirect unwraps the "//duckduckgo.com/l/?uddg=<target>" click tracking link.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && u.Host != "" {
		u.Scheme = "https"
		return u.String()
	}
	return href
}

func formatResults(results []Result) string {
	if len(results) == 0 {
		return NoResults
	}
	lines := make([]string, 0, len(results))
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("%d. %s: %s (%s)", i+1, r.Title, r.Snippet, r.URL))
	}
	return strings.Join(lines, "\n")
}
