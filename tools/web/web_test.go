package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hark/internal"
	"github.com/m-mizutani/hark/mock"
	"github.com/m-mizutani/hark/tools/web"
)

func TestOpenURL(t *testing.T) {
	ctx := internal.TestContext()

	testCases := map[string]struct {
		url  string
		want string
	}{
		"bare host":   {url: "youtube.com", want: "https://youtube.com"},
		"with scheme": {url: "http://localhost:8080/docs", want: "http://localhost:8080/docs"},
		"padded":      {url: "  github.com/m-mizutani ", want: "https://github.com/m-mizutani"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			runner := &mock.RunnerMock{
				StartFunc: func(ctx context.Context, name string, args ...string) error { return nil },
			}
			got, err := web.NewOpenURL(runner).Run(ctx, map[string]any{"url": tc.url})
			gt.NoError(t, err)
			gt.Equal[any](t, got, true)

			calls := runner.StartCalls()
			gt.A(t, calls).Length(1)
			gt.Equal(t, calls[0].Name, "xdg-open")
			gt.Equal(t, calls[0].Args, []string{tc.want})
		})
	}

	t.Run("empty url", func(t *testing.T) {
		runner := &mock.RunnerMock{}
		_, err := web.NewOpenURL(runner).Run(ctx, map[string]any{"url": ""})
		gt.Error(t, err)
		gt.A(t, runner.StartCalls()).Length(0)
	})

	t.Run("browser failure", func(t *testing.T) {
		runner := &mock.RunnerMock{
			StartFunc: func(ctx context.Context, name string, args ...string) error {
				return errors.New("xdg-open not found")
			},
		}
		_, err := web.NewOpenURL(runner).Run(ctx, map[string]any{"url": "example.com"})
		gt.Error(t, err)
	})
}

const resultPage = `<html><body>
<div class="result results_links result--ad">
  <h2 class="result__title"><a class="result__a" href="https://ads.example.com">Sponsored</a></h2>
  <a class="result__snippet">Buy now</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&amp;rut=abc">Documentation - The Go Programming Language</a></h2>
  <a class="result__snippet" href="#">The Go programming language is an open source project
    to make programmers more productive.</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://go.dev/tour/">A Tour of Go</a></h2>
  <a class="result__snippet" href="#">Welcome to a tour of the Go programming language.</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://gobyexample.com/">Go by Example</a></h2>
  <a class="result__snippet" href="#">Hands-on introduction using annotated programs.</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://example.com/fourth">Fourth</a></h2>
  <a class="result__snippet" href="#">Not returned.</a>
</div>
</body></html>`

func newSearchServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.Method, http.MethodPost)
		gt.NoError(t, r.ParseForm())
		queries = append(queries, r.PostForm.Get("q"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &queries
}

func TestSearchWeb(t *testing.T) {
	ctx := internal.TestContext()

	t.Run("top three formatted", func(t *testing.T) {
		srv, queries := newSearchServer(t, http.StatusOK, resultPage)
		tool := web.NewSearchWeb(web.WithEndpoint(srv.URL))

		got, err := tool.Run(ctx, map[string]any{"query": "golang docs"})
		gt.NoError(t, err)
		gt.Equal[any](t, got, "1. Documentation - The Go Programming Language: The Go programming language is an open source project to make programmers more productive. (https://go.dev/doc/)\n"+
			"2. A Tour of Go: Welcome to a tour of the Go programming language. (https://go.dev/tour/)\n"+
			"3. Go by Example: Hands-on introduction using annotated programs. (https://gobyexample.com/)")
		gt.Equal(t, *queries, []string{"golang docs"})
	})

	t.Run("no results", func(t *testing.T) {
		srv, _ := newSearchServer(t, http.StatusOK, `<html><body><div class="no-results">No results.</div></body></html>`)
		got, err := web.NewSearchWeb(web.WithEndpoint(srv.URL)).Run(ctx, map[string]any{"query": "qwzxv"})
		gt.NoError(t, err)
		gt.Equal[any](t, got, web.NoResults)
	})

	t.Run("error status", func(t *testing.T) {
		srv, _ := newSearchServer(t, http.StatusForbidden, "blocked")
		_, err := web.NewSearchWeb(web.WithEndpoint(srv.URL)).Run(ctx, map[string]any{"query": "anything"})
		gt.Error(t, err)
	})

	t.Run("blank query", func(t *testing.T) {
		_, err := web.NewSearchWeb().Run(ctx, map[string]any{"query": "  "})
		gt.Error(t, err)
	})
}
