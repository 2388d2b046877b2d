package llm_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/internal"
	"github.com/m-mizutani/hark/llm/claude"
	"github.com/m-mizutani/hark/llm/gemini"
	"github.com/m-mizutani/hark/llm/ollama"
	"github.com/m-mizutani/hark/llm/openai"
)

type timeTool struct{}

func (timeTool) Spec() hark.ToolSpec {
	return hark.ToolSpec{Name: hark.ToolGetTime, Description: "Get the current date and time"}
}

func (timeTool) Run(context.Context, map[string]any) (any, error) {
	return "Monday, January 05, 2026 at 03:04 PM", nil
}

// testPlanner checks that a live backend follows the planning instruction well enough to pick
// the time tool.
func testPlanner(t *testing.T, client hark.LLMClient) {
	ctx := internal.TestContext()
	reg, err := hark.NewRegistry(timeTool{})
	gt.NoError(t, err)

	planner, err := hark.NewPlanner(client, reg)
	gt.NoError(t, err)

	resp, err := planner.Plan(ctx, "what time is it")
	gt.NoError(t, err)
	gt.False(t, resp.Plan.IsEmpty())
	gt.Equal(t, resp.Plan.Step(0).Tool, "get_time")

	summary := hark.NewResponseSynthesizer(client).Synthesize(ctx, "what time is it", []hark.Observation{
		{Tool: hark.ToolGetTime, Output: "Monday, January 05, 2026 at 03:04 PM"},
	})
	gt.NotEqual(t, summary, hark.SynthesizeFallback)
}

func TestOllama(t *testing.T) {
	url, ok := os.LookupEnv("TEST_OLLAMA_URL")
	if !ok {
		t.Skip("TEST_OLLAMA_URL is not set")
	}
	client, err := ollama.New(ollama.WithURL(url))
	gt.NoError(t, err)
	testPlanner(t, client)
}

func TestOpenAI(t *testing.T) {
	apiKey, ok := os.LookupEnv("TEST_OPENAI_API_KEY")
	if !ok {
		t.Skip("TEST_OPENAI_API_KEY is not set")
	}
	client, err := openai.New(context.Background(), apiKey)
	gt.NoError(t, err)
	testPlanner(t, client)
}

func TestClaude(t *testing.T) {
	apiKey, ok := os.LookupEnv("TEST_CLAUDE_API_KEY")
	if !ok {
		t.Skip("TEST_CLAUDE_API_KEY is not set")
	}
	client, err := claude.New(context.Background(), apiKey)
	gt.NoError(t, err)
	testPlanner(t, client)
}

func TestGemini(t *testing.T) {
	projectID, ok := os.LookupEnv("TEST_GCP_PROJECT_ID")
	if !ok {
		t.Skip("TEST_GCP_PROJECT_ID is not set")
	}
	location, ok := os.LookupEnv("TEST_GCP_LOCATION")
	if !ok {
		t.Skip("TEST_GCP_LOCATION is not set")
	}
	client, err := gemini.New(context.Background(), projectID, location)
	gt.NoError(t, err)
	testPlanner(t, client)
}
