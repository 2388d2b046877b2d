package main

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/llm/claude"
	"github.com/m-mizutani/hark/llm/gemini"
	"github.com/m-mizutani/hark/llm/ollama"
	"github.com/m-mizutani/hark/llm/openai"
	"github.com/urfave/cli/v3"
)

const (
	backendOllama = "ollama"
	backendOpenAI = "openai"
	backendClaude = "claude"
	backendGemini = "gemini"
)

func llmFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "llm",
			Value:   backendOllama,
			Sources: cli.EnvVars("HARK_LLM"),
			Usage:   "LLM backend (ollama|openai|claude|gemini)",
		},
		&cli.StringFlag{
			Name:    "llm-model",
			Sources: cli.EnvVars("HARK_LLM_MODEL"),
			Usage:   "Model name, the backend default if empty",
		},
		&cli.StringFlag{
			Name:    "llm-url",
			Sources: cli.EnvVars("HARK_LLM_URL"),
			Usage:   "Endpoint URL of ollama, an OpenAI compatible server or the Claude API",
		},
		&cli.StringFlag{
			Name:    "openai-api-key",
			Sources: cli.EnvVars("HARK_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Usage:   "OpenAI API key",
		},
		&cli.StringFlag{
			Name:    "claude-api-key",
			Sources: cli.EnvVars("HARK_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"),
			Usage:   "Anthropic API key. Vertex AI is used when empty and a GCP project is set",
		},
		&cli.StringFlag{
			Name:    "gemini-api-key",
			Sources: cli.EnvVars("HARK_GEMINI_API_KEY"),
			Usage:   "Gemini API key. Vertex AI is used when empty",
		},
		&cli.StringFlag{
			Name:    "gcp-project-id",
			Sources: cli.EnvVars("HARK_GCP_PROJECT_ID"),
			Usage:   "Google Cloud project for Vertex AI",
		},
		&cli.StringFlag{
			Name:    "gcp-location",
			Value:   "us-central1",
			Sources: cli.EnvVars("HARK_GCP_LOCATION"),
			Usage:   "Google Cloud location for Vertex AI",
		},
	}
}

type llmConfig struct {
	Backend      string
	Model        string
	URL          string
	OpenAIKey    string
	ClaudeKey    string
	GeminiKey    string
	GCPProjectID string
	GCPLocation  string
}

func llmConfigFrom(cmd *cli.Command) llmConfig {
	return llmConfig{
		Backend:      cmd.String("llm"),
		Model:        cmd.String("llm-model"),
		URL:          cmd.String("llm-url"),
		OpenAIKey:    cmd.String("openai-api-key"),
		ClaudeKey:    cmd.String("claude-api-key"),
		GeminiKey:    cmd.String("gemini-api-key"),
		GCPProjectID: cmd.String("gcp-project-id"),
		GCPLocation:  cmd.String("gcp-location"),
	}
}

func newLLMClient(ctx context.Context, cfg llmConfig) (hark.LLMClient, error) {
	switch cfg.Backend {
	case backendOllama, "":
		var opts []ollama.Option
		if cfg.URL != "" {
			opts = append(opts, ollama.WithURL(cfg.URL))
		}
		if cfg.Model != "" {
			opts = append(opts, ollama.WithModel(cfg.Model))
		}
		return ollama.New(opts...)

	case backendOpenAI:
		var opts []openai.Option
		if cfg.URL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.URL))
		}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		return openai.New(ctx, cfg.OpenAIKey, opts...)

	case backendClaude:
		var opts []claude.Option
		if cfg.URL != "" {
			opts = append(opts, claude.WithBaseURL(cfg.URL))
		}
		if cfg.Model != "" {
			opts = append(opts, claude.WithModel(cfg.Model))
		}
		if cfg.ClaudeKey == "" && cfg.GCPProjectID != "" {
			return claude.NewWithVertex(ctx, cfg.GCPLocation, cfg.GCPProjectID, opts...)
		}
		return claude.New(ctx, cfg.ClaudeKey, opts...)

	case backendGemini:
		var opts []gemini.Option
		if cfg.Model != "" {
			opts = append(opts, gemini.WithModel(cfg.Model))
		}
		if cfg.GeminiKey != "" {
			return gemini.NewWithAPIKey(ctx, cfg.GeminiKey, opts...)
		}
		return gemini.New(ctx, cfg.GCPProjectID, cfg.GCPLocation, opts...)

	default:
		return nil, goerr.New("unknown LLM backend", goerr.V("backend", cfg.Backend))
	}
}

// modelName is recorded in trace metadata.
func (x llmConfig) modelName() string {
	if x.Model != "" {
		return x.Model
	}
	switch x.Backend {
	case backendOpenAI:
		return openai.DefaultModel
	case backendClaude:
		if x.ClaudeKey == "" && x.GCPProjectID != "" {
			return claude.DefaultVertexModel
		}
		return claude.DefaultModel
	case backendGemini:
		return gemini.DefaultModel
	default:
		return ollama.DefaultModel
	}
}
