// Package whisper transcribes captured audio with an OpenAI compatible transcription endpoint,
// such as the OpenAI API or a local faster-whisper server.
package whisper

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is the transcription model name.
	DefaultModel = openai.Whisper1

	// DefaultLanguage is passed to the server so it does not guess the language of short clips.
	DefaultLanguage = "en"
)

// ErrClosed is returned by Transcribe after Close.
var ErrClosed = errors.New("transcriber is closed")

// Transcriber is a hark.Transcriber calling the audio transcription API.
type Transcriber struct {
	client   *openai.Client
	model    string
	language string
	baseURL  string

	mutex  sync.Mutex
	closed bool
}

var _ hark.Transcriber = &Transcriber{}

// Option configures a Transcriber.
type Option func(*Transcriber)

// WithModel sets the transcription model.
func WithModel(model string) Option {
	return func(x *Transcriber) {
		x.model = model
	}
}

// WithLanguage sets the spoken language hint. Empty lets the server detect it.
func WithLanguage(lang string) Option {
	return func(x *Transcriber) {
		x.language = lang
	}
}

// WithBaseURL sets an OpenAI compatible endpoint, e.g. "http://localhost:8000/v1".
func WithBaseURL(baseURL string) Option {
	return func(x *Transcriber) {
		x.baseURL = baseURL
	}
}

// New creates a Transcriber. apiKey may be empty for a local server set with WithBaseURL.
func New(apiKey string, options ...Option) (*Transcriber, error) {
	x := &Transcriber{
		model:    DefaultModel,
		language: DefaultLanguage,
	}
	for _, opt := range options {
		opt(x)
	}
	if apiKey == "" && x.baseURL == "" {
		return nil, goerr.New("API key is required for the default transcription endpoint")
	}

	config := openai.DefaultConfig(apiKey)
	if x.baseURL != "" {
		config.BaseURL = x.baseURL
	}
	x.client = openai.NewClientWithConfig(config)
	return x, nil
}

// Transcribe uploads the audio as WAV and maps the verbose_json segments.
func (x *Transcriber) Transcribe(ctx context.Context, audio *hark.Audio) (*hark.Transcription, error) {
	x.mutex.Lock()
	closed := x.closed
	x.mutex.Unlock()
	if closed {
		return nil, ErrClosed
	}

	if audio == nil || len(audio.Samples) == 0 {
		return &hark.Transcription{}, nil
	}
	if audio.SampleRate <= 0 {
		return nil, goerr.New("sample rate is required", goerr.V("sample_rate", audio.SampleRate))
	}

	logger := ctxlog.From(ctx)
	logger.Debug("transcribing audio", "duration", audio.Duration(), "model", x.model)

	resp, err := x.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    x.model,
		FilePath: "utterance.wav",
		Reader:   bytes.NewReader(encodeWAV(audio)),
		Language: x.language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to transcribe audio",
			goerr.V("model", x.model),
			goerr.V("duration", audio.Duration().String()))
	}

	result := &hark.Transcription{
		Segments: make([]hark.Segment, 0, len(resp.Segments)),
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, hark.Segment{
			Text:         seg.Text,
			AvgLogProb:   seg.AvgLogprob,
			NoSpeechProb: seg.NoSpeechProb,
		})
	}

	logger.Debug("transcribed audio", "text", result.Text(), "segments", len(result.Segments))
	return result, nil
}

// Close marks the transcriber as released. The HTTP client holds no per-process resource.
func (x *Transcriber) Close() error {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	x.closed = true
	return nil
}
