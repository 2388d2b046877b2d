package hark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark/metrics"
	"github.com/m-mizutani/hark/trace"
)

const (
	// DefaultInactivityTimeout returns the session to wake-word listening.
	DefaultInactivityTimeout = 300 * time.Second
	// DefaultCaptureTimeout bounds the wait for speech to start in one capture.
	DefaultCaptureTimeout = 5 * time.Second
)

// Messages spoken by the orchestrator.
const (
	MessageSleep         = "I am going to sleep now."
	MessagePlanningError = "I'm having trouble structuring my thoughts."
)

func acknowledgment(text string) string {
	return fmt.Sprintf("Okay, %s.", text)
}

// UtterancePlanner plans an accepted utterance. *Planner implements it.
type UtterancePlanner interface {
	Plan(ctx context.Context, text string) (*PlanResponse, error)
}

// PlanRunner executes a plan to completion. *PlanExecutor implements it.
type PlanRunner interface {
	Execute(ctx context.Context, goal string, plan *Plan) *ExecutionResult
}

// Orchestrator is the main loop: wait for the wake phrase, then capture, transcribe, gate,
// plan, execute and speak utterance by utterance until the session goes idle. Everything runs
// on the calling goroutine; one utterance is fully handled before the next capture.
type Orchestrator struct {
	runtime  *Runtime
	recorder Recorder
	speaker  Speaker
	planner  UtterancePlanner
	executor PlanRunner

	gate              *ConfidenceGate
	tracer            trace.Handler
	inactivityTimeout time.Duration
	captureTimeout    time.Duration
	wakeResponse      string
	now               func() time.Time
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithGate replaces the default confidence gate.
func WithGate(g *ConfidenceGate) OrchestratorOption {
	return func(o *Orchestrator) {
		o.gate = g
	}
}

// WithTrace sets the trace handler. A trace is started for every accepted utterance.
func WithTrace(h trace.Handler) OrchestratorOption {
	return func(o *Orchestrator) {
		o.tracer = h
	}
}

// WithInactivityTimeout sets how long a session waits for an accepted utterance before going
// back to wake-word listening.
func WithInactivityTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.inactivityTimeout = d
	}
}

// WithCaptureTimeout sets the per-capture wait for speech.
func WithCaptureTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.captureTimeout = d
	}
}

// WithWakeResponse sets a phrase spoken when the wake word starts a session, e.g. "Yes boss".
// Nothing is spoken by default.
func WithWakeResponse(text string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.wakeResponse = text
	}
}

// WithClock replaces time.Now for inactivity accounting.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// NewOrchestrator wires the components. runtime and recorder may be nil when only HandleText
// is used, as in text chat mode.
func NewOrchestrator(runtime *Runtime, recorder Recorder, speaker Speaker, planner UtterancePlanner, executor PlanRunner, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		runtime:           runtime,
		recorder:          recorder,
		speaker:           speaker,
		planner:           planner,
		executor:          executor,
		gate:              NewConfidenceGate(),
		inactivityTimeout: DefaultInactivityTimeout,
		captureTimeout:    DefaultCaptureTimeout,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run loops until ctx is canceled. It returns nil on cancellation and an error only when the
// wake engine itself fails. The caller owns the Runtime and closes it after Run returns.
func (x *Orchestrator) Run(ctx context.Context) error {
	if x.runtime == nil || x.recorder == nil {
		return goerr.New("voice loop requires a runtime and a recorder")
	}
	logger := ctxlog.From(ctx)
	logger.Info("main loop started")

	for {
		if err := x.runtime.Wake().Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return goerr.Wrap(err, "wake detector failed")
		}

		logger.Info("wake word detected, active session started")
		if x.wakeResponse != "" {
			speak(ctx, x.speaker, x.wakeResponse)
		}
		x.session(ctx)

		if ctx.Err() != nil {
			return nil
		}
	}
}

// session is the active-listening inner loop. The inactivity timeout is evaluated between
// captures only.
func (x *Orchestrator) session(ctx context.Context) {
	logger := ctxlog.From(ctx)
	metrics.Sessions.Set(1)
	defer metrics.Sessions.Set(0)

	lastActivity := x.now()
	for ctx.Err() == nil {
		if x.now().Sub(lastActivity) > x.inactivityTimeout {
			logger.Info("inactivity timeout", "timeout", x.inactivityTimeout)
			speak(ctx, x.speaker, MessageSleep)
			return
		}

		if x.listenOnce(ctx) {
			lastActivity = x.now()
		}
	}
}

// listenOnce captures and handles one utterance. It reports whether an utterance was accepted.
// Any error or panic is contained here so the session stays alive.
func (x *Orchestrator) listenOnce(ctx context.Context) (accepted bool) {
	logger := ctxlog.From(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("active loop panic", "panic", fmt.Sprintf("%v", r))
		}
	}()

	audio, err := x.recorder.Record(ctx, x.captureTimeout)
	if err != nil {
		if !errors.Is(err, ErrCaptureTimeout) && ctx.Err() == nil {
			logger.Error("active loop error", "error", err)
		}
		return false
	}

	transcription, err := x.runtime.Transcriber().Transcribe(ctx, audio)
	if err != nil {
		logger.Error("transcription failed", "error", err)
		return false
	}

	return x.HandleTranscription(ctx, transcription)
}

// HandleTranscription gates a transcription and handles it if accepted.
func (x *Orchestrator) HandleTranscription(ctx context.Context, t *Transcription) bool {
	return x.handle(ctx, x.gate.Evaluate(t))
}

// HandleText gates a transcript with a known confidence and handles it if accepted. Text chat
// mode calls it with confidence 1.
func (x *Orchestrator) HandleText(ctx context.Context, text string, confidence float64) bool {
	return x.handle(ctx, x.gate.Classify(text, confidence))
}

func (x *Orchestrator) handle(ctx context.Context, d Decision) bool {
	metrics.Utterances.WithLabelValues(d.Tier.String()).Inc()

	if !d.Accepted() {
		if d.Noise {
			ctxlog.From(ctx).Debug("ignored noise or low confidence", "confidence", d.Confidence)
		}
		return false
	}

	x.handleUtterance(ctx, d)
	return true
}

// handleUtterance runs one accepted utterance under its own request id and trace.
func (x *Orchestrator) handleUtterance(ctx context.Context, d Decision) {
	id := uuid.Must(uuid.NewV7()).String()
	logger := ctxlog.From(ctx).With("request_id", id)
	ctx = ctxlog.With(ctx, logger)

	utterance := &trace.UtteranceData{
		Transcript: d.Transcript,
		Confidence: d.Confidence,
		Tier:       d.Tier.String(),
	}
	if x.tracer != nil {
		ctx = trace.WithHandler(ctx, x.tracer)
		ctx = x.tracer.StartUtterance(ctx, id)
		defer func() {
			x.tracer.EndUtterance(ctx, utterance, nil)
			if err := x.tracer.Finish(ctx); err != nil {
				logger.Warn("failed to save trace", "error", err)
			}
		}()
		x.tracer.AddEvent(ctx, trace.EventKindGate, map[string]any{
			"tier":       d.Tier.String(),
			"confidence": d.Confidence,
		})
	}

	logger.Info("utterance accepted", "text", d.Transcript, "confidence", d.Confidence, "tier", d.Tier.String())

	if d.Tier.NeedsAcknowledgment() {
		speak(ctx, x.speaker, acknowledgment(d.Transcript))
	}

	resp, err := x.planner.Plan(ctx, d.Transcript)
	if err != nil {
		logger.Warn("no actionable plan", "error", err)
		speak(ctx, x.speaker, MessagePlanningError)
		utterance.Outcome = "planning_failed"
		return
	}

	speak(ctx, x.speaker, resp.Speech)

	if resp.Plan.IsEmpty() {
		utterance.Outcome = "responded"
		return
	}

	result := x.executor.Execute(ctx, d.Transcript, resp.Plan)
	utterance.Outcome = string(result.Outcome)
}
