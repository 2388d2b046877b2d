package hark

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/hark/metrics"
	"github.com/m-mizutani/hark/trace"
)

const (
	// DefaultMaxRepairs is the repair-attempt ceiling. A pass entered with more attempts than
	// this ends the utterance as stuck.
	DefaultMaxRepairs = 2

	// DefaultPacing is the delay after each successful step.
	DefaultPacing = 500 * time.Millisecond
)

// Messages spoken by the executor.
const (
	MessageDone           = "Done."
	MessageAdapting       = "Adapting my plan."
	MessageCouldNotRepair = "I couldn't figure out how to fix it."
	MessageStuck          = "I am stuck and cannot fix the plan. Please help."
)

func stepFailureMessage(step Step) string {
	return fmt.Sprintf("I ran into an issue with %s.", step.Label())
}

// Outcome is the terminal state of a plan execution.
type Outcome string

const (
	OutcomeDone           Outcome = "done"
	OutcomeCouldNotRepair Outcome = "could_not_repair"
	OutcomeStuck          Outcome = "stuck"
)

// HistoryEntry pairs an attempted step with its result.
type HistoryEntry struct {
	Step   Step        `json:"step"`
	Result *ToolResult `json:"result"`
}

// Observation is the textual output of a successful data-producing step.
type Observation struct {
	Tool   ToolName
	Output string
}

func (x Observation) String() string {
	return fmt.Sprintf("Tool '%s' output: %s", x.Tool, x.Output)
}

// ExecutionState is the state of one execution pass.
type ExecutionState struct {
	Plan *Plan
	// CurrentStep is the 1-based index of the last attempted step, 0 before the first.
	CurrentStep int
	// History is append-only and holds one entry per attempted step.
	History        []HistoryEntry
	RepairAttempts int
}

// ExecutionResult summarizes the execution of one top-level plan and its repairs.
type ExecutionResult struct {
	Outcome Outcome
	// Attempts is the number of passes that ran steps.
	Attempts int
	// History is the history of the last pass.
	History []HistoryEntry
	// Observations are collected across all passes of the utterance.
	Observations []Observation
	// Speech lists everything the executor said, in order.
	Speech []string
}

// StepDispatcher runs one step. *ToolDispatcher implements it.
type StepDispatcher interface {
	Dispatch(ctx context.Context, name string, args map[string]any) *ToolResult
}

// PlanRepairer produces a new plan after a failed step. *Planner implements it.
type PlanRepairer interface {
	Repair(ctx context.Context, goal string, failedStep int, history []HistoryEntry) (*Plan, error)
}

// Synthesizer summarizes observations into speech. *ResponseSynthesizer implements it.
type Synthesizer interface {
	Synthesize(ctx context.Context, goal string, observations []Observation) string
}

// PlanExecutor runs plans step by step and repairs them on failure. The repair recursion of a
// failed step is an explicit loop whose attempt ceiling is checked at loop entry, so at most
// maxRepairs+1 passes and maxRepairs+1 repair requests happen for one utterance.
type PlanExecutor struct {
	dispatcher  StepDispatcher
	repairer    PlanRepairer
	synthesizer Synthesizer
	speaker     Speaker

	maxRepairs         int
	pacing             time.Duration
	rejectRepeatedStep bool
}

// ExecutorOption configures a PlanExecutor.
type ExecutorOption func(*PlanExecutor)

// WithMaxRepairs sets the repair-attempt ceiling.
func WithMaxRepairs(n int) ExecutorOption {
	return func(e *PlanExecutor) {
		e.maxRepairs = n
	}
}

// WithPacing sets the delay after each successful step. Zero disables it.
func WithPacing(d time.Duration) ExecutorOption {
	return func(e *PlanExecutor) {
		e.pacing = d
	}
}

// WithRejectRepeatedStep makes a repaired plan whose first step repeats the failed step with
// the same arguments count as unrepairable.
func WithRejectRepeatedStep(enabled bool) ExecutorOption {
	return func(e *PlanExecutor) {
		e.rejectRepeatedStep = enabled
	}
}

func NewPlanExecutor(dispatcher StepDispatcher, repairer PlanRepairer, synthesizer Synthesizer, speaker Speaker, opts ...ExecutorOption) *PlanExecutor {
	e := &PlanExecutor{
		dispatcher:  dispatcher,
		repairer:    repairer,
		synthesizer: synthesizer,
		speaker:     speaker,
		maxRepairs:  DefaultMaxRepairs,
		pacing:      DefaultPacing,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the plan for the goal until it completes, cannot be repaired, or the repair
// ceiling is exceeded. It never returns an error: every terminal state is an Outcome and the
// user has been told about it through the speaker.
func (x *PlanExecutor) Execute(ctx context.Context, goal string, plan *Plan) *ExecutionResult {
	logger := ctxlog.From(ctx)
	h := trace.HandlerFrom(ctx)

	result := &ExecutionResult{}
	current := plan
	attempts := 0

	for {
		if attempts > x.maxRepairs {
			logger.Warn("repair ceiling exceeded", "attempts", attempts, "max_repairs", x.maxRepairs)
			x.say(ctx, result, MessageStuck)
			return x.finish(ctx, result, OutcomeStuck)
		}

		state := &ExecutionState{
			Plan:           current,
			RepairAttempts: attempts,
		}
		result.Attempts++
		h.AddEvent(ctx, trace.EventKindPlan, map[string]any{
			"attempt": attempts,
			"plan":    current,
		})

		failed, ok := x.runPass(ctx, state, result)
		result.History = state.History
		if ok {
			if len(result.Observations) > 0 {
				x.say(ctx, result, x.synthesizer.Synthesize(ctx, goal, result.Observations))
			} else {
				x.say(ctx, result, MessageDone)
			}
			return x.finish(ctx, result, OutcomeDone)
		}

		x.say(ctx, result, stepFailureMessage(failed))

		metrics.Repairs.Inc()
		h.AddEvent(ctx, trace.EventKindRepair, map[string]any{
			"attempt":     attempts + 1,
			"failed_step": state.CurrentStep,
		})
		repaired, err := x.repairer.Repair(ctx, goal, state.CurrentStep, state.History)
		if err != nil {
			logger.Warn("plan repair failed", "error", err, "attempt", attempts+1)
			repaired = nil
		}

		if x.rejectRepeatedStep && !repaired.IsEmpty() && repaired.Step(0).Equal(failed) {
			logger.Info("repaired plan repeats the failed step", "tool", failed.Tool)
			repaired = nil
		}

		if repaired.IsEmpty() {
			x.say(ctx, result, MessageCouldNotRepair)
			return x.finish(ctx, result, OutcomeCouldNotRepair)
		}

		x.say(ctx, result, MessageAdapting)
		current = repaired
		attempts++
	}
}

// runPass dispatches the steps of state.Plan in order and halts at the first failure. It
// returns the failed step and false, or true if all steps succeeded.
func (x *PlanExecutor) runPass(ctx context.Context, state *ExecutionState, result *ExecutionResult) (Step, bool) {
	logger := ctxlog.From(ctx)
	h := trace.HandlerFrom(ctx)

	for i, step := range state.Plan.Steps() {
		state.CurrentStep = i + 1
		logger.Info("running step",
			"step", state.CurrentStep,
			"tool", step.Tool,
			"description", step.Label(),
			"attempt", state.RepairAttempts,
		)

		toolResult := x.dispatcher.Dispatch(ctx, step.Tool, step.Args)
		state.History = append(state.History, HistoryEntry{Step: step, Result: toolResult})

		if !toolResult.OK() {
			logger.Info("step failed", "step", state.CurrentStep, "tool", step.Tool, "error", toolResult.Error)
			h.AddEvent(ctx, trace.EventKindStepFail, map[string]any{
				"step":  state.CurrentStep,
				"tool":  step.Tool,
				"error": toolResult.Error,
			})
			return step, false
		}

		if name := ToolName(step.Tool); name.IsDataProducing() {
			result.Observations = append(result.Observations, Observation{
				Tool:   name,
				Output: fmt.Sprintf("%v", toolResult.Result),
			})
		}

		x.pace(ctx)
	}

	return Step{}, true
}

func (x *PlanExecutor) pace(ctx context.Context) {
	if x.pacing <= 0 {
		return
	}
	timer := time.NewTimer(x.pacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (x *PlanExecutor) say(ctx context.Context, result *ExecutionResult, text string) {
	result.Speech = append(result.Speech, text)
	speak(ctx, x.speaker, text)
}

func (x *PlanExecutor) finish(ctx context.Context, result *ExecutionResult, outcome Outcome) *ExecutionResult {
	result.Outcome = outcome
	metrics.Outcomes.WithLabelValues(string(outcome)).Inc()
	trace.HandlerFrom(ctx).AddEvent(ctx, trace.EventKindOutcome, map[string]any{
		"outcome":  outcome,
		"attempts": result.Attempts,
	})
	ctxlog.From(ctx).Info("plan finished", "outcome", outcome, "attempts", result.Attempts)
	return result
}

// speak plays the text and logs a failure. Playback failure never aborts the control flow.
func speak(ctx context.Context, speaker Speaker, text string) {
	if text == "" || speaker == nil {
		return
	}
	trace.HandlerFrom(ctx).AddEvent(ctx, trace.EventKindSpeak, text)
	if err := speaker.Speak(ctx, text); err != nil {
		ctxlog.From(ctx).Warn("failed to speak", "error", err, "text", text)
	}
}
