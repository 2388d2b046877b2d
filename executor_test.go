package hark_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/internal"
	"github.com/m-mizutani/hark/mock"
	"github.com/m-mizutani/hark/trace"
)

const timeString = "Monday, January 05, 2026 at 03:04 PM"

// testAssistant wires a real planner, dispatcher and synthesizer around scripted language
// model answers.
type testAssistant struct {
	client   *mock.LLMClientMock
	planner  *hark.Planner
	executor *hark.PlanExecutor
	speech   *speechLog
}

func newTestAssistant(t *testing.T, responses []string, tools []hark.Tool, opts ...hark.ExecutorOption) *testAssistant {
	t.Helper()
	client := scriptedLLM(responses...)
	reg, err := hark.NewRegistry(tools...)
	gt.NoError(t, err)

	planner, err := hark.NewPlanner(client, reg)
	gt.NoError(t, err)

	speech := &speechLog{}
	opts = append([]hark.ExecutorOption{hark.WithPacing(0)}, opts...)
	executor := hark.NewPlanExecutor(
		hark.NewToolDispatcher(reg),
		planner,
		hark.NewResponseSynthesizer(client),
		speech,
		opts...,
	)

	return &testAssistant{
		client:   client,
		planner:  planner,
		executor: executor,
		speech:   speech,
	}
}

// run plans the text and executes the plan like the orchestrator does.
func (x *testAssistant) run(t *testing.T, ctx context.Context, text string) *hark.ExecutionResult {
	t.Helper()
	resp, err := x.planner.Plan(ctx, text)
	gt.NoError(t, err)
	return x.executor.Execute(ctx, text, resp.Plan)
}

func timeTool() *mock.ToolMock {
	return newTool(hark.ToolGetTime, func(context.Context, map[string]any) (any, error) {
		return timeString, nil
	})
}

// appTool only knows how to launch "code".
func appTool() *mock.ToolMock {
	return newToolWithParams(hark.ToolOpenApp, appNameParams, []string{"app_name"},
		func(_ context.Context, args map[string]any) (any, error) {
			name, _ := args["app_name"].(string)
			if name != "code" {
				return nil, goerr.New("application not found: " + name)
			}
			return true, nil
		})
}

func TestExecuteDataQuery(t *testing.T) {
	a := newTestAssistant(t, []string{
		`{"intent": "act", "speech": null, "plan": [{"tool": "get_time", "args": {}, "description": "Check the clock"}], "confidence": 0.95}`,
		"It's 3:04 PM on Monday.",
	}, []hark.Tool{timeTool(), appTool()})

	result := a.run(t, internal.TestContext(), "what time is it")

	gt.Equal(t, result.Outcome, hark.OutcomeDone)
	gt.Equal(t, result.Attempts, 1)
	gt.A(t, result.Observations).Length(1)
	gt.Equal(t, result.Observations[0].Tool, hark.ToolGetTime)
	gt.Equal(t, result.Observations[0].Output, timeString)
	gt.Equal(t, a.speech.Lines(), []string{"It's 3:04 PM on Monday."})

	calls := a.client.GenerateCalls()
	gt.A(t, calls).Length(2)
	gt.Equal(t, calls[1].Req.ContentType, hark.ContentTypeText)
	gt.S(t, calls[1].Req.Prompt).Contains("Tool 'get_time' output: " + timeString)
}

func TestExecuteRepairsFailedStep(t *testing.T) {
	apps := appTool()
	a := newTestAssistant(t, []string{
		`{"intent": "act", "speech": "Opening the editor.", "plan": [{"tool": "open_app", "args": {"app_name": "editor"}, "description": "Open editor"}], "confidence": 0.9}`,
		`{"intent": "act", "speech": null, "plan": [{"tool": "open_app", "args": {"app_name": "code"}, "description": "Open VS Code"}]}`,
	}, []hark.Tool{timeTool(), apps})

	result := a.run(t, internal.TestContext(), "open the editor")

	gt.Equal(t, result.Outcome, hark.OutcomeDone)
	gt.Equal(t, result.Attempts, 2)
	gt.A(t, result.Observations).Length(0)
	gt.Equal(t, a.speech.Lines(), []string{
		"I ran into an issue with Open editor.",
		hark.MessageAdapting,
		hark.MessageDone,
	})

	// the last pass only holds the repaired step
	gt.A(t, result.History).Length(1)
	gt.Equal[any](t, result.History[0].Step.Args["app_name"], "code")

	calls := a.client.GenerateCalls()
	gt.A(t, calls).Length(2)
	gt.S(t, calls[1].Req.Prompt).Contains("The plan failed at step 1.")
	gt.S(t, calls[1].Req.Prompt).Contains("application not found: editor")
	gt.A(t, apps.RunCalls()).Length(2)
}

func TestExecuteStuckAfterRepairCeiling(t *testing.T) {
	a := newTestAssistant(t, []string{
		`{"intent": "act", "plan": [{"tool": "open_app", "args": {"app_name": "editor"}}]}`,
		`{"intent": "act", "plan": [{"tool": "open_app", "args": {"app_name": "text editor"}}]}`,
		`{"intent": "act", "plan": [{"tool": "open_app", "args": {"app_name": "gedit"}}]}`,
		`{"intent": "act", "plan": [{"tool": "open_app", "args": {"app_name": "kate"}}]}`,
		`{"intent": "act", "plan": [{"tool": "open_app", "args": {"app_name": "never used"}}]}`,
	}, []hark.Tool{appTool()})

	result := a.run(t, internal.TestContext(), "open the editor")

	gt.Equal(t, result.Outcome, hark.OutcomeStuck)
	gt.Equal(t, result.Attempts, 3)
	// one planning call and three repair calls, nothing after the ceiling
	gt.A(t, a.client.GenerateCalls()).Length(4)

	lines := a.speech.Lines()
	gt.Equal(t, lines[len(lines)-1], hark.MessageStuck)
	gt.Equal(t, lines, []string{
		"I ran into an issue with open_app.", hark.MessageAdapting,
		"I ran into an issue with open_app.", hark.MessageAdapting,
		"I ran into an issue with open_app.", hark.MessageAdapting,
		hark.MessageStuck,
	})
}

func TestExecuteHaltsAtFirstFailure(t *testing.T) {
	mute := newTool(hark.ToolMute, noop)
	a := newTestAssistant(t, []string{
		`{"intent": "error", "plan": null}`,
	}, []hark.Tool{timeTool(), appTool(), mute})

	plan := hark.NewPlan(
		hark.Step{Tool: "get_time"},
		hark.Step{Tool: "open_app", Args: map[string]any{"app_name": "editor"}},
		hark.Step{Tool: "mute"},
	)
	result := a.executor.Execute(internal.TestContext(), "open the editor and mute", plan)

	gt.Equal(t, result.Outcome, hark.OutcomeCouldNotRepair)
	gt.A(t, result.History).Length(2)
	gt.True(t, result.History[0].Result.OK())
	gt.False(t, result.History[1].Result.OK())
	gt.A(t, mute.RunCalls()).Length(0)
	gt.Equal(t, a.speech.Lines(), []string{
		"I ran into an issue with open_app.",
		hark.MessageCouldNotRepair,
	})
	// the observation of the first step is kept, but nothing is summarized
	gt.A(t, result.Observations).Length(1)
}

func TestExecuteRepairFailureIsUnrepairable(t *testing.T) {
	// the script has no answer for the repair request
	a := newTestAssistant(t, nil, []hark.Tool{appTool()})

	plan := hark.NewPlan(hark.Step{Tool: "open_app", Args: map[string]any{"app_name": "editor"}})
	result := a.executor.Execute(internal.TestContext(), "open the editor", plan)

	gt.Equal(t, result.Outcome, hark.OutcomeCouldNotRepair)
	gt.A(t, a.client.GenerateCalls()).Length(1)
}

func TestExecuteEmptyPlan(t *testing.T) {
	a := newTestAssistant(t, nil, []hark.Tool{appTool()})

	result := a.executor.Execute(internal.TestContext(), "thanks", hark.NewPlan())
	gt.Equal(t, result.Outcome, hark.OutcomeDone)
	gt.Equal(t, a.speech.Lines(), []string{hark.MessageDone})
	gt.A(t, a.client.GenerateCalls()).Length(0)
}

func TestExecuteObservesDataProducingToolsOnly(t *testing.T) {
	a := newTestAssistant(t, []string{"It's 3:04 PM and VS Code is open."}, []hark.Tool{timeTool(), appTool()})

	plan := hark.NewPlan(
		hark.Step{Tool: "open_app", Args: map[string]any{"app_name": "code"}},
		hark.Step{Tool: "get_time"},
	)
	result := a.executor.Execute(internal.TestContext(), "open code and tell me the time", plan)

	gt.Equal(t, result.Outcome, hark.OutcomeDone)
	gt.A(t, result.Observations).Length(1)
	gt.Equal(t, result.Observations[0].Tool, hark.ToolGetTime)
	gt.Equal(t, a.speech.Lines(), []string{"It's 3:04 PM and VS Code is open."})
}

func TestExecuteObservationsSpanRepairPasses(t *testing.T) {
	a := newTestAssistant(t, []string{
		`{"intent": "act", "plan": [{"tool": "open_app", "args": {"app_name": "code"}}]}`,
		"It's 3:04 PM.",
	}, []hark.Tool{timeTool(), appTool()})

	plan := hark.NewPlan(
		hark.Step{Tool: "get_time"},
		hark.Step{Tool: "open_app", Args: map[string]any{"app_name": "editor"}},
	)
	result := a.executor.Execute(internal.TestContext(), "tell me the time and open the editor", plan)

	gt.Equal(t, result.Outcome, hark.OutcomeDone)
	gt.A(t, result.Observations).Length(1)
	gt.Equal(t, a.speech.Lines()[len(a.speech.Lines())-1], "It's 3:04 PM.")
}

func TestExecuteRepeatedStep(t *testing.T) {
	repeat := `{"intent": "act", "plan": [{"tool": "open_app", "args": {"app_name": "editor"}}]}`
	plan := hark.NewPlan(hark.Step{Tool: "open_app", Args: map[string]any{"app_name": "editor"}})

	t.Run("advisory by default", func(t *testing.T) {
		apps := appTool()
		a := newTestAssistant(t, []string{repeat, repeat, repeat}, []hark.Tool{apps})
		result := a.executor.Execute(internal.TestContext(), "open the editor", plan)
		gt.Equal(t, result.Outcome, hark.OutcomeStuck)
		gt.A(t, apps.RunCalls()).Length(3)
	})

	t.Run("rejected when enabled", func(t *testing.T) {
		apps := appTool()
		a := newTestAssistant(t, []string{repeat}, []hark.Tool{apps}, hark.WithRejectRepeatedStep(true))
		result := a.executor.Execute(internal.TestContext(), "open the editor", plan)
		gt.Equal(t, result.Outcome, hark.OutcomeCouldNotRepair)
		gt.A(t, apps.RunCalls()).Length(1)
		gt.Equal(t, a.speech.Lines()[len(a.speech.Lines())-1], hark.MessageCouldNotRepair)
	})
}

func TestExecuteMaxRepairs(t *testing.T) {
	a := newTestAssistant(t, []string{
		`{"intent": "act", "plan": [{"tool": "open_app", "args": {"app_name": "gedit"}}]}`,
	}, []hark.Tool{appTool()}, hark.WithMaxRepairs(0))

	plan := hark.NewPlan(hark.Step{Tool: "open_app", Args: map[string]any{"app_name": "editor"}})
	result := a.executor.Execute(internal.TestContext(), "open the editor", plan)

	gt.Equal(t, result.Outcome, hark.OutcomeStuck)
	gt.Equal(t, result.Attempts, 1)
	gt.A(t, a.client.GenerateCalls()).Length(1)
}

func TestExecutePacingStopsOnCancel(t *testing.T) {
	a := newTestAssistant(t, nil, []hark.Tool{newTool(hark.ToolMute, noop)}, hark.WithPacing(time.Hour))

	ctx, cancel := context.WithCancel(internal.TestContext())
	cancel()

	started := time.Now()
	result := a.executor.Execute(ctx, "mute", hark.NewPlan(hark.Step{Tool: "mute"}))
	gt.Equal(t, result.Outcome, hark.OutcomeDone)
	gt.True(t, time.Since(started) < time.Minute)
}

func TestExecuteRecordsEvents(t *testing.T) {
	a := newTestAssistant(t, []string{
		`{"intent": "act", "plan": [{"tool": "open_app", "args": {"app_name": "code"}}]}`,
	}, []hark.Tool{appTool()})

	rec := trace.New()
	ctx := trace.WithHandler(internal.TestContext(), rec)
	ctx = rec.StartUtterance(ctx, "utt")

	plan := hark.NewPlan(hark.Step{Tool: "open_app", Args: map[string]any{"app_name": "editor"}})
	a.executor.Execute(ctx, "open the editor", plan)

	var kinds []string
	rec.Trace().RootSpan.Walk(func(s *trace.Span) {
		if s.Kind == trace.SpanKindEvent {
			kinds = append(kinds, s.Name)
		}
	})
	gt.A(t, kinds).Has(trace.EventKindRepair)
	gt.A(t, kinds).Has(trace.EventKindStepFail)
	gt.A(t, kinds).Has(trace.EventKindOutcome)
	gt.A(t, kinds).Has(trace.EventKindSpeak)
}
