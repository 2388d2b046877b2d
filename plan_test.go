package hark_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hark"
)

func TestParsePlanResponse(t *testing.T) {
	t.Run("act with steps", func(t *testing.T) {
		resp, err := hark.ParsePlanResponse(`{
			"intent": "act",
			"speech": "Setting the volume.",
			"plan": [
				{"tool": "set_volume", "args": {"level": 40}, "description": "Set volume"},
				{"tool": "get_time", "args": null}
			],
			"confidence": 0.9
		}`)
		gt.NoError(t, err)
		gt.Equal(t, resp.Intent, hark.IntentAct)
		gt.Equal(t, resp.Speech, "Setting the volume.")
		gt.Equal(t, resp.Confidence, 0.9)
		gt.Equal(t, resp.Plan.Len(), 2)

		first := resp.Plan.Step(0)
		gt.Equal(t, first.Tool, "set_volume")
		gt.Equal(t, first.Label(), "Set volume")
		gt.Equal[any](t, first.Args["level"], int64(40))

		second := resp.Plan.Step(1)
		gt.Value(t, second.Args).NotNil()
		gt.Equal(t, len(second.Args), 0)
		gt.Equal(t, second.Label(), "get_time")
	})

	t.Run("null plan and null speech", func(t *testing.T) {
		resp, err := hark.ParsePlanResponse(`{"intent": "respond", "speech": null, "plan": null}`)
		gt.NoError(t, err)
		gt.Equal(t, resp.Intent, hark.IntentRespond)
		gt.Equal(t, resp.Speech, "")
		gt.Nil(t, resp.Plan)
		gt.True(t, resp.Plan.IsEmpty())
	})

	t.Run("fractional and nested numbers", func(t *testing.T) {
		resp, err := hark.ParsePlanResponse(`{"intent": "act", "plan": [
			{"tool": "hotkey", "args": {"keys": ["ctrl", "c"], "weight": 1.5, "nested": {"n": 3}}}
		]}`)
		gt.NoError(t, err)
		args := resp.Plan.Step(0).Args
		gt.Equal[any](t, args["weight"], 1.5)
		gt.Equal[any](t, args["keys"], []any{"ctrl", "c"})
		gt.Equal[any](t, args["nested"], map[string]any{"n": int64(3)})
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		_, err := hark.ParsePlanResponse("\n  {\"intent\": \"respond\", \"speech\": \"Hi\"}  \n")
		gt.NoError(t, err)
	})

	errCases := map[string]struct {
		input string
		want  error
	}{
		"empty":              {input: "", want: hark.ErrEmptyResponse},
		"blank":              {input: "   \n", want: hark.ErrEmptyResponse},
		"plain text":         {input: "Sure! I will open it.", want: hark.ErrPlanSchema},
		"markdown fence":     {input: "```json\n{\"intent\": \"act\"}\n```", want: hark.ErrPlanSchema},
		"missing intent":     {input: `{"speech": "hi"}`, want: hark.ErrPlanSchema},
		"array root":         {input: `[]`, want: hark.ErrPlanSchema},
		"step without tool":  {input: `{"intent": "act", "plan": [{"args": {}}]}`, want: hark.ErrPlanSchema},
		"empty tool name":    {input: `{"intent": "act", "plan": [{"tool": ""}]}`, want: hark.ErrPlanSchema},
		"args not an object": {input: `{"intent": "act", "plan": [{"tool": "mute", "args": [1]}]}`, want: hark.ErrPlanSchema},
		"plan not an array":  {input: `{"intent": "act", "plan": {"tool": "mute"}}`, want: hark.ErrPlanSchema},
		"confidence string":  {input: `{"intent": "act", "confidence": "high"}`, want: hark.ErrPlanSchema},
	}
	for name, tc := range errCases {
		t.Run(name, func(t *testing.T) {
			resp, err := hark.ParsePlanResponse(tc.input)
			gt.Nil(t, resp)
			gt.True(t, errors.Is(err, tc.want))
		})
	}
}

func TestPlanIsImmutable(t *testing.T) {
	args := map[string]any{"app_name": "editor"}
	plan := hark.NewPlan(hark.Step{Tool: "open_app", Args: args})

	args["app_name"] = "code"
	gt.Equal[any](t, plan.Step(0).Args["app_name"], "editor")

	steps := plan.Steps()
	steps[0] = hark.Step{Tool: "mute"}
	gt.Equal(t, plan.Step(0).Tool, "open_app")
}

func TestNilPlan(t *testing.T) {
	var plan *hark.Plan
	gt.Equal(t, plan.Len(), 0)
	gt.True(t, plan.IsEmpty())
	gt.A(t, plan.Steps()).Length(0)

	raw, err := json.Marshal(plan)
	gt.NoError(t, err)
	gt.Equal(t, string(raw), "null")

	raw, err = json.Marshal(hark.NewPlan())
	gt.NoError(t, err)
	gt.Equal(t, string(raw), "[]")
}

func TestStepEqual(t *testing.T) {
	a := hark.Step{Tool: "open_app", Args: map[string]any{"app_name": "editor"}, Description: "Open"}

	gt.True(t, a.Equal(hark.Step{Tool: "open_app", Args: map[string]any{"app_name": "editor"}}))
	gt.False(t, a.Equal(hark.Step{Tool: "open_app", Args: map[string]any{"app_name": "code"}}))
	gt.False(t, a.Equal(hark.Step{Tool: "open_url", Args: map[string]any{"app_name": "editor"}}))
	gt.True(t, hark.Step{Tool: "mute"}.Equal(hark.Step{Tool: "mute", Args: map[string]any{}}))
	gt.True(t, hark.Step{Tool: "set_volume", Args: map[string]any{"level": int64(40)}}.
		Equal(hark.Step{Tool: "set_volume", Args: map[string]any{"level": 40.0}}))
}
