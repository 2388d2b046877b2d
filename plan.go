package hark

import (
	"encoding/json"
	"slices"
)

// Intent is the planner's classification of the user request.
type Intent string

const (
	IntentRespond       Intent = "respond"
	IntentAct           Intent = "act"
	IntentRespondAndAct Intent = "respond_and_act"
	IntentError         Intent = "error"
)

// Step is one tool invocation of a Plan. It is never mutated after creation.
type Step struct {
	Tool        string         `json:"tool"`
	Args        map[string]any `json:"args"`
	Description string         `json:"description,omitempty"`
}

// Label returns the human-readable description, falling back to the tool name.
func (x Step) Label() string {
	if x.Description != "" {
		return x.Description
	}
	return x.Tool
}

// Equal reports whether two steps call the same tool with the same arguments. Descriptions are
// ignored.
func (x Step) Equal(other Step) bool {
	if x.Tool != other.Tool {
		return false
	}
	a, errA := json.Marshal(normalizeArgs(x.Args))
	b, errB := json.Marshal(normalizeArgs(other.Args))
	if errA != nil || errB != nil {
		return false
	}
	return string(a) == string(b)
}

func normalizeArgs(args map[string]any) map[string]any {
	if args == nil {
		return map[string]any{}
	}
	return args
}

// Plan is an ordered sequence of steps. A Plan is immutable: repair produces a new Plan.
// A Plan with zero steps is valid.
type Plan struct {
	steps []Step
}

// NewPlan creates a Plan holding a copy of the steps. Missing argument maps become empty maps.
func NewPlan(steps ...Step) *Plan {
	copied := make([]Step, len(steps))
	for i, s := range steps {
		copied[i] = Step{
			Tool:        s.Tool,
			Args:        cloneArgs(s.Args),
			Description: s.Description,
		}
	}
	return &Plan{steps: copied}
}

func cloneArgs(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}

// Steps returns a copy of the steps.
func (x *Plan) Steps() []Step {
	if x == nil {
		return nil
	}
	return slices.Clone(x.steps)
}

// Len returns the number of steps. A nil Plan has none.
func (x *Plan) Len() int {
	if x == nil {
		return 0
	}
	return len(x.steps)
}

// IsEmpty reports whether the plan has no steps.
func (x *Plan) IsEmpty() bool {
	return x.Len() == 0
}

// Step returns the i-th step (0-based).
func (x *Plan) Step(i int) Step {
	return x.steps[i]
}

func (x *Plan) MarshalJSON() ([]byte, error) {
	if x == nil {
		return []byte("null"), nil
	}
	steps := x.steps
	if steps == nil {
		steps = []Step{}
	}
	return json.Marshal(steps)
}

// PlanResponse is the structured answer of the planning service. Plan is nil when the service
// decided no action is needed.
type PlanResponse struct {
	Intent     Intent
	Speech     string
	Plan       *Plan
	Confidence float64
}

type rawPlanResponse struct {
	Intent     Intent   `json:"intent"`
	Speech     *string  `json:"speech"`
	Plan       []Step   `json:"plan"`
	Confidence *float64 `json:"confidence"`
}

func (x rawPlanResponse) toPlanResponse() *PlanResponse {
	resp := &PlanResponse{Intent: x.Intent}
	if x.Speech != nil {
		resp.Speech = *x.Speech
	}
	if x.Confidence != nil {
		resp.Confidence = *x.Confidence
	}
	if x.Plan != nil {
		resp.Plan = NewPlan(x.Plan...)
	}
	return resp
}
