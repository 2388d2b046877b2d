package hark

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Planner turns user text into a structured plan with one language model request. It never
// retries: transport and schema failures are returned to the caller, which degrades to an
// apology.
type Planner struct {
	client       LLMClient
	systemPrompt string
	timeout      time.Duration
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithPlannerTimeout overrides DefaultRequestTimeout for planning and repair requests.
func WithPlannerTimeout(d time.Duration) PlannerOption {
	return func(p *Planner) {
		p.timeout = d
	}
}

// NewPlanner creates a Planner whose system instruction describes the tools of the registry.
func NewPlanner(client LLMClient, registry *Registry, opts ...PlannerOption) (*Planner, error) {
	if client == nil {
		return nil, goerr.New("LLM client is required")
	}
	if registry == nil {
		return nil, goerr.New("tool registry is required")
	}

	systemPrompt, err := buildAgentPrompt(registry.Specs())
	if err != nil {
		return nil, err
	}

	p := &Planner{
		client:       client,
		systemPrompt: systemPrompt,
		timeout:      DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SystemPrompt returns the planning system instruction.
func (x *Planner) SystemPrompt() string {
	return x.systemPrompt
}

// Plan asks the planning service what to say and do for the user text.
func (x *Planner) Plan(ctx context.Context, text string) (*PlanResponse, error) {
	resp, err := generate(ctx, x.client, x.timeout, PurposePlan, &LLMRequest{
		SystemPrompt: x.systemPrompt,
		Prompt:       text,
		ContentType:  ContentTypeJSON,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "planning request failed")
	}

	planResp, err := ParsePlanResponse(resp.Text)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("plan received",
		"intent", planResp.Intent,
		"speech", planResp.Speech,
		"steps", planResp.Plan.Len(),
		"confidence", planResp.Confidence,
	)
	return planResp, nil
}

// Repair asks for a new plan after the step at failedStep (1-based) failed. The request carries
// the original goal and the serialized history of the failed pass. A nil Plan means the service
// declared the problem unrepairable.
func (x *Planner) Repair(ctx context.Context, goal string, failedStep int, history []HistoryEntry) (*Plan, error) {
	prompt, err := buildRepairPrompt(goal, failedStep, history)
	if err != nil {
		return nil, err
	}

	resp, err := generate(ctx, x.client, x.timeout, PurposeRepair, &LLMRequest{
		SystemPrompt: x.systemPrompt,
		Prompt:       prompt,
		ContentType:  ContentTypeJSON,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "repair request failed", goerr.V("failed_step", failedStep))
	}

	planResp, err := ParsePlanResponse(resp.Text)
	if err != nil {
		return nil, err
	}

	return planResp.Plan, nil
}
