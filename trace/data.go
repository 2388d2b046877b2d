package trace

// UtteranceData holds the gate result of the utterance that opened the trace.
type UtteranceData struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Tier       string  `json:"tier"`
	Outcome    string  `json:"outcome,omitempty"`
}

// LLMCallData holds data specific to an LLM call span.
type LLMCallData struct {
	Purpose      string `json:"purpose"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	Model        string `json:"model,omitempty"`

	SystemPrompt string `json:"system_prompt,omitempty"`
	Prompt       string `json:"prompt"`
	Response     string `json:"response,omitempty"`
}

// ToolExecData holds data specific to a tool execution span.
type ToolExecData struct {
	ToolName string         `json:"tool_name"`
	Args     map[string]any `json:"args"`
	Result   any            `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// EventData holds data specific to an event span, such as a repair or a spoken notice.
type EventData struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

// Event kinds emitted while an utterance is handled.
const (
	EventKindPlan     = "plan"
	EventKindRepair   = "repair"
	EventKindStepFail = "step_failed"
	EventKindSpeak    = "speak"
	EventKindOutcome  = "outcome"
	EventKindGate     = "gate"
)
