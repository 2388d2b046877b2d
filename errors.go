package hark

import "errors"

var (
	// ErrInvalidTool is returned when a tool specification is malformed.
	ErrInvalidTool = errors.New("invalid tool specification")

	// ErrInvalidParameter is returned when a parameter specification or a tool argument is malformed.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrToolNameConflict is returned when two tools are registered under the same name.
	ErrToolNameConflict = errors.New("tool name conflict")

	// ErrToolNotFound is the error recorded in a ToolResult when the requested tool is not registered.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolFailed is the error recorded in a ToolResult when a tool reports failure by returning false.
	ErrToolFailed = errors.New("tool returned failure")

	// ErrLLMTransport wraps network, process and non-2xx failures of the language model service.
	ErrLLMTransport = errors.New("language model transport failure")

	// ErrEmptyResponse is returned when the language model service answered with no text.
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrPlanSchema is returned when the planning response does not match the plan schema.
	ErrPlanSchema = errors.New("plan response does not match schema")

	// ErrCaptureTimeout is returned by a Recorder when no speech started before the capture timeout.
	ErrCaptureTimeout = errors.New("no speech captured before timeout")
)
