package hark

import (
	"context"
	"fmt"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// ToolName identifies a capability in the tool registry. The set of names is closed: adding a
// capability means adding a constant here and registering an implementation for it.
type ToolName string

const (
	ToolOpenApp        ToolName = "open_app"
	ToolSetVolume      ToolName = "set_volume"
	ToolMute           ToolName = "mute"
	ToolUnmute         ToolName = "unmute"
	ToolListFiles      ToolName = "list_files"
	ToolReadFile       ToolName = "read_file"
	ToolOpenURL        ToolName = "open_url"
	ToolSearchWeb      ToolName = "search_web"
	ToolGetTime        ToolName = "get_time"
	ToolSystemStatus   ToolName = "system_status"
	ToolTypeText       ToolName = "type_text"
	ToolPressKey       ToolName = "press_key"
	ToolHotkey         ToolName = "hotkey"
	ToolStoreMemory    ToolName = "store_memory"
	ToolRetrieveMemory ToolName = "retrieve_memory"
)

// AllToolNames returns every known tool name in prompt order.
func AllToolNames() []ToolName {
	return []ToolName{
		ToolOpenApp,
		ToolSetVolume, ToolMute, ToolUnmute,
		ToolListFiles, ToolReadFile,
		ToolOpenURL, ToolSearchWeb,
		ToolGetTime, ToolSystemStatus,
		ToolTypeText, ToolPressKey, ToolHotkey,
		ToolStoreMemory, ToolRetrieveMemory,
	}
}

// dataProducingTools are the tools whose successful output is kept as an Observation.
var dataProducingTools = map[ToolName]bool{
	ToolSearchWeb:      true,
	ToolReadFile:       true,
	ToolRetrieveMemory: true,
	ToolListFiles:      true,
	ToolSystemStatus:   true,
	ToolGetTime:        true,
}

// IsDataProducing reports whether the output of the tool is retained for response synthesis.
// All other tools are side-effecting actions whose success is sufficient.
func (x ToolName) IsDataProducing() bool {
	return dataProducingTools[x]
}

// IsKnown reports whether the name is part of the tool enumeration.
func (x ToolName) IsKnown() bool {
	for _, name := range AllToolNames() {
		if name == x {
			return true
		}
	}
	return false
}

func (x ToolName) String() string {
	return string(x)
}

// ToolSpec is the specification of a tool.
// It is rendered into the planning instruction and into the MCP tool list.
type ToolSpec struct {
	// Name is the unique identifier for the tool.
	Name ToolName

	// Description is a human-readable description of what the tool does.
	// It should be clear and concise to help the planner choose the right tool.
	Description string

	// Parameters defines the input parameters that the tool accepts.
	Parameters map[string]*Parameter

	// Required is the list of required parameter names.
	Required []string
}

// Validate validates the tool specification.
func (s *ToolSpec) Validate() error {
	eb := goerr.NewBuilder(goerr.V("tool", s.Name))
	if s.Name == "" {
		return eb.Wrap(ErrInvalidTool, "name is required")
	}
	if !s.Name.IsKnown() {
		return eb.Wrap(ErrInvalidTool, "name is not in the tool enumeration")
	}

	for name, param := range s.Parameters {
		if err := param.Validate(); err != nil {
			return eb.Wrap(err, "invalid parameter", goerr.V("parameter", name))
		}
	}

	for _, req := range s.Required {
		if _, ok := s.Parameters[req]; !ok {
			return eb.Wrap(ErrInvalidTool, "required parameter is not defined", goerr.V("parameter", req))
		}
	}

	return nil
}

// ValidateArgs checks that every required argument is present and that the provided
// arguments have the declared types. Unknown arguments are rejected.
func (s *ToolSpec) ValidateArgs(args map[string]any) error {
	eb := goerr.NewBuilder(goerr.V("tool", s.Name))

	for _, req := range s.Required {
		if _, ok := args[req]; !ok {
			return eb.Wrap(ErrInvalidParameter, fmt.Sprintf("missing required argument %q", req))
		}
	}

	for key, value := range args {
		param, ok := s.Parameters[key]
		if !ok {
			return eb.Wrap(ErrInvalidParameter, fmt.Sprintf("unexpected argument %q", key))
		}
		if !param.Type.accepts(value) {
			return eb.Wrap(ErrInvalidParameter, fmt.Sprintf("argument %q must be %s", key, param.Type))
		}
		if n, ok := AsNumber(value); ok {
			if param.Minimum != nil && n < *param.Minimum {
				return eb.Wrap(ErrInvalidParameter, fmt.Sprintf("argument %q must be >= %v", key, *param.Minimum))
			}
			if param.Maximum != nil && n > *param.Maximum {
				return eb.Wrap(ErrInvalidParameter, fmt.Sprintf("argument %q must be <= %v", key, *param.Maximum))
			}
		}
	}

	return nil
}

// ParameterType is the type of a parameter.
type ParameterType string

const (
	TypeString  ParameterType = "string"
	TypeNumber  ParameterType = "number"
	TypeInteger ParameterType = "integer"
	TypeBoolean ParameterType = "boolean"
	TypeArray   ParameterType = "array"
)

// accepts reports whether a decoded JSON value fits the type.
func (x ParameterType) accepts(v any) bool {
	switch x {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		switch v.(type) {
		case float64, float32, int, int64:
			return true
		}
		return false
	case TypeInteger:
		switch n := v.(type) {
		case int, int64:
			return true
		case float64:
			return n == float64(int64(n))
		}
		return false
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeArray:
		switch v.(type) {
		case []any, []string:
			return true
		}
		return false
	}
	return false
}

// AsNumber converts a numeric tool argument to float64. Arguments decoded from planner output
// carry int64 for integral values and float64 otherwise.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Parameter is a parameter of a tool.
type Parameter struct {
	// Type is the type of the parameter.
	Type ParameterType

	// Description is the description of the parameter.
	Description string

	// Items is the element type of an array parameter.
	Items *Parameter

	// Minimum and Maximum define the valid range for number type parameters.
	Minimum *float64
	Maximum *float64

	// Pattern defines a regular expression that a string must match.
	Pattern string

	// Default value for the parameter.
	Default any
}

// Validate validates the parameter.
func (p *Parameter) Validate() error {
	eb := goerr.NewBuilder(goerr.V("parameter", p))

	if p.Type == "" {
		return eb.Wrap(ErrInvalidParameter, "type is required")
	}

	if p.Type == TypeArray {
		if p.Items == nil {
			return eb.Wrap(ErrInvalidParameter, "items is required for array type")
		}
		if err := p.Items.Validate(); err != nil {
			return eb.Wrap(ErrInvalidParameter, "invalid items")
		}
	}

	if p.Type == TypeNumber || p.Type == TypeInteger {
		if p.Minimum != nil && p.Maximum != nil && *p.Minimum > *p.Maximum {
			return eb.Wrap(ErrInvalidParameter, "minimum must be less than or equal to maximum")
		}
	}

	if p.Type == TypeString && p.Pattern != "" {
		if _, err := regexp.Compile(p.Pattern); err != nil {
			return eb.Wrap(ErrInvalidParameter, "invalid pattern", goerr.V("pattern", p.Pattern))
		}
	}

	return nil
}

// Tool is a capability that a plan step can invoke.
type Tool interface {
	// Spec returns the specification of the tool.
	Spec() ToolSpec

	// Run executes the tool. The returned value may be a boolean, a string or any structured
	// value; ToolDispatcher normalizes it. A tool should report failure by returning an error
	// rather than panicking, but a panic is still converted into a failed ToolResult.
	Run(ctx context.Context, args map[string]any) (any, error)
}
