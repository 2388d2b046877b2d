package hark

import (
	"github.com/m-mizutani/goerr/v2"
)

// Registry is the static lookup table from tool names to capabilities. It is built once at
// startup and never mutated afterwards.
type Registry struct {
	tools map[ToolName]Tool
}

// NewRegistry builds a registry from the given tools. Every tool must carry a valid spec whose
// name belongs to the tool enumeration, and names must be unique.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[ToolName]Tool, len(tools)),
	}

	for _, tool := range tools {
		spec := tool.Spec()
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.tools[spec.Name]; ok {
			return nil, goerr.Wrap(ErrToolNameConflict, "tool is registered twice", goerr.V("tool_name", spec.Name))
		}
		r.tools[spec.Name] = tool
	}

	return r, nil
}

// Lookup returns the tool registered for the name. The name comes from planner output, so it
// is an arbitrary string until it is found here.
func (r *Registry) Lookup(name string) (Tool, bool) {
	tool, ok := r.tools[ToolName(name)]
	return tool, ok
}

// Specs returns specs of registered tools in enumeration order.
func (r *Registry) Specs() []ToolSpec {
	specs := make([]ToolSpec, 0, len(r.tools))
	for _, name := range AllToolNames() {
		if tool, ok := r.tools[name]; ok {
			specs = append(specs, tool.Spec())
		}
	}
	return specs
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}
