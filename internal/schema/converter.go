// Package schema renders tool parameter definitions as JSON Schema.
package schema

import (
	"sort"

	"github.com/m-mizutani/hark"
)

// ConvertParameterToJSONSchema converts hark.Parameter to JSON Schema map
func ConvertParameterToJSONSchema(param *hark.Parameter) map[string]any {
	schema := map[string]any{
		"type": string(param.Type),
	}

	if param.Description != "" {
		schema["description"] = param.Description
	}

	if param.Type == hark.TypeArray && param.Items != nil {
		schema["items"] = ConvertParameterToJSONSchema(param.Items)
	}

	if param.Minimum != nil {
		schema["minimum"] = *param.Minimum
	}
	if param.Maximum != nil {
		schema["maximum"] = *param.Maximum
	}
	if param.Pattern != "" {
		schema["pattern"] = param.Pattern
	}
	if param.Default != nil {
		schema["default"] = param.Default
	}

	return schema
}

// ToolInputSchema returns the object schema of the tool arguments. Unknown arguments are not
// allowed, matching hark.ToolSpec.ValidateArgs.
func ToolInputSchema(spec hark.ToolSpec) map[string]any {
	props := make(map[string]any, len(spec.Parameters))
	for name, param := range spec.Parameters {
		props[name] = ConvertParameterToJSONSchema(param)
	}

	schema := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}

	if len(spec.Required) > 0 {
		required := append([]string(nil), spec.Required...)
		sort.Strings(required)
		schema["required"] = required
	}

	return schema
}
