package hark

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/plan_response.json
var planResponseSchemaJSON string

const planResponseSchemaURL = "hark://plan_response.json"

var planResponseSchema = mustCompileSchema(planResponseSchemaURL, planResponseSchemaJSON)

func mustCompileSchema(url, src string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		panic("invalid embedded schema " + url + ": " + err.Error())
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		panic("failed to add schema resource " + url + ": " + err.Error())
	}
	sch, err := c.Compile(url)
	if err != nil {
		panic("failed to compile schema " + url + ": " + err.Error())
	}
	return sch
}

// ParsePlanResponse validates raw planning service output against the plan response schema and
// decodes it. Any failure is wrapped with ErrPlanSchema.
func ParsePlanResponse(data string) (*PlanResponse, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, goerr.Wrap(ErrEmptyResponse, "plan response is empty")
	}

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(trimmed))
	if err != nil {
		return nil, goerr.Wrap(ErrPlanSchema, "plan response is not JSON",
			goerr.V("error", err.Error()),
			goerr.V("response", trimmed))
	}
	if err := planResponseSchema.Validate(inst); err != nil {
		return nil, goerr.Wrap(ErrPlanSchema, "plan response does not match schema",
			goerr.V("error", err.Error()),
			goerr.V("response", trimmed))
	}

	var raw rawPlanResponse
	dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, goerr.Wrap(ErrPlanSchema, "failed to decode plan response",
			goerr.V("error", err.Error()),
			goerr.V("response", trimmed))
	}
	for i := range raw.Plan {
		raw.Plan[i].Args = convertNumbers(raw.Plan[i].Args)
	}

	return raw.toPlanResponse(), nil
}

// convertNumbers turns json.Number values into int64 when integral and float64 otherwise, so
// tool argument validation sees the same types as for hand-built steps.
func convertNumbers(args map[string]any) map[string]any {
	for k, v := range args {
		args[k] = convertNumber(v)
	}
	return args
}

func convertNumber(v any) any {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case []any:
		for i := range n {
			n[i] = convertNumber(n[i])
		}
		return n
	case map[string]any:
		return convertNumbers(n)
	}
	return v
}
