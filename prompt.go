package hark

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
)

//go:embed templates/agent_prompt.md
var agentPromptTemplate string

//go:embed templates/repair_prompt.md
var repairPromptTemplate string

//go:embed templates/synthesize_prompt.md
var synthesizePromptTemplate string

var (
	agentTmpl      = template.Must(template.New("agent").Parse(agentPromptTemplate))
	repairTmpl     = template.Must(template.New("repair").Parse(repairPromptTemplate))
	synthesizeTmpl = template.Must(template.New("synthesize").Parse(synthesizePromptTemplate))
)

// synthesizeSystemPrompt is the system instruction of the summary request.
const synthesizeSystemPrompt = "You are Jarvis. Summarize the information helpfully."

type agentTemplateData struct {
	Tools []toolPromptInfo
}

type toolPromptInfo struct {
	Signature   string
	Description string
}

type repairTemplateData struct {
	Goal       string
	FailedStep int
	History    string
}

type synthesizeTemplateData struct {
	Goal         string
	Observations string
}

func render(tmpl *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", goerr.Wrap(err, "failed to render prompt", goerr.V("template", tmpl.Name()))
	}
	return b.String(), nil
}

// buildAgentPrompt renders the planning system instruction with one entry per registered tool.
func buildAgentPrompt(specs []ToolSpec) (string, error) {
	data := agentTemplateData{Tools: make([]toolPromptInfo, len(specs))}
	for i, spec := range specs {
		data.Tools[i] = toolPromptInfo{
			Signature:   toolSignature(spec),
			Description: spec.Description,
		}
	}
	return render(agentTmpl, data)
}

// toolSignature renders a spec as name(arg: type, opt?: type).
func toolSignature(spec ToolSpec) string {
	required := make(map[string]bool, len(spec.Required))
	for _, r := range spec.Required {
		required[r] = true
	}

	names := make([]string, 0, len(spec.Parameters))
	for name := range spec.Parameters {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})

	args := make([]string, len(names))
	for i, name := range names {
		p := spec.Parameters[name]
		typ := string(p.Type)
		if p.Type == TypeArray && p.Items != nil {
			typ = fmt.Sprintf("list[%s]", p.Items.Type)
		}
		opt := ""
		if !required[name] {
			opt = "?"
		}
		args[i] = fmt.Sprintf("%s%s: %s", name, opt, typ)
	}

	return fmt.Sprintf("%s(%s)", spec.Name, strings.Join(args, ", "))
}

// buildRepairPrompt renders the repair request. failedStep is 1-based.
func buildRepairPrompt(goal string, failedStep int, history []HistoryEntry) (string, error) {
	raw, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal execution history")
	}
	return render(repairTmpl, repairTemplateData{
		Goal:       goal,
		FailedStep: failedStep,
		History:    string(raw),
	})
}

func buildSynthesizePrompt(goal string, observations []Observation) (string, error) {
	lines := make([]string, len(observations))
	for i, o := range observations {
		lines[i] = o.String()
	}
	return render(synthesizeTmpl, synthesizeTemplateData{
		Goal:         goal,
		Observations: strings.Join(lines, "\n"),
	})
}
