package hark

var (
	Generate              = generate
	ToolSignature         = toolSignature
	BuildAgentPrompt      = buildAgentPrompt
	BuildRepairPrompt     = buildRepairPrompt
	BuildSynthesizePrompt = buildSynthesizePrompt
)
