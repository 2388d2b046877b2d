// Package hark is the orchestration core of a voice-driven assistant. It gates transcriptions
// by acoustic confidence, asks a language model for a structured plan, executes the plan
// against a closed set of tools with bounded automatic repair, and speaks the result.
//
// Speech, language model backends and tools are collaborators behind small interfaces; their
// adapters live in sub-packages.
package hark

//go:generate go tool moq -out mock/mock_gen.go -pkg mock . LLMClient Tool Speaker Recorder Transcriber WakeDetector UtterancePlanner PlanRunner
