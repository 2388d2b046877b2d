package otel

import "go.opentelemetry.io/otel/attribute"

func utteranceIDAttr(id string) attribute.KeyValue {
	return attribute.String("utterance.id", id)
}

func utteranceConfidenceAttr(c float64) attribute.KeyValue {
	return attribute.Float64("utterance.confidence", c)
}

func utteranceTierAttr(tier string) attribute.KeyValue {
	return attribute.String("utterance.tier", tier)
}

func utteranceOutcomeAttr(outcome string) attribute.KeyValue {
	return attribute.String("utterance.outcome", outcome)
}

func llmPurposeAttr(purpose string) attribute.KeyValue {
	return attribute.String("llm.purpose", purpose)
}

func llmModelAttr(model string) attribute.KeyValue {
	return attribute.String("llm.model", model)
}

func llmInputTokensAttr(tokens int) attribute.KeyValue {
	return attribute.Int("llm.input_tokens", tokens)
}

func llmOutputTokensAttr(tokens int) attribute.KeyValue {
	return attribute.Int("llm.output_tokens", tokens)
}

func toolNameAttr(name string) attribute.KeyValue {
	return attribute.String("tool.name", name)
}

func toolArgsAttr(args string) attribute.KeyValue {
	return attribute.String("tool.args", args)
}

func eventDataAttr(data string) attribute.KeyValue {
	return attribute.String("event.data", data)
}
