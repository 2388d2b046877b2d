package claude

import (
	"encoding/json"
	"regexp"
	"strings"
)

var codeBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// extractJSONFromResponse cuts the JSON payload out of a Claude answer, which often wraps it
// in a markdown code block or a sentence. It finds the outermost balanced object or array
// while skipping braces inside string literals. Text without any JSON is returned as is so
// the plan schema check reports it.
func extractJSONFromResponse(text string) string {
	text = strings.TrimSpace(text)

	matches := codeBlockRegex.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// Try to find JSON object or array boundaries
	firstBrace := strings.Index(text, "{")
	firstBracket := strings.Index(text, "[")

	if firstBrace == -1 && firstBracket == -1 {
		return text
	}

	var start int
	var expectedClosing rune
	if firstBracket == -1 || (firstBrace != -1 && firstBrace < firstBracket) {
		start = firstBrace
		expectedClosing = '}'
	} else {
		start = firstBracket
		expectedClosing = ']'
	}

	depth := 0
	inString := false
	i := start

	for i < len(text) {
		char := rune(text[i])

		if inString {
			if char == '\\' {
				i += 2
				continue
			} else if char == '"' {
				inString = false
			}
		} else {
			switch char {
			case '"':
				inString = true
			case '{':
				if expectedClosing == '}' {
					depth++
				}
			case '}':
				if expectedClosing == '}' {
					depth--
					if depth == 0 {
						candidate := text[start : i+1]
						if isLikelyCompleteJSON(candidate) {
							return candidate
						}
					}
				}
			case '[':
				if expectedClosing == ']' {
					depth++
				}
			case ']':
				if expectedClosing == ']' {
					depth--
					if depth == 0 {
						candidate := text[start : i+1]
						if isLikelyCompleteJSON(candidate) {
							return candidate
						}
					}
				}
			}
		}
		i++
	}

	// truncated answer
	if depth > 0 || inString {
		return text
	}

	return text[start:]
}

// isLikelyCompleteJSON reports whether text is delimited like a JSON value and decodes.
func isLikelyCompleteJSON(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return false
	}

	if (text[0] == '{' && text[len(text)-1] == '}') ||
		(text[0] == '[' && text[len(text)-1] == ']') {
		var temp any
		return json.Unmarshal([]byte(text), &temp) == nil
	}

	return false
}
