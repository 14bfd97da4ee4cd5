package llm

import (
	"regexp"
	"strings"
)

var (
	// fenceMarker matches ```json and bare ``` markers anywhere in a response
	fenceMarker = regexp.MustCompile("(?i)```json|```")
	// fencedObject matches an object inside a code fence
	fencedObject = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(\\{.*\\})\\s*```")
	// bareObject matches the outermost braces, greedily
	bareObject = regexp.MustCompile(`(?s)\{.*\}`)
	// trailingComma matches a comma directly before a closing bracket
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON returns the JSON object in a model answer: the fenced one if
// present, else the outermost braces. Trailing commas are dropped. It returns
// "" when the answer holds no object.
func ExtractJSON(text string) string {
	var raw string
	if m := fencedObject.FindStringSubmatch(text); len(m) > 1 {
		raw = m[1]
	} else {
		raw = bareObject.FindString(text)
	}
	if raw == "" {
		return ""
	}
	return trailingComma.ReplaceAllString(raw, "$1")
}

// StripCodeFences trims the text and removes every code fence marker in it,
// leaving whatever JSON the model produced around or between them.
func StripCodeFences(text string) string {
	return strings.TrimSpace(fenceMarker.ReplaceAllString(strings.TrimSpace(text), ""))
}
