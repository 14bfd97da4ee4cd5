// Package prompts holds the generative prompt templates of the outreach
// pipeline. They live in an embedded JSON file keyed by task.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Key names a prompt template.
type Key string

// Prompt keys
const (
	ClassifyOutreach     Key = "classify-outreach"
	ExtractNames         Key = "extract-names"
	Proofread            Key = "proofread"
	ResearchCompensation Key = "research-compensation"
	Summarize            Key = "summarize"
)

//go:embed outreach.json
var outreachJSON []byte

// placeholder matches {{.Name}} markers.
var placeholder = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

var templates = sync.OnceValues(func() (map[Key]string, error) {
	var parsed map[Key]string
	if err := json.Unmarshal(outreachJSON, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}
	return parsed, nil
})

// Get returns the raw template for key.
func Get(key Key) (string, error) {
	all, err := templates()
	if err != nil {
		return "", err
	}
	template, ok := all[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return template, nil
}

// Build fills every placeholder of the template for key. A placeholder
// without a value is an error; values are inserted verbatim.
func Build(key Key, data map[string]string) (string, error) {
	template, err := Get(key)
	if err != nil {
		return "", err
	}

	var missing []string
	filled := placeholder.ReplaceAllStringFunc(template, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		value, ok := data[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %q: no value for %s", key, strings.Join(missing, ", "))
	}
	return filled, nil
}

// Keys lists the available templates, sorted.
func Keys() []Key {
	all, err := templates()
	if err != nil {
		return nil
	}
	keys := make([]Key, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Sections joins the non-empty parts with a blank line between each,
// prefixed by a blank line so the result can be appended to a template.
func Sections(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return "\n\n" + strings.Join(kept, "\n\n")
}

// Details renders the context and summary sections that follow a recruiter
// message. Context identical to the message is omitted.
func Details(recruiterText, contextText, summary string) string {
	var contextPart, summaryPart string
	if contextText != "" && contextText != recruiterText {
		contextPart = "Additional context: " + contextText
	}
	if summary != "" {
		summaryPart = "Summary: " + summary
	}
	return Sections(contextPart, summaryPart)
}
