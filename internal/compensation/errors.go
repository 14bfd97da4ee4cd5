package compensation

import "fmt"

// Compensation sources
const (
	SourceLevels    = "levels"
	SourceGlassdoor = "glassdoor"
	SourceAssist    = "assist"
	SourceHeuristic = "heuristic"
)

// LookupError describes a failed external lookup. It is logged, never surfaced.
type LookupError struct {
	Source  string
	URL     string
	Message string
	Cause   error
}

func (e *LookupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s lookup %s: %s: %v", e.Source, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s lookup %s: %s", e.Source, e.URL, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}
