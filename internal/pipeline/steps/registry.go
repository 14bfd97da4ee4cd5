// Package steps provides step definitions and dependency validation
// for the outreach reply pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Step names
const (
	RequestContext = "request_context"
	Summarize      = "summarize"
	Classify       = "classify"
	Personalize    = "personalize"
	Compose        = "compose"
	Polish         = "polish"
	Research       = "research"
)

// Step categories
const (
	CategoryContext  = "context"
	CategoryAnalysis = "analysis"
	CategoryReplies  = "replies"
	CategoryResearch = "research"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Position     int
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	RequestContext: {
		Name:         RequestContext,
		Category:     CategoryContext,
		Position:     1,
		Dependencies: []string{},
	},
	Summarize: {
		Name:         Summarize,
		Category:     CategoryAnalysis,
		Position:     2,
		Dependencies: []string{RequestContext},
	},
	Classify: {
		Name:         Classify,
		Category:     CategoryAnalysis,
		Position:     3,
		Dependencies: []string{Summarize},
	},
	Personalize: {
		Name:         Personalize,
		Category:     CategoryAnalysis,
		Position:     4,
		Dependencies: []string{Summarize},
	},
	Compose: {
		Name:         Compose,
		Category:     CategoryReplies,
		Position:     5,
		Dependencies: []string{Classify, Personalize},
	},
	Polish: {
		Name:         Polish,
		Category:     CategoryReplies,
		Position:     6,
		Dependencies: []string{Compose},
	},
	Research: {
		Name:         Research,
		Category:     CategoryResearch,
		Position:     7,
		Dependencies: []string{Summarize},
	},
}

// Order returns the step names in execution order.
func Order() []string {
	names := make([]string, 0, len(StepRegistry))
	for name := range StepRegistry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return StepRegistry[names[i]].Position < StepRegistry[names[j]].Position
	})
	return names
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// ValidateDependencies checks if all required dependencies for a step are completed
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// Tracker records completed steps for a single run.
type Tracker struct {
	completed map[string]bool
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{completed: make(map[string]bool)}
}

// Begin validates that stepName may run now.
func (t *Tracker) Begin(stepName string) error {
	return ValidateDependencies(t.completed, stepName)
}

// Complete marks stepName as done.
func (t *Tracker) Complete(stepName string) {
	t.completed[stepName] = true
}

// Completed reports whether stepName has finished.
func (t *Tracker) Completed(stepName string) bool {
	return t.completed[stepName]
}

// GetAvailableSteps returns steps that can be executed (dependencies met)
func GetAvailableSteps(completed map[string]bool) []string {
	var available []string
	for _, stepName := range Order() {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	return available
}

// GetBlockedSteps returns steps that are blocked (dependencies not met)
func GetBlockedSteps(completed map[string]bool) []string {
	var blocked []string
	for _, stepName := range Order() {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}
	return blocked
}
