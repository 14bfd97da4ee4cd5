// Package types provides type definitions for structured data used throughout the autoreply system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RecruiterContext is the text captured near the focused reply box.
// Either both text fields are set or Error is set, never both.
type RecruiterContext struct {
	PrimaryText string `json:"primaryText"`
	ContextText string `json:"contextText"`
	Error       string `json:"error,omitempty"`
}

// HasText reports whether any usable text was captured.
func (c RecruiterContext) HasText() bool {
	return c.PrimaryText != "" || c.ContextText != ""
}

// ContextFailure builds a RecruiterContext carrying only an error message.
func ContextFailure(message string) RecruiterContext {
	return RecruiterContext{Error: message}
}
