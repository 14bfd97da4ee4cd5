// Package llm provides the generative model client and the capability variants
// (summarizer, writer, proofreader) consumed by the outreach pipeline.
package llm

import "time"

// ModelTier selects a model by the kind of task it serves.
type ModelTier string

const (
	// TierLite serves short tasks: outreach classification, name extraction, summaries, proofreading
	TierLite ModelTier = "lite"
	// TierStandard serves structured reasoning: compensation research
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for deployments that route research to a larger model
	TierAdvanced ModelTier = "advanced"
)

// tierFallback is the lookup order after the requested tier.
var tierFallback = []ModelTier{TierStandard, TierLite}

// Provider names a generative backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	// ProviderNone disables every generative capability
	ProviderNone Provider = "none"
)

// DefaultRequestTimeout bounds a single model call.
const DefaultRequestTimeout = 30 * time.Second

// Config selects the provider, a model per tier, and sampling per tier.
type Config struct {
	Provider     Provider
	Models       map[ModelTier]string
	Temperatures map[ModelTier]float32
	Timeout      time.Duration
}

// DefaultConfig returns the Gemini configuration.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig uses the flash-lite model for every short task and keeps
// research deterministic.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperatures: map[ModelTier]float32{
			TierLite:     0.2,
			TierStandard: 0,
			TierAdvanced: 0,
		},
		Timeout: DefaultRequestTimeout,
	}
}

// GetModel returns the model for tier, falling back to the standard and then
// the lite model. It returns "" when none is configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range append([]ModelTier{tier}, tierFallback...) {
		if model := c.Models[t]; model != "" {
			return model
		}
	}
	return ""
}

// Temperature returns the sampling temperature for tier, 0 when unset.
func (c *Config) Temperature(tier ModelTier) float32 {
	return c.Temperatures[tier]
}

// RequestTimeout returns the per-call timeout.
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultRequestTimeout
	}
	return c.Timeout
}

// WithModel returns a copy with model assigned to tier. An empty model leaves
// the tier unchanged.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	clone := &Config{
		Provider:     c.Provider,
		Models:       make(map[ModelTier]string, len(c.Models)+1),
		Temperatures: make(map[ModelTier]float32, len(c.Temperatures)),
		Timeout:      c.Timeout,
	}
	for k, v := range c.Models {
		clone.Models[k] = v
	}
	for k, v := range c.Temperatures {
		clone.Temperatures[k] = v
	}
	if model != "" {
		clone.Models[tier] = model
	}
	return clone
}
