package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/autoreply/internal/metrics"
)

var (
	// ErrMissingAPIKey is returned when a provider client is requested without credentials
	ErrMissingAPIKey = errors.New("API key is required")
	// ErrEmptyResponse is returned when the model answers without any text
	ErrEmptyResponse = errors.New("model returned no text")
	// ErrBlocked is returned when the provider refuses the prompt or the answer
	ErrBlocked = errors.New("model response blocked")
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates free text using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates a JSON object using the specified model tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates the client for the configured provider. ProviderNone
// yields ErrUnavailable so callers fall back to the offline capabilities.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderNone:
		return nil, ErrUnavailable
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateContent implements Client.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, prompt, tier, "")
}

// GenerateJSON implements Client. The answer is reduced to the JSON object it
// contains; text without one is returned trimmed for the caller to reject.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, prompt, tier, "application/json")
	if err != nil {
		return "", err
	}
	if obj := ExtractJSON(text); obj != "" {
		return obj, nil
	}
	return strings.TrimSpace(text), nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, tier ModelTier, mimeType string) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(c.config.Temperature(tier))
	if mimeType != "" {
		model.ResponseMIMEType = mimeType
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout())
	defer cancel()

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err == nil {
		var text string
		text, err = responseText(resp)
		if err == nil {
			observe(tier, modelName, start, nil)
			return text, nil
		}
	} else {
		err = fmt.Errorf("generating with %s: %w", modelName, err)
	}

	observe(tier, modelName, start, err)
	return "", err
}

func observe(tier ModelTier, model string, start time.Time, err error) {
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeFailed
	}
	metrics.ModelCallsTotal.WithLabelValues(string(tier), outcome).Inc()
	slog.Debug("model call", "tier", tier, "model", model, "duration", time.Since(start), "error", err)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != 0 {
		return "", fmt.Errorf("%w: prompt rejected", ErrBlocked)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: safety filter", ErrBlocked)
	}
	if candidate.Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
