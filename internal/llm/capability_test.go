package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	text    string
	err     error
	prompts []string
	tiers   []ModelTier
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, tier ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.tiers = append(s.tiers, tier)
	return s.text, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.tiers = append(s.tiers, tier)
	return s.text, s.err
}

func (s *stubClient) Close() error { return nil }

func TestOffline_AllUnavailable(t *testing.T) {
	caps := Offline()
	ctx := context.Background()

	assert.False(t, caps.Summarizer.Available())
	assert.False(t, caps.Writer.Available())
	assert.False(t, caps.Proofreader.Available())

	_, err := caps.Summarizer.Summarize(ctx, "text", DefaultSummaryOptions())
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = caps.Writer.Generate(ctx, "prompt")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = caps.Writer.GenerateJSON(ctx, "prompt")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = caps.Proofreader.Proofread(ctx, "text")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFromClient_Nil(t *testing.T) {
	caps := FromClient(nil)
	assert.False(t, caps.Writer.Available())
}

func TestNormalize_FillsNil(t *testing.T) {
	caps := Capabilities{}.Normalize()
	require.NotNil(t, caps.Summarizer)
	require.NotNil(t, caps.Writer)
	require.NotNil(t, caps.Proofreader)
	assert.False(t, caps.Summarizer.Available())
}

func TestFromClient_Summarizer(t *testing.T) {
	client := &stubClient{text: "  Recruiter pitching a backend role.  "}
	caps := FromClient(client)

	summary, err := caps.Summarizer.Summarize(context.Background(), "long text", DefaultSummaryOptions())
	require.NoError(t, err)
	assert.Equal(t, "Recruiter pitching a backend role.", summary)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "long text")
	assert.Contains(t, client.prompts[0], "plain-text")
	assert.Equal(t, TierLite, client.tiers[0])
}

func TestFromClient_ProofreaderError(t *testing.T) {
	client := &stubClient{err: errors.New("quota exceeded")}
	caps := FromClient(client)

	_, err := caps.Proofreader.Proofread(context.Background(), "Hi, thanks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestFromClient_WriterTiers(t *testing.T) {
	client := &stubClient{text: "OUTREACH"}
	caps := FromClient(client)
	ctx := context.Background()

	_, err := caps.Writer.Generate(ctx, "classify")
	require.NoError(t, err)
	_, err = caps.Writer.GenerateJSON(ctx, "research")
	require.NoError(t, err)

	assert.Equal(t, []ModelTier{TierLite, TierStandard}, client.tiers)
}

func TestNewClient_ProviderNone(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: ProviderNone}, "key")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewGeminiClient_MissingKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
