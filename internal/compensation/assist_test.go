package compensation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/autoreply/internal/llm"
)

type stubWriter struct {
	output     string
	err        error
	lastPrompt string
	calls      int
}

func (w *stubWriter) Available() bool { return true }

func (w *stubWriter) Generate(_ context.Context, prompt string) (string, error) {
	w.calls++
	w.lastPrompt = prompt
	return w.output, w.err
}

func (w *stubWriter) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return w.Generate(ctx, prompt)
}

func TestParseAssist_FlatKeys(t *testing.T) {
	raw := "```json\n{\"glassdoorAmount\":\"$180k-$220k\",\"glassdoorGrade\":\"B\",\"levelsAmount\":\"$200k-$250k\",\"overallGrade\":\"B+\"}\n```"

	s, ok := ParseAssist(raw)
	require.True(t, ok)
	require.NotNil(t, s.Glassdoor)
	require.NotNil(t, s.Levels)
	assert.Equal(t, "$180k-$220k", s.Glassdoor.Amount)
	assert.Equal(t, "B", s.Glassdoor.Grade)
	assert.Equal(t, "$200k-$250k", s.Levels.Amount)
	assert.Equal(t, "N/A", s.Levels.Grade)
	assert.Equal(t, "B+", s.OverallGrade)
}

func TestParseAssist_NestedObjects(t *testing.T) {
	raw := `{"glassdoor":{"range":"$150k-$190k","grade":"B-"},"levels":"$170k-$210k"}`

	s, ok := ParseAssist(raw)
	require.True(t, ok)
	assert.Equal(t, "$150k-$190k", s.Glassdoor.Amount)
	assert.Equal(t, "B-", s.Glassdoor.Grade)
	assert.Equal(t, "$170k-$210k", s.Levels.Amount)
	assert.Equal(t, "N/A", s.Levels.Grade)
	assert.Empty(t, s.OverallGrade)
}

func TestParseAssist_MissingAmountIsAbsent(t *testing.T) {
	s, ok := ParseAssist(`{"glassdoorGrade":"A","levelsAmount":"Unavailable","overallGrade":""}`)
	require.True(t, ok)
	assert.Nil(t, s.Glassdoor)
	assert.Nil(t, s.Levels)
	assert.Empty(t, s.OverallGrade)
}

func TestParseAssist_Rejects(t *testing.T) {
	for _, raw := range []string{"", "```", "not json", `["a"]`, `{"glassdoorAmount":{"nested":true}}`} {
		_, ok := ParseAssist(raw)
		assert.False(t, ok, raw)
	}
}

func TestAssistPrompt(t *testing.T) {
	prompt, err := AssistPrompt(Input{
		Summary:       "A recruiter pitches a backend role.",
		RecruiterText: "Hi, we're hiring",
		ContextText:   "Earlier: hello\n\nHi, we're hiring",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Recruiter message:\n\nHi, we're hiring")
	assert.Contains(t, prompt, "Additional context: Earlier: hello")
	assert.Contains(t, prompt, "Summary: A recruiter pitches a backend role.")
	assert.NotContains(t, prompt, "{{.")

	prompt, err = AssistPrompt(Input{RecruiterText: "same", ContextText: "same"})
	require.NoError(t, err)
	assert.NotContains(t, prompt, "Additional context")
	assert.NotContains(t, prompt, "Summary:")
}

func TestAssist(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		_, err := Assist(context.Background(), llm.UnavailableWriter{}, Input{RecruiterText: "x"})
		assert.ErrorIs(t, err, llm.ErrUnavailable)

		_, err = Assist(context.Background(), nil, Input{RecruiterText: "x"})
		assert.ErrorIs(t, err, llm.ErrUnavailable)
	})

	t.Run("writer error", func(t *testing.T) {
		w := &stubWriter{err: errors.New("quota")}
		_, err := Assist(context.Background(), w, Input{RecruiterText: "x"})
		assert.ErrorContains(t, err, "quota")
	})

	t.Run("unparseable", func(t *testing.T) {
		w := &stubWriter{output: "I think around 200k"}
		_, err := Assist(context.Background(), w, Input{RecruiterText: "x"})
		assert.ErrorIs(t, err, ErrUnparseable)
	})

	t.Run("success", func(t *testing.T) {
		w := &stubWriter{output: `{"glassdoorAmount":"$1k-$2k"}`}
		s, err := Assist(context.Background(), w, Input{RecruiterText: "x"})
		require.NoError(t, err)
		assert.Equal(t, "$1k-$2k", s.Glassdoor.Amount)
		assert.Equal(t, 1, w.calls)
	})
}
