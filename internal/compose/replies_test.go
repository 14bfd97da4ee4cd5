package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/autoreply/internal/llm"
	"github.com/jonathan/autoreply/internal/types"
)

type stubProofreader struct {
	fix   func(string) (string, error)
	calls int
}

func (p *stubProofreader) Available() bool { return true }

func (p *stubProofreader) Proofread(_ context.Context, text string) (string, error) {
	p.calls++
	return p.fix(text)
}

func name(s string) *string { return &s }

func TestCompose_Generic(t *testing.T) {
	replies := Compose(types.Personalization{})

	require.Len(t, replies, 2)
	assert.Equal(t, "Hi, Yes, I'm interested. My number is +12149098059.\n\nThanks", replies[0])
	assert.Equal(t, "Hi, Thanks for reaching out. I'm currently not looking to move but will ping at a later time.\n\nThanks", replies[1])
}

func TestCompose_Personalized(t *testing.T) {
	replies := Compose(types.Personalization{RecruiterName: name("Jane"), UserName: name("Alex")})

	require.Len(t, replies, 2)
	assert.Equal(t, "Hi Jane, Yes, I'm interested. My number is +12149098059.\n\nThanks\nAlex", replies[0])
}

func TestCompose_Idempotent(t *testing.T) {
	p := types.Personalization{RecruiterName: name("Jane")}
	assert.Equal(t, Compose(p), Compose(p))
}

func TestBodies_IsCopy(t *testing.T) {
	b := Bodies()
	b[0] = "changed"
	assert.NotEqual(t, "changed", Bodies()[0])
}

func TestPolish(t *testing.T) {
	replies := []string{"Hi, teh reply", "Hi, other"}

	t.Run("empty input skips proofreader", func(t *testing.T) {
		p := &stubProofreader{fix: func(s string) (string, error) { return s, nil }}
		assert.Empty(t, Polish(context.Background(), p, nil))
		assert.Equal(t, 0, p.calls)
	})

	t.Run("unavailable", func(t *testing.T) {
		assert.Equal(t, replies, Polish(context.Background(), llm.UnavailableProofreader{}, replies))
		assert.Equal(t, replies, Polish(context.Background(), nil, replies))
	})

	t.Run("corrections applied", func(t *testing.T) {
		p := &stubProofreader{fix: func(s string) (string, error) {
			if s == "Hi, teh reply" {
				return "Hi, the reply", nil
			}
			return "", nil
		}}
		assert.Equal(t, []string{"Hi, the reply", "Hi, other"}, Polish(context.Background(), p, replies))
		assert.Equal(t, 2, p.calls)
	})

	t.Run("failure returns originals", func(t *testing.T) {
		p := &stubProofreader{fix: func(s string) (string, error) {
			if s == "Hi, other" {
				return "", errors.New("proofreader crashed")
			}
			return "changed", nil
		}}
		assert.Equal(t, replies, Polish(context.Background(), p, replies))
	})
}
