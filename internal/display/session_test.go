package display

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/autoreply/internal/types"
)

type fakeTarget struct {
	kind      TargetKind
	detached  bool
	inOverlay bool
	err       error
	inserted  []string
}

func (f *fakeTarget) Kind() TargetKind { return f.kind }
func (f *fakeTarget) Attached() bool { return !f.detached }
func (f *fakeTarget) InOverlay() bool { return f.inOverlay }

func (f *fakeTarget) Insert(text string) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, text)
	return nil
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return c.err
}

func loading(runID uint64) types.Message {
	return types.Message{Type: types.MessageStatus, RunID: runID, Status: types.StatusLoading}
}

func ready(runID uint64, replies ...string) types.Message {
	return types.Message{Type: types.MessageReady, RunID: runID, Bundle: &types.Bundle{
		Classification: types.Classification{Label: types.LabelOutreach, IsOutreach: true},
		Replies:        replies,
		Research: types.ResearchResult{
			Glassdoor:    types.CompEstimate{Amount: "$205k-$275k", Grade: "B+"},
			Levels:       types.CompEstimate{Amount: "$215k-$290k", Grade: "B+"},
			OverallGrade: "B+",
		},
	}}
}

func TestSession_LoadingThenReady(t *testing.T) {
	s := NewSession(&fakeClipboard{})

	assert.True(t, s.Handle(loading(1)))
	view := s.View()
	assert.Equal(t, ViewStatus, view.Kind)
	assert.Equal(t, StatusGenerating, view.Status)
	assert.True(t, view.Visible())

	assert.True(t, s.Handle(ready(1, "a", "b")))
	view = s.View()
	assert.Equal(t, ViewReplies, view.Kind)
	assert.Equal(t, []string{"a", "b"}, view.Replies)
	require.NotNil(t, view.Research)
	assert.Equal(t, "B+", view.Research.OverallGrade)
	assert.Empty(t, view.Empty)
}

func TestSession_EmptyStates(t *testing.T) {
	s := NewSession(&fakeClipboard{})

	msg := ready(1)
	msg.Bundle.Classification = types.Classification{Label: types.LabelOther}
	s.Handle(msg)
	assert.Equal(t, EmptyNotOutreach, s.View().Empty)

	s.Handle(ready(2))
	assert.Equal(t, EmptyNoReplies, s.View().Empty)

	s.Handle(types.Message{Type: types.MessageReady, RunID: 3})
	assert.Equal(t, EmptyNoReplies, s.View().Empty)
}

func TestSession_Error(t *testing.T) {
	s := NewSession(&fakeClipboard{})

	s.Handle(types.Message{Type: types.MessageError, RunID: 1, Message: "LinkedIn is still loading"})
	assert.Equal(t, ViewError, s.View().Kind)
	assert.Equal(t, "LinkedIn is still loading", s.View().Error)

	s.Handle(types.Message{Type: types.MessageError, RunID: 2})
	assert.Equal(t, DefaultErrorText, s.View().Error)
}

func TestSession_DiscardsStaleRuns(t *testing.T) {
	s := NewSession(&fakeClipboard{})

	s.Handle(loading(1))
	s.Handle(loading(2))
	assert.False(t, s.Handle(ready(1, "stale")))
	assert.Equal(t, ViewStatus, s.View().Kind)
	assert.Equal(t, uint64(2), s.View().RunID)

	assert.True(t, s.Handle(ready(2, "fresh")))
	assert.Equal(t, []string{"fresh"}, s.View().Replies)

	assert.False(t, s.Handle(types.Message{Type: types.MessageError, RunID: 1, Message: "late"}))
	assert.Equal(t, ViewReplies, s.View().Kind)
}

func TestSession_DismissedIgnoresUpdatesUntilLoading(t *testing.T) {
	s := NewSession(&fakeClipboard{})

	s.Handle(loading(1))
	s.Dismiss()
	assert.True(t, s.Dismissed())
	assert.False(t, s.View().Visible())

	assert.False(t, s.Handle(ready(1, "a")))
	assert.False(t, s.Handle(types.Message{Type: types.MessageStatus, RunID: 1, Status: "working"}))
	assert.False(t, s.View().Visible())

	assert.True(t, s.Handle(loading(2)))
	assert.False(t, s.Dismissed())
	assert.True(t, s.Handle(ready(2, "b")))
	assert.Equal(t, []string{"b"}, s.View().Replies)
}

func TestSession_IgnoresRequestContext(t *testing.T) {
	s := NewSession(&fakeClipboard{})
	assert.False(t, s.Handle(types.Message{Type: types.MessageRequestContext, RunID: 1}))
	assert.False(t, s.View().Visible())
}

func TestSession_InsertPrefersActiveTarget(t *testing.T) {
	clip := &fakeClipboard{}
	s := NewSession(clip)
	remembered := &fakeTarget{kind: TargetInput}
	active := &fakeTarget{kind: TargetComposer}
	s.Remember(remembered)

	s.Handle(ready(1, "first", "second"))
	toast, err := s.Insert(active, 1)
	require.NoError(t, err)

	assert.Equal(t, ToastComposer, toast)
	assert.Equal(t, []string{"second"}, active.inserted)
	assert.Empty(t, remembered.inserted)
	assert.Empty(t, clip.text)

	view := s.View()
	assert.False(t, view.Visible())
	assert.Equal(t, ToastComposer, view.Toast)
	assert.True(t, s.Dismissed())
}

func TestSession_InsertFallsBackToRememberedTarget(t *testing.T) {
	s := NewSession(&fakeClipboard{})
	remembered := &fakeTarget{kind: TargetInput}
	s.Remember(remembered)
	s.Remember(&fakeTarget{kind: TargetComposer, inOverlay: true})
	s.Remember(&fakeTarget{kind: TargetComposer, detached: true})
	s.Remember(nil)

	s.Handle(ready(1, "reply"))
	toast, err := s.Insert(&fakeTarget{kind: TargetComposer, inOverlay: true}, 0)
	require.NoError(t, err)

	assert.Equal(t, ToastInput, toast)
	assert.Equal(t, []string{"reply"}, remembered.inserted)
}

func TestSession_InsertFallsBackToClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	s := NewSession(clip)
	s.Remember(&fakeTarget{kind: TargetInput})
	s.Close()

	s.Handle(ready(1, "reply"))
	toast, err := s.Insert(nil, 0)
	require.NoError(t, err)

	assert.Equal(t, ToastClipboard, toast)
	assert.Equal(t, "reply", clip.text)
}

func TestSession_InsertFailureUsesClipboard(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no display")}
	s := NewSession(clip)

	toast := s.InsertText(&fakeTarget{kind: TargetInput, err: errors.New("read-only")}, "text")
	assert.Equal(t, ToastClipboard, toast)
	assert.Equal(t, "text", clip.text)
}

func TestSession_InsertUnknownReply(t *testing.T) {
	s := NewSession(&fakeClipboard{})

	_, err := s.Insert(nil, 0)
	assert.ErrorIs(t, err, ErrNoReply)

	s.Handle(ready(1, "only"))
	_, err = s.Insert(nil, 1)
	assert.ErrorIs(t, err, ErrNoReply)
	_, err = s.Insert(nil, -1)
	assert.ErrorIs(t, err, ErrNoReply)
}

func TestFileTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reply.txt")

	input := FileTarget{Path: path}
	assert.Equal(t, TargetInput, input.Kind())
	assert.True(t, input.Attached())
	assert.False(t, input.InOverlay())

	require.NoError(t, input.Insert("one"))
	require.NoError(t, input.Insert("two"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	composer := FileTarget{Path: path, Composer: true}
	assert.Equal(t, TargetComposer, composer.Kind())
	require.NoError(t, composer.Insert(" three"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two three", string(data))

	assert.False(t, FileTarget{}.Attached())
	assert.False(t, FileTarget{Path: dir}.Attached())
	assert.False(t, FileTarget{Path: filepath.Join(dir, "missing", "reply.txt")}.Attached())
}

func TestRender(t *testing.T) {
	s := NewSession(&fakeClipboard{})
	var buf bytes.Buffer

	s.Handle(loading(1))
	Render(&buf, s.View())
	assert.Contains(t, buf.String(), overlayTitle)
	assert.Contains(t, buf.String(), StatusGenerating)

	buf.Reset()
	s.Handle(ready(1, "Hi, thanks"))
	Render(&buf, s.View())
	assert.Contains(t, buf.String(), "Glassdoor:  $205k-$275k (B+)")
	assert.Contains(t, buf.String(), "[1] Hi, thanks")

	buf.Reset()
	s.Handle(ready(2))
	Render(&buf, s.View())
	assert.Contains(t, buf.String(), EmptyNoReplies)

	buf.Reset()
	s.InsertText(nil, "x")
	Render(&buf, s.View())
	assert.Equal(t, ToastClipboard+"\n", buf.String())

	buf.Reset()
	Render(&buf, View{})
	assert.Empty(t, buf.String())
}
