// Package display holds the reply overlay state on the page side: which run
// it shows, whether the user dismissed it, and where a chosen reply goes.
package display

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonathan/autoreply/internal/types"
)

// Overlay texts
const (
	StatusGenerating = "Generating replies..."
	EmptyNotOutreach = "No recruiter outreach detected near this composer."
	EmptyNoReplies   = "No replies generated. Try again."
	DefaultErrorText = "Failed to generate a reply."
	ToastComposer    = "Reply inserted into the composer."
	ToastInput       = "Reply inserted into the input."
	ToastClipboard   = "Reply copied to clipboard. Paste into LinkedIn."
	overlayTitle     = "AutoReply Recruiter"
)

// ErrNoReply is returned when inserting a reply index that is not shown.
var ErrNoReply = errors.New("no such reply")

// ViewKind is what the overlay currently shows.
type ViewKind int

const (
	ViewHidden ViewKind = iota
	ViewStatus
	ViewReplies
	ViewError
)

// View is a snapshot of the overlay. Empty is shown in place of replies
// when there are none.
type View struct {
	Kind     ViewKind
	RunID    uint64
	Status   string
	Research *types.ResearchResult
	Replies  []string
	Empty    string
	Error    string
	Toast    string
}

// Visible reports whether the overlay is on screen.
func (v View) Visible() bool {
	return v.Kind != ViewHidden
}

// Session is the display side of a page. It is safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	clipboard  Clipboard
	latestRun  uint64
	dismissed  bool
	lastTarget Target
	view       View
}

// NewSession creates a Session. A nil clipboard uses the system clipboard.
func NewSession(clip Clipboard) *Session {
	if clip == nil {
		clip = SystemClipboard{}
	}
	return &Session{clipboard: clip}
}

// Handle applies a message from the orchestrator. Messages from a run older
// than the newest seen are discarded. It reports whether the view changed.
func (s *Session) Handle(msg types.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.RunID < s.latestRun {
		slog.Debug("discarding stale display message", "run_id", msg.RunID, "latest", s.latestRun, "type", msg.Type)
		return false
	}

	switch msg.Type {
	case types.MessageStatus:
		s.latestRun = msg.RunID
		if msg.Status == types.StatusLoading {
			s.dismissed = false
		}
		if s.dismissed {
			return false
		}
		status := msg.Status
		if status == types.StatusLoading {
			status = StatusGenerating
		}
		s.view = View{Kind: ViewStatus, RunID: msg.RunID, Status: status}
		return true

	case types.MessageReady:
		s.latestRun = msg.RunID
		if s.dismissed {
			return false
		}
		s.view = readyView(msg)
		return true

	case types.MessageError:
		s.latestRun = msg.RunID
		if s.dismissed {
			return false
		}
		text := msg.Message
		if text == "" {
			text = DefaultErrorText
		}
		s.view = View{Kind: ViewError, RunID: msg.RunID, Error: text}
		return true

	default:
		return false
	}
}

func readyView(msg types.Message) View {
	view := View{Kind: ViewReplies, RunID: msg.RunID}
	if msg.Bundle == nil {
		view.Empty = EmptyNoReplies
		return view
	}

	research := msg.Bundle.Research
	view.Research = &research
	view.Replies = append([]string(nil), msg.Bundle.Replies...)
	if len(view.Replies) == 0 {
		view.Empty = EmptyNoReplies
		if !msg.Bundle.Classification.IsOutreach {
			view.Empty = EmptyNotOutreach
		}
	}
	return view
}

// View returns the current overlay state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.view
	view.Replies = append([]string(nil), s.view.Replies...)
	return view
}

// Dismissed reports whether the user closed the overlay since the last run started.
func (s *Session) Dismissed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dismissed
}

// Remember records t as the last focused editable. Detached targets and
// targets inside the overlay are ignored.
func (s *Session) Remember(t Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remember(t)
}

func (s *Session) remember(t Target) {
	if t == nil || !t.Attached() || t.InOverlay() {
		return
	}
	s.lastTarget = t
}

// insertionTarget prefers the active editable and falls back to the last
// remembered one.
func (s *Session) insertionTarget(active Target) Target {
	if active != nil && active.Attached() && !active.InOverlay() {
		return active
	}
	if s.lastTarget != nil && s.lastTarget.Attached() {
		return s.lastTarget
	}
	return nil
}

// Insert places the reply at index into the best target and closes the
// overlay. It returns the toast shown to the user.
func (s *Session) Insert(active Target, index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view.Kind != ViewReplies || index < 0 || index >= len(s.view.Replies) {
		return "", fmt.Errorf("%w: %d", ErrNoReply, index)
	}
	return s.insert(active, s.view.Replies[index]), nil
}

// InsertText places text into the best target and closes the overlay.
func (s *Session) InsertText(active Target, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(active, text)
}

func (s *Session) insert(active Target, text string) string {
	if target := s.insertionTarget(active); target != nil {
		if err := target.Insert(text); err != nil {
			slog.Warn("inserting reply failed, copying to clipboard", "error", err)
		} else {
			s.remember(target)
			toast := ToastInput
			if target.Kind() == TargetComposer {
				toast = ToastComposer
			}
			s.close(toast)
			return toast
		}
	}

	if err := s.clipboard.WriteAll(text); err != nil {
		slog.Warn("copying reply to clipboard failed", "error", err)
	}
	s.close(ToastClipboard)
	return ToastClipboard
}

// Dismiss closes the overlay until the next run starts.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.close("")
}

func (s *Session) close(toast string) {
	s.dismissed = true
	s.view = View{Kind: ViewHidden, RunID: s.view.RunID, Toast: toast}
}

// Close tears the session down and forgets the remembered target.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTarget = nil
	s.view = View{}
}
