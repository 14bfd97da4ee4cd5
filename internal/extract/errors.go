package extract

import (
	"errors"
	"fmt"
)

// User-facing extraction failures
const (
	MsgNoFocus      = "Place the cursor inside the LinkedIn reply box before generating replies."
	MsgNoMessage    = "Couldn't locate the recruiter message near this reply box. Scroll so the outreach is visible and try again."
	MsgStillLoading = "LinkedIn is still loading this thread. Wait a moment, place the cursor in the reply box, and try again."
	receiverMissing = "Receiving end does not exist"
)

// ErrReceiverMissing means the page-side extractor could not be reached.
var ErrReceiverMissing = errors.New(receiverMissing)

// ContextError is a failure while obtaining recruiter context.
// Message is safe to show to the user.
type ContextError struct {
	Message string
	Cause   error
}

func (e *ContextError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}
