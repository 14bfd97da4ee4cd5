package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/jonathan/autoreply/internal/types"
)

// SSE event names
const (
	EventStatus = "status"
	EventReady  = "ready"
	EventError  = "error"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// streamEvent is the payload of every event on a generation stream.
type streamEvent struct {
	RequestID string        `json:"request_id"`
	RunID     uint64        `json:"run_id"`
	Status    string        `json:"status,omitempty"`
	Error     string        `json:"error,omitempty"`
	Bundle    *types.Bundle `json:"bundle,omitempty"`
}

// eventName maps a display message type to its SSE event name.
func eventName(t types.MessageType) string {
	switch t {
	case types.MessageReady:
		return EventReady
	case types.MessageError:
		return EventError
	default:
		return EventStatus
	}
}

// WriteMessage sends a display message as an event tagged with requestID.
func (s *SSEWriter) WriteMessage(requestID string, msg types.Message) error {
	return s.WriteEvent(eventName(msg.Type), streamEvent{
		RequestID: requestID,
		RunID:     msg.RunID,
		Status:    msg.Status,
		Error:     msg.Message,
		Bundle:    msg.Bundle,
	})
}
