package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/autoreply/internal/pipeline"
	"github.com/jonathan/autoreply/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "text", Message: "required"}
	assert.Equal(t, "validation error: text - required", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Field: "f", Message: "m"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("decode: %w", &ErrValidation{}), http.StatusBadRequest},
		{"run error", &pipeline.RunError{Message: "no text"}, http.StatusUnprocessableEntity},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(struct {
		Text string `validate:"required"`
	}{})
	require.Error(t, err)

	got := validationError(err)
	assert.Equal(t, "Text", got.Field)
	assert.Equal(t, "required", got.Message)

	got = validationError(errors.New("odd"))
	assert.Equal(t, "body", got.Field)
}

// plainWriter hides the recorder's Flush method.
type plainWriter struct {
	http.ResponseWriter
}

func TestSSEWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, sse.WriteMessage("req-1", types.Message{Type: types.MessageError, RunID: 4, Message: "nope"}))
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "event: error\ndata: {\"request_id\":\"req-1\",\"run_id\":4,\"error\":\"nope\"}\n\n", rec.Body.String())
	assert.True(t, rec.Flushed)

	_, err = NewSSEWriter(plainWriter{httptest.NewRecorder()})
	assert.ErrorIs(t, err, ErrStreamingUnsupported)
}

func TestEventName(t *testing.T) {
	assert.Equal(t, EventStatus, eventName(types.MessageStatus))
	assert.Equal(t, EventReady, eventName(types.MessageReady))
	assert.Equal(t, EventError, eventName(types.MessageError))
}
