package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jonathan/autoreply/internal/compensation"
	"github.com/jonathan/autoreply/internal/extract"
	"github.com/jonathan/autoreply/internal/pipeline"
	"github.com/jonathan/autoreply/internal/server/middleware"
	"github.com/jonathan/autoreply/internal/types"
)

// GenerateRequest carries what the browser captured near the reply box:
// either extracted text or a page snapshot for server-side extraction.
type GenerateRequest struct {
	PrimaryText   string `json:"primary_text" validate:"max=20000,required_without_all=ContextText SelectionText HTML"`
	ContextText   string `json:"context_text" validate:"max=20000"`
	SelectionText string `json:"selection_text" validate:"max=20000"`
	HTML          string `json:"html" validate:"max=5000000"`
	FocusSelector string `json:"focus_selector" validate:"max=500"`
	PageURL       string `json:"page_url" validate:"omitempty,url"`
}

// trigger picks the context provider for the request. A selection alone goes
// through the missing-page path so the pipeline falls back to it. Fields that
// were sent but hold only whitespace count as captured text that came up empty.
func (req GenerateRequest) trigger() pipeline.Trigger {
	var provider extract.ContextProvider = extract.StaticProvider{}
	primary := strings.TrimSpace(req.PrimaryText)
	surrounding := strings.TrimSpace(req.ContextText)

	switch {
	case strings.TrimSpace(req.HTML) != "":
		provider = extract.SnapshotProvider{Snapshot: extract.Snapshot{
			HTML:          req.HTML,
			FocusSelector: req.FocusSelector,
			URL:           req.PageURL,
		}}
	case primary != "" || surrounding != "":
		if primary == "" {
			primary = surrounding
		}
		if surrounding == "" {
			surrounding = primary
		}
		provider = extract.StaticProvider{Context: types.RecruiterContext{PrimaryText: primary, ContextText: surrounding}}
	case strings.TrimSpace(req.SelectionText) != "":
		provider = extract.MissingProvider{}
	}

	return pipeline.Trigger{Provider: provider, Selection: req.SelectionText}
}

// ResearchRequest asks for a compensation estimate for an opportunity description.
type ResearchRequest struct {
	Text string `json:"text" validate:"required,max=20000"`
}

// handleGenerate runs the pipeline and answers with the final display message:
// 200 with the READY message, or 422 with the user-facing error.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var final types.Message
	s.orchestrator.Run(r.Context(), req.trigger(), pipeline.EmitterFunc(func(msg types.Message) {
		if msg.Type != types.MessageStatus {
			final = msg
		}
	}))

	if final.Type != types.MessageReady {
		s.jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  final.Message,
			"run_id": final.RunID,
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, final)
}

// handleGenerateStream runs the pipeline and streams every display message
// as a server-sent event.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	requestID := middleware.GetRequestID(r.Context())
	s.orchestrator.Run(r.Context(), req.trigger(), pipeline.EmitterFunc(func(msg types.Message) {
		if err := sse.WriteMessage(requestID, msg); err != nil {
			slog.Debug("client went away during stream", "request_id", requestID, "error", err)
		}
	}))
}

// handleResearch resolves the role described by the text and estimates its compensation.
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req ResearchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	text := strings.TrimSpace(req.Text)
	report := s.estimator.Research(r.Context(), compensation.Input{
		Summary:       pipeline.Truncate(text, pipeline.SummaryLimit),
		RecruiterText: text,
		ContextText:   text,
	})
	s.jsonResponse(w, http.StatusOK, report)
}
