// Package server exposes the conversation over HTTP: one turn per request,
// with the snapshot persisted in the session store between turns.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"onboarding-chatbot/internal/chatbot"
	stderrors "onboarding-chatbot/internal/common/errors"
	"onboarding-chatbot/internal/common/logger"
	"onboarding-chatbot/internal/common/metrics"
	"onboarding-chatbot/internal/common/observability"
	"onboarding-chatbot/internal/profile"
	"onboarding-chatbot/internal/session"
)

// requestSchema validates the turn request before anything touches the
// state machine.
const requestSchema = `{
	"type": "object",
	"properties": {
		"sessionId": {"type": "string", "maxLength": 128},
		"message": {"type": "string", "maxLength": 4096}
	},
	"required": ["message"],
	"additionalProperties": false
}`

type TurnRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

// TurnResponse is the wire shape of one processed turn. The caller keeps
// only the session ID; the state itself stays server-side.
type TurnResponse struct {
	Success           bool                    `json:"success"`
	SessionID         string                  `json:"sessionId"`
	Message           string                  `json:"message,omitempty"`
	SuggestedActions  []string                `json:"suggestedActions,omitempty"`
	NeedsConfirmation bool                    `json:"needsConfirmation,omitempty"`
	ConfirmationField string                  `json:"confirmationField,omitempty"`
	Done              bool                    `json:"done,omitempty"`
	MergedProfile     *profile.WorkingProfile `json:"profile,omitempty"`
	Error             string                  `json:"error,omitempty"`
}

// Server wires the orchestrator, session store, and request validation.
type Server struct {
	orchestrator *chatbot.Orchestrator
	store        session.Store
	schema       *gojsonschema.Schema
	errHandler   *stderrors.Handler
	obs          *observability.Observability
	maxBodySize  int64
	logger       logger.Logger
}

func New(orchestrator *chatbot.Orchestrator, store session.Store, obs *observability.Observability, maxBodySize int64, log logger.Logger) (*Server, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(requestSchema))
	if err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}
	return &Server{
		orchestrator: orchestrator,
		store:        store,
		schema:       schema,
		errHandler:   stderrors.NewHandler(log),
		obs:          obs,
		maxBodySize:  maxBodySize,
		logger:       log.With(map[string]interface{}{"component": "server"}),
	}, nil
}

// Routes registers the API handlers on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chatbot/message", s.handleMessage)
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.obs.StartSpan(r.Context(), "chatbot.turn")
	defer span.End()

	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxBodySize))
	if err != nil {
		s.writeError(w, stderrors.NewInputValidationFailedError("unreadable request body"))
		return
	}

	validation, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil || !validation.Valid() {
		details := "request is not valid JSON"
		if err == nil {
			details = fmt.Sprint(validation.Errors())
		}
		s.writeError(w, stderrors.NewInputValidationFailedError(details))
		return
	}

	var req TurnRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, stderrors.NewInputValidationFailedError(err.Error()))
		return
	}

	sessionID := req.SessionID
	var state *chatbot.State
	if sessionID == "" {
		sessionID = uuid.NewString()
		metrics.SessionsActive.Inc()
	} else {
		state, err = s.store.Load(ctx, sessionID)
		if err != nil && !errors.Is(err, session.ErrNotFound) {
			s.writeError(w, s.errHandler.Log("session load failed", stderrors.NewSessionLoadFailedError(err)))
			return
		}
	}

	resp := s.orchestrator.ProcessTurn(ctx, req.Message, state)

	out := TurnResponse{
		Success:           resp.Success,
		SessionID:         sessionID,
		Message:           resp.Message,
		SuggestedActions:  resp.SuggestedActions,
		NeedsConfirmation: resp.NeedsConfirmation,
		ConfirmationField: string(resp.ConfirmationField),
		Done:              resp.Done,
		Error:             resp.Error,
	}

	if resp.Done && resp.State != nil {
		// Terminal turn: hand the merged profile to the caller and drop
		// the session, per the state lifecycle.
		out.MergedProfile = resp.State.Profile
		if err := s.store.Delete(ctx, sessionID); err != nil {
			s.errHandler.Log("session delete failed", err)
		}
		metrics.SessionsActive.Dec()
	} else if resp.State != nil {
		if err := s.store.Save(ctx, sessionID, resp.State); err != nil {
			s.writeError(w, s.errHandler.Log("session save failed", stderrors.NewSessionSaveFailedError(err)))
			return
		}
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	// A probe load exercises the store; a missing key is a healthy answer.
	if _, err := s.store.Load(r.Context(), "healthcheck"); err != nil && !errors.Is(err, session.ErrNotFound) {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, stdErr *stderrors.StandardError) {
	s.writeJSON(w, stderrors.HTTPStatus(stdErr.Code), map[string]interface{}{
		"success": false,
		"error":   string(stdErr.Code),
		"message": stdErr.Message,
		"details": stdErr.Details,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response failed", map[string]interface{}{"error": err.Error()})
	}
}
