package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/infobot"
	"github.com/aretw0/infobot/pkg/catalog"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Bot is the part of infobot.Bot the HTTP transport needs.
type Bot interface {
	Ask(ctx context.Context, sessionID, utterance string) (*infobot.Reply, error)
	Start(ctx context.Context, sessionID string) (*domain.Session, error)
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
	Sessions(ctx context.Context) ([]string, error)
	Reset(ctx context.Context, sessionID string) error
	Describe(query string) (domain.Record, string, bool)
	ListByLocation(query string) []domain.Record
	Compare(nameA, nameB string) string
	Catalog() *catalog.Store
}

// Server serves the JSON API over a Bot.
type Server struct {
	Bot     Bot
	Streams *StreamManager

	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// TurnRequest is the body of POST /sessions/{id}/turns.
type TurnRequest struct {
	Utterance string `json:"utterance"`
}

// StartRequest is the optional body of POST /sessions.
type StartRequest struct {
	SessionID string `json:"session_id"`
}

// TurnResponse is returned for each resolved utterance.
type TurnResponse struct {
	SessionID     string             `json:"session_id"`
	Response      string             `json:"response"`
	Intent        domain.Intent      `json:"intent"`
	FocusedEntity string             `json:"focused_entity"`
	PendingMode   domain.PendingMode `json:"pending_mode"`
}

// CollegeResponse is returned by GET /colleges/{name}.
type CollegeResponse struct {
	Record      domain.Record `json:"record"`
	Description string        `json:"description"`
}

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates the HTTP handler for bot.
func NewHandler(bot Bot, opts ...Option) http.Handler {
	s := &Server{
		Bot:     bot,
		Streams: NewStreamManager(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.StartSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/turns", s.PostTurn)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	r.Route("/colleges", func(r chi.Router) {
		r.Get("/", s.ListColleges)
		r.Get("/{name}", s.GetCollege)
	})
	r.Get("/compare", s.GetComparison)

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.Bot.Catalog().Len(),
	})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "infobot-http",
		"version": strings.TrimSpace(infobot.Version),
	})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Bot.Sessions(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// StartSession handles POST /sessions. An empty body creates a session with a random ID.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body StartRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	session, err := s.Bot.Start(r.Context(), body.SessionID)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// GetSession handles GET /sessions/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.Bot.Session(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.failSession(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// DeleteSession handles DELETE /sessions/{sessionID}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Bot.Reset(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.failSession(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostTurn handles POST /sessions/{sessionID}/turns and broadcasts the session diff.
func (s *Server) PostTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	utterance, err := runner.SanitizeInput(body.Utterance)
	if err != nil {
		s.logger.Warn("turn input rejected", "session_id", sessionID, "err", err, "size", len(body.Utterance))
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid input: %w", err))
		return
	}

	reply, err := s.Bot.Ask(r.Context(), sessionID, utterance)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	if reply.Diff != nil {
		if payload, err := json.Marshal(reply.Diff); err == nil {
			s.Streams.Broadcast(sessionID, string(payload))
		}
	}

	resp := TurnResponse{
		SessionID: sessionID,
		Response:  reply.Response,
		Intent:    reply.Intent,
	}
	if reply.Session != nil {
		resp.FocusedEntity = reply.Session.FocusedEntity
		resp.PendingMode = reply.Session.PendingMode
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListColleges handles GET /colleges. The optional location query filters by substring.
func (s *Server) ListColleges(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")

	var records []domain.Record
	if location == "" {
		records = s.Bot.Catalog().All()
	} else {
		records = s.Bot.ListByLocation(location)
	}
	if records == nil {
		records = []domain.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"colleges": records})
}

// GetCollege handles GET /colleges/{name} with first-match name resolution.
func (s *Server) GetCollege(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	record, description, ok := s.Bot.Describe(name)
	if !ok {
		s.fail(w, r, http.StatusNotFound, fmt.Errorf("%w: %q", domain.ErrRecordNotFound, name))
		return
	}
	writeJSON(w, http.StatusOK, CollegeResponse{Record: record, Description: description})
}

// GetComparison handles GET /compare?a=&b=.
func (s *Server) GetComparison(w http.ResponseWriter, r *http.Request) {
	a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		s.fail(w, r, http.StatusBadRequest, errors.New("query parameters a and b are required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": s.Bot.Compare(a, b)})
}

func (s *Server) failSession(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.fail(w, r, http.StatusNotFound, err)
		return
	}
	s.fail(w, r, http.StatusInternalServerError, err)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
