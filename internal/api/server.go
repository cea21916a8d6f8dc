// Package api serves remote boards over HTTP.
//
// Routes:
//
//	POST   /api/sessions                 new board {"mode":"classic","seed":0}
//	GET    /api/sessions                 all boards
//	GET    /api/sessions/{id}            one board
//	DELETE /api/sessions/{id}            drop a board
//	POST   /api/sessions/{id}/shift      {"direction":"left"}
//	GET    /api/sessions/{id}/permitted  legal directions
//	GET    /api/scores/{mode}            best finished games
//	GET    /api/health                   liveness
//	GET    /ws?session={id}              live updates
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/transport/websocket"
)

// ResultLister provides the scoreboard.
type ResultLister interface {
	TopResults(mode string, limit int) ([]storage.Result, error)
}

// Server represents the REST API server.
type Server struct {
	sessions *session.Manager
	results  ResultLister
	hub      *websocket.Hub
	router   *mux.Router
	logger   *log.Logger
}

// NewServer creates a new API server. results and hub may be nil;
// the matching routes then answer 503.
func NewServer(mgr *session.Manager, results ResultLister, hub *websocket.Hub, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		sessions: mgr,
		results:  results,
		hub:      hub,
		router:   mux.NewRouter(),
		logger:   logger,
	}

	if hub != nil {
		mgr.OnUpdate(hub.BroadcastState)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.logRequests)

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)

	api.HandleFunc("/sessions/{id}/shift", s.handleShift).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/permitted", s.handlePermitted).Methods(http.MethodGet)

	api.HandleFunc("/scores/{mode}", s.handleScores).Methods(http.MethodGet)

	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client may have gone away
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, t2048.ErrUnknownDirection), errors.Is(err, t2048.ErrUnknownMode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Session handlers

type createRequest struct {
	Mode string `json:"mode"`
	Seed int64  `json:"seed"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	mode, err := t2048.ParseMode(req.Mode)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	st, err := s.sessions.Create(req.Seed, mode)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, st)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.sessions.List()
	respondJSON(w, http.StatusOK, map[string]any{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.sessions.Delete(id); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", id),
	})
}

// Game handlers

type shiftRequest struct {
	Direction string `json:"direction"`
}

func (s *Server) handleShift(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	dir, err := t2048.ParseDirection(req.Direction)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	res, err := s.sessions.Shift(mux.Vars(r)["id"], dir)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type permittedResponse struct {
	LegalMoves []t2048.Direction `json:"legal_moves"`
	Permitted  map[string]bool   `json:"permitted"`
}

func (s *Server) handlePermitted(w http.ResponseWriter, r *http.Request) {
	legal, err := s.sessions.LegalMoves(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	resp := permittedResponse{LegalMoves: legal, Permitted: make(map[string]bool, len(t2048.Directions))}
	for _, d := range t2048.Directions {
		resp.Permitted[d.String()] = false
	}
	for _, d := range legal {
		resp.Permitted[d.String()] = true
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		respondError(w, http.StatusServiceUnavailable, "scores are not recorded")
		return
	}

	mode, err := t2048.ParseMode(mux.Vars(r)["mode"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	limit := 10
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}

	results, err := s.results.TopResults(mode.ID(), limit)
	if err != nil {
		s.logger.Error("cannot load scores", "mode", mode, "err", err)
		respondError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	if results == nil {
		results = []storage.Result{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"mode":    mode.ID(),
		"results": results,
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "live updates are disabled")
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "session parameter required")
		return
	}

	st, err := s.sessions.Get(sessionID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	s.hub.ServeWS(w, r, st.ID, &st)
}
