// Package api exposes the tender question endpoint over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mfenderov/tenderlens/internal/answer"
)

// Asker answers questions about stored tenders.
type Asker interface {
	Ask(ctx context.Context, tenderID, question string) (string, error)
}

// Server exposes HTTP handlers for the tender Q&A workflow.
type Server struct {
	svc     Asker
	handler http.Handler
}

type askRequest struct {
	TenderID string `json:"tender_id"`
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type infoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// New constructs a Server around an answer service.
func New(svc Asker) *Server {
	s := &Server{svc: svc}
	s.handler = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ask", s.handleAsk)
	return mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}

	s.writeJSON(w, http.StatusOK, infoResponse{
		Message: "Tender Information Extraction API",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"health": "/health",
			"ask":    "/ask (POST)",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}

	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Message: "Tender Information Extraction API is running",
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, http.MethodPost)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}
	if req.TenderID == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "tender_id is required"})
		return
	}
	if req.Question == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question is required"})
		return
	}

	start := time.Now()
	ans, err := s.svc.Ask(r.Context(), req.TenderID, req.Question)
	if err != nil {
		// Empty results and upstream failures both surface as a readable
		// answer, never as an error status.
		slog.Warn("ask failed", "tender_id", req.TenderID, "error", err)
		s.writeJSON(w, http.StatusOK, askResponse{Answer: answer.Fallback(req.TenderID, err)})
		return
	}

	slog.Info("question answered", "tender_id", req.TenderID, "duration", time.Since(start))
	s.writeJSON(w, http.StatusOK, askResponse{Answer: ans})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
