// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api serves submission scoring and validation over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pdiddy/guide-curator/internal/quality"
	"github.com/pdiddy/guide-curator/internal/store"
	"github.com/pdiddy/guide-curator/internal/submission"
	"github.com/pdiddy/guide-curator/pkg/types"
)

const maxBodyBytes = 1 << 20

// Validator is the submission entry point.
type Validator interface {
	Score(sub quality.Submission) quality.Result
	Validate(ctx context.Context, req submission.Request) (submission.Response, error)
}

// DraftReader looks up stored drafts.
type DraftReader interface {
	GetDraft(ctx context.Context, id string) (types.DraftDocument, error)
}

// Server holds the HTTP handlers.
type Server struct {
	validator Validator
	drafts    DraftReader
	log       *zap.Logger
}

// New builds a Server. drafts may be nil, which disables GET /drafts/{id}.
func New(v Validator, drafts DraftReader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{validator: v, drafts: drafts, log: logger}
}

// Routes returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/submissions", func(r chi.Router) {
		r.Post("/score", s.handleScore)
		r.Post("/validate", s.handleValidate)
	})
	if s.drafts != nil {
		r.Get("/drafts/{id}", s.handleGetDraft)
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var sub quality.Submission
	if !decode(w, r, &sub) {
		return
	}
	writeJSON(w, http.StatusOK, s.validator.Score(sub))
}

type matchView struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Similarity int    `json:"similarity"`
}

type acceptedView struct {
	Accepted bool           `json:"accepted"`
	DraftID  string         `json:"draftId"`
	Slug     string         `json:"slug"`
	Quality  quality.Result `json:"quality"`
}

type warningView struct {
	Accepted bool           `json:"accepted"`
	Warning  string         `json:"warning"`
	Matches  []matchView    `json:"matches"`
	Quality  quality.Result `json:"quality"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req submission.Request
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.validator.Validate(r.Context(), req)
	if err != nil {
		if errors.Is(err, submission.ErrInvalid) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("validating submission", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not validate submission")
		return
	}

	if !resp.Accepted {
		matches := make([]matchView, 0, len(resp.Matches))
		for _, m := range resp.Matches {
			matches = append(matches, matchView{ID: m.ExistingID, Title: m.ExistingTitle, Similarity: m.OverallSimilarity})
		}
		writeJSON(w, http.StatusConflict, warningView{Warning: resp.Warning, Matches: matches, Quality: resp.Quality})
		return
	}
	writeJSON(w, http.StatusCreated, acceptedView{Accepted: true, DraftID: resp.DraftID, Slug: resp.Slug, Quality: resp.Quality})
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := s.drafts.GetDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "draft not found")
			return
		}
		s.log.Error("loading draft", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load draft")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
