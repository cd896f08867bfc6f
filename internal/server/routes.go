package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/repoguide/repoguide/internal/db"
	"github.com/repoguide/repoguide/internal/digest"
	"github.com/repoguide/repoguide/internal/onboard"
	"github.com/repoguide/repoguide/internal/preflight"
	"github.com/repoguide/repoguide/internal/retriever"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"qdrant_url": s.cfg.QdrantURL,
	})
}

type indexRequest struct {
	Path string `json:"path"`
}

type indexResponse struct {
	Path          string `json:"path"`
	ChunksIndexed int    `json:"chunks_indexed"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	start := time.Now()
	n, err := s.indexer.Index(r.Context(), req.Path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.runs != nil {
		// History is best-effort; the indexing itself succeeded.
		s.runs.RecordRun(r.Context(), db.IndexRun{
			Path:       req.Path,
			Collection: s.cfg.Collection,
			Chunks:     n,
			Duration:   time.Since(start),
		})
	}

	writeJSON(w, http.StatusOK, indexResponse{Path: req.Path, ChunksIndexed: n})
}

type explainRequest struct {
	Question string `json:"question"`
	Scope    string `json:"scope,omitempty"`
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	ans, err := s.explainer.Explain(r.Context(), req.Question, req.Scope)
	if err != nil {
		// Missing grounding is a normal negative outcome, not a server error.
		if errors.Is(err, retriever.ErrNoGrounding) {
			writeError(w, http.StatusNotFound, "NEEDS_MORE_CONTEXT")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ans)
}

type preflightRequest struct {
	Path string `json:"path"`
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	var req preflightRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	writeJSON(w, http.StatusOK, preflight.Run(req.Path))
}

type changeDigestRequest struct {
	Path string `json:"path"`
	Days int    `json:"days,omitempty"`
}

func (s *Server) handleChangeDigest(w http.ResponseWriter, r *http.Request) {
	var req changeDigestRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}
	if req.Days == 0 {
		req.Days = digest.DefaultDays
	}

	writeJSON(w, http.StatusOK, digest.Run(req.Path, req.Days))
}

type onboardRequest struct {
	Path  string `json:"path"`
	Index bool   `json:"index,omitempty"`
}

func (s *Server) handleOnboard(w http.ResponseWriter, r *http.Request) {
	var req onboardRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	report, err := onboard.Run(r.Context(), req.Path, onboard.Options{
		Index:     req.Index,
		IndexFn:   s.indexer.Index,
		APIPort:   s.cfg.Port,
		QdrantURL: s.cfg.QdrantURL,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeJSON(w, http.StatusOK, []db.IndexRun{})
		return
	}

	runs, err := s.runs.RecentRuns(r.Context(), 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []db.IndexRun{}
	}

	writeJSON(w, http.StatusOK, runs)
}
