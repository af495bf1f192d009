package server

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/iajcodes/HireC/internal/types"
)

// maxUploadBytes bounds a single resume upload.
const maxUploadBytes = 10 << 20

// handleUpload accepts one resume file, runs it through the ingestion
// adapter, and prepends the resulting candidate to the caller's roster.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, email string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "a 'file' form field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	mediaType := header.Header.Get("Content-Type")

	candidate, err := s.extractor.Extract(r.Context(), data, mediaType)
	if err != nil {
		s.logger.Warn("ingestion failed",
			zap.String("email", email),
			zap.String("media_type", mediaType),
			zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rost, err := s.rosterFor(r.Context(), email)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	added, err := rost.Add(r.Context(), *candidate)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.logger.Info("candidate added",
		zap.String("email", email),
		zap.String("candidate_id", added.ID))
	s.jsonResponse(w, http.StatusCreated, added)
}

// handleListCandidates returns the roster, narrowed by the optional q
// search term.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request, email string) {
	rost, err := s.rosterFor(r.Context(), email)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidates := rost.Filter(r.URL.Query().Get("q"))
	s.jsonResponse(w, http.StatusOK, types.CandidateListResponse{
		Candidates: candidates,
		Count:      len(candidates),
	})
}

// handleGetCandidate returns one candidate and marks it selected for
// detail display, replacing any prior selection.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request, email string) {
	rost, err := s.rosterFor(r.Context(), email)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidate, err := rost.Select(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

// handleCloseSelection clears the detail selection.
func (s *Server) handleCloseSelection(w http.ResponseWriter, r *http.Request, email string) {
	rost, err := s.rosterFor(r.Context(), email)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rost.Deselect()
	w.WriteHeader(http.StatusNoContent)
}
