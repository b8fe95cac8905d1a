package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skill-profiler/internal/store"
)

// maxUploadBytes caps CV uploads at 10 MB.
const maxUploadBytes = 10 << 20

var validate = validator.New()

// ExtractCVURLRequest is the body of POST /extract/cv-url.
type ExtractCVURLRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	FileURL string `json:"file_url" validate:"required,url"`
}

// ExtractGitHubRequest is the body of POST /extract/github.
type ExtractGitHubRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// ExtractLinkedInRequest is the body of POST /extract/linkedin.
type ExtractLinkedInRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	ProfileURL string `json:"profile_url" validate:"required,url"`
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation. It writes the error response itself and reports success.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			verr := &ErrValidation{Field: invalid[0].Field(), Message: "failed " + invalid[0].Tag() + " validation"}
			s.errorResponse(w, HTTPStatus(verr), verr.Error())
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

// supportedUploadType reports whether an upload's declared content type can
// plausibly carry a CV document. Unknown and generic types pass through;
// only clearly non-document media is rejected.
func supportedUploadType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return true
	}
	for _, prefix := range []string{"image/", "audio/", "video/"} {
		if strings.HasPrefix(mt, prefix) {
			return false
		}
	}
	return true
}

// handleExtractCV accepts a multipart CV upload and runs the synchronous
// extraction pipeline: upload, extract, merge, persist.
func (s *Server) handleExtractCV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		verr := &ErrValidation{Field: "user_id", Message: "is required"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		verr := &ErrValidation{Field: "file", Message: "is required"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}
	defer func() { _ = file.Close() }()

	mimeType := header.Header.Get("Content-Type")
	if !supportedUploadType(mimeType) {
		uerr := &ErrUnsupportedMedia{ContentType: mimeType}
		s.errorResponse(w, HTTPStatus(uerr), uerr.Error())
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	result, err := s.orch.ExtractFromCVFile(r.Context(), userID, data, header.Filename, mimeType)
	if err != nil {
		log.Printf("[server] CV extraction failed for %s: %v", userID, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleExtractCVURL queues extraction of a CV reachable at a URL.
func (s *Server) handleExtractCVURL(w http.ResponseWriter, r *http.Request) {
	var req ExtractCVURLRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	queued, err := s.orch.ExtractFromCVByURL(req.UserID, req.FileURL)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusAccepted, queued)
}

// handleExtractGitHub queues extraction from a GitHub account.
func (s *Server) handleExtractGitHub(w http.ResponseWriter, r *http.Request) {
	var req ExtractGitHubRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	queued, err := s.orch.ExtractFromGitHub(req.UserID, req.Username)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusAccepted, queued)
}

// handleExtractLinkedIn validates the profile URL and queues extraction.
// An invalid URL is rejected here; nothing is queued.
func (s *Server) handleExtractLinkedIn(w http.ResponseWriter, r *http.Request) {
	var req ExtractLinkedInRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	queued, err := s.orch.ExtractFromLinkedIn(req.UserID, req.ProfileURL)
	if err != nil {
		// Covers ErrInvalidLinkedInURL and missing fields alike.
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusAccepted, queued)
}

// handleGetJob returns the current job record for polling.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, ok := s.orch.GetJobStatus(jobID)
	if !ok {
		nf := &ErrJobNotFound{JobID: jobID}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleGetProfile returns the merged skill profile for a user.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	profile, err := s.profiles.Get(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		nf := &ErrProfileNotFound{UserID: userID}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}
	if err != nil {
		log.Printf("[server] failed to load profile %s: %v", userID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}
