package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mbertrand/piquante/internal/server/models"
)

// maxUploadBytes caps multipart request bodies; images above this are rejected.
const maxUploadBytes = 10 << 20

func (s *Server) handleListSauces(w http.ResponseWriter, r *http.Request) {
	sauces, err := s.sauces.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sauces)
}

func (s *Server) handleGetSauce(w http.ResponseWriter, r *http.Request) {
	sauce, err := s.sauces.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sauce)
}

func (s *Server) handleCreateSauce(w http.ResponseWriter, r *http.Request) {
	input, filename, image, ok := s.readMultipartSauce(w, r)
	if !ok {
		return
	}

	sauce, err := s.sauces.Create(r.Context(), callerID(r), input, filename, image)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sauce)
}

func (s *Server) handleUpdateSauce(w http.ResponseWriter, r *http.Request) {
	var (
		input    models.SauceInput
		filename string
		image    []byte
	)

	// With a new image the client sends multipart, otherwise plain JSON.
	if isMultipart(r) {
		var ok bool
		input, filename, image, ok = s.readMultipartSauce(w, r)
		if !ok {
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
	}

	sauce, err := s.sauces.Update(r.Context(), chi.URLParam(r, "id"), callerID(r), input, filename, image)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sauce)
}

func (s *Server) handleDeleteSauce(w http.ResponseWriter, r *http.Request) {
	if err := s.sauces.Delete(r.Context(), chi.URLParam(r, "id"), callerID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "sauce deleted"})
}

type voteRequest struct {
	UserID string `json:"userId"`
	Like   int    `json:"like"`
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	switch req.Like {
	case models.VoteLike, models.VoteClear, models.VoteDislike:
	default:
		writeError(w, http.StatusBadRequest, "like must be -1, 0 or 1")
		return
	}

	// The vote is attributed to the authenticated caller; the userId field
	// in the body is ignored.
	if err := s.sauces.Vote(r.Context(), chi.URLParam(r, "id"), callerID(r), req.Like); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "vote recorded"})
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// readMultipartSauce parses a multipart body carrying the sauce JSON in the
// "sauce" form field and the image bytes in the "image" file field. On
// failure it writes the error response and returns ok=false. A missing image
// part yields empty bytes; the service decides whether that is acceptable.
func (s *Server) readMultipartSauce(w http.ResponseWriter, r *http.Request) (models.SauceInput, string, []byte, bool) {
	var input models.SauceInput

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return input, "", nil, false
	}

	if err := json.Unmarshal([]byte(r.FormValue("sauce")), &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid sauce payload")
		return input, "", nil, false
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return input, "", nil, true
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image upload")
		return input, "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error(r.Context(), "reading uploaded image", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return input, "", nil, false
	}

	return input, header.Filename, data, true
}
