package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mbertrand/piquante/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, errorResponse{Error: msg})
}

// writeServiceError maps the domain error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorDuplicateUser):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, common.ErrorVoteConflict):
		writeError(w, http.StatusConflict, "vote already cast")
	case errors.Is(err, common.ErrorInvalidCredentials), errors.Is(err, common.ErrorInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, common.ErrorMissingImage):
		writeError(w, http.StatusBadRequest, "an image file is required")
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "invalid input")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
