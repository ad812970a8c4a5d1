package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mbertrand/piquante/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if _, err := s.users.Register(r.Context(), req.Email, req.Password); err != nil {
		s.logger.Warn(r.Context(), "signup failed", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "user created"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	session, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// an unknown email and a wrong password are indistinguishable to the caller
		if errors.Is(err, common.ErrorNotFound) {
			err = common.ErrorInvalidCredentials
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"userId": session.UserID,
		"token":  session.Token,
	})
}
