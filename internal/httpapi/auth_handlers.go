package httpapi

import (
	"net/http"

	"github.com/UnknownOlympus/pitstop/internal/models"
)

type registrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *server) handleUserRegistration(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, s.log, err)
		return
	}

	acc, err := s.accounts.RegisterUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, acc)
}

func (s *server) handleLogin(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, s.log, err)
			return
		}

		token, err := s.accounts.Login(r.Context(), req.Email, req.Password, role)
		if err != nil {
			writeError(w, r, s.log, err)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}
