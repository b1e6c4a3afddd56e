package http

import (
	"net/http"

	applog "selrs/internal/log"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is empty or invalid")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := s.gate.Login(req.Username, req.Password)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Login rejected",
			applog.FieldUsername, req.Username,
			applog.FieldClientIP, clientIP(r))
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.logger.InfoContext(r.Context(), "Login successful", applog.FieldUsername, req.Username)
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: token, Username: req.Username})
}
