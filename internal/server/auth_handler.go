package server

import (
	"encoding/json"
	"net/http"

	"github.com/iajcodes/HireC/internal/types"
)

// handleLogin establishes a session for the submitted email and returns it
// with a bearer token. The password field is accepted but its verification
// is the gate's concern; the default verifier accepts anything.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.handleAuth(w, r, false)
}

// handleSignup has identical effect to login.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	s.handleAuth(w, r, true)
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request, signup bool) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	var (
		user types.User
		err  error
	)
	if signup {
		user, err = s.gate.Signup(r.Context(), req.Email, req.Password)
	} else {
		user, err = s.gate.Login(r.Context(), req.Email, req.Password)
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.tokens.GenerateToken(user.Email)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	status := http.StatusOK
	if signup {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, types.LoginResponse{User: &user, Token: token})
}

// handleLogout clears the session marker. The roster is retained and the
// cached instance is dropped so the next login reloads from the store.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if user, err := s.gate.CurrentSession(r.Context()); err == nil && user != nil {
		s.rosters.Delete(user.Email)
	}

	if err := s.gate.Logout(r.Context()); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSession returns the persisted current session, if any.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	user, err := s.gate.CurrentSession(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "no active session")
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}
