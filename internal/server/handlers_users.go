package server

import (
	"net/http"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

// userView is the client-facing shape of a user record.
type userView struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func viewOf(user *model.User) userView {
	return userView{Id: user.Id, Name: user.Name, Email: user.Email}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in service.SignupInput
	if !decodeBody(w, r, &in) {
		return
	}

	user, err := s.users.Signup(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    viewOf(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !decodeBody(w, r, &in) {
		return
	}

	user, token, err := s.users.Login(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    viewOf(user),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	user, err := s.users.GetUser(r.Context(), claims.UID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, viewOf(user))
}
