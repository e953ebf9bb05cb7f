package mock

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/viant/sessionauth/schema"
)

func newID() string {
	return uuid.NewString()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, &schema.ErrorResponse{Error: message})
}

// defaultMeHandler handles /api/v1/user/me
func (s *Service) defaultMeHandler(w http.ResponseWriter, r *http.Request) {
	user, sessionID := s.sessionUser(r)
	if user == nil {
		if sessionID != "" {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// defaultLoginHandler handles /api/v1/auth/login
func (s *Service) defaultLoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	request := &schema.LoginRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeError(w, http.StatusBadRequest, "No JSON data")
		return
	}
	if request.Token == "" {
		writeError(w, http.StatusBadRequest, "No token provided")
		return
	}
	user, err := s.verify(request.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	sessionID := s.StartSession(user)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, user)
}

// defaultLogoutHandler handles /api/v1/auth/logout
func (s *Service) defaultLogoutHandler(w http.ResponseWriter, r *http.Request) {
	user, sessionID := s.sessionUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	s.mux.Lock()
	delete(s.sessions, sessionID)
	s.mux.Unlock()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
