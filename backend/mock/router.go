package mock

import (
	"net/http"
	"strings"
)

// Handler routes HTTP requests to the mock endpoints.
type Handler struct {
	Service *Service
}

// ServeHTTP dispatches incoming HTTP requests based on URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := h.Service
	switch {
	case r.URL.Path == "/api/v1/user/me":
		s.Probes.Add(1)
		if s.MeHandler != nil {
			s.MeHandler(w, r)
		} else {
			s.defaultMeHandler(w, r)
		}
	case r.URL.Path == "/api/v1/auth/login":
		s.Logins.Add(1)
		if s.LoginHandler != nil {
			s.LoginHandler(w, r)
		} else {
			s.defaultLoginHandler(w, r)
		}
	case r.URL.Path == "/api/v1/auth/logout":
		s.Logouts.Add(1)
		if s.LogoutHandler != nil {
			s.LogoutHandler(w, r)
		} else {
			s.defaultLogoutHandler(w, r)
		}
	case strings.HasPrefix(r.URL.Path, "/api/v1/requests"), strings.HasPrefix(r.URL.Path, "/api/v1/user/"):
		if s.RequestsHandler != nil {
			s.RequestsHandler(w, r)
		} else {
			s.defaultRequestsHandler(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}
