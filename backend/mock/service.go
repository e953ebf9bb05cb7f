package mock

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/viant/sessionauth/schema"
)

// SessionCookie is the name of the cookie carrying the mock session id.
const SessionCookie = "session"

// Service simulates the dashboard backend.
type Service struct {
	PrivateKey *rsa.PrivateKey
	Issuer     string
	ClientID   string

	MeHandler       func(w http.ResponseWriter, r *http.Request)
	LoginHandler    func(w http.ResponseWriter, r *http.Request)
	LogoutHandler   func(w http.ResponseWriter, r *http.Request)
	RequestsHandler func(w http.ResponseWriter, r *http.Request)

	Probes  atomic.Int32
	Logins  atomic.Int32
	Logouts atomic.Int32

	mux      sync.RWMutex
	users    map[string]*schema.User
	sessions map[string]string
	requests map[string]*storedRequest
	order    []string
}

type Option func(s *Service)

// WithClientID sets the expected credential audience
func WithClientID(clientID string) Option {
	return func(s *Service) {
		s.ClientID = clientID
	}
}

// NewService creates a mock backend with a fresh signing key.
func NewService(opts ...Option) (*Service, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %v", err)
	}
	ret := &Service{
		PrivateKey: privateKey,
		Issuer:     "https://accounts.mock.test",
		ClientID:   "test_client_id",
		users:      map[string]*schema.User{},
		sessions:   map[string]string{},
		requests:   map[string]*storedRequest{},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret, nil
}

// Register registers the handler onto the given ServeMux.
func (s *Service) Register(mux *http.ServeMux) {
	mux.Handle("/", &Handler{Service: s})
}

// Handler returns an http.Handler for all mock endpoints.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// StartSession creates a session for user and returns its id.
func (s *Service) StartSession(user *schema.User) string {
	s.mux.Lock()
	defer s.mux.Unlock()
	u := *user
	s.users[u.ID] = &u
	id := newID()
	s.sessions[id] = u.ID
	return id
}

// Sessions returns the number of live sessions.
func (s *Service) Sessions() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return len(s.sessions)
}

func (s *Service) sessionUser(r *http.Request) (*schema.User, string) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, ""
	}
	s.mux.RLock()
	defer s.mux.RUnlock()
	userID, ok := s.sessions[cookie.Value]
	if !ok {
		return nil, ""
	}
	user, ok := s.users[userID]
	if !ok {
		return nil, cookie.Value
	}
	u := *user
	return &u, cookie.Value
}
