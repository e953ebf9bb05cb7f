package mock

import (
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/viant/sessionauth/schema"
)

type storedRequest struct {
	schema.Request
	source []byte
	logs   string
	report []byte
}

// AddRequest seeds a tracked request and returns its id.
func (s *Service) AddRequest(userID, fileName string, source []byte, logs string, report []byte) string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.addRequest(userID, fileName, source, logs, report)
}

func (s *Service) addRequest(userID, fileName string, source []byte, logs string, report []byte) string {
	id := newID()
	s.requests[id] = &storedRequest{
		Request: schema.Request{
			ID:        id,
			UserID:    userID,
			Status:    schema.RequestPending,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			FileName:  fileName,
		},
		source: source,
		logs:   logs,
		report: report,
	}
	s.order = append(s.order, id)
	return id
}

// SetRequestStatus updates a seeded request status.
func (s *Service) SetRequestStatus(id, status string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if req, ok := s.requests[id]; ok {
		req.Status = status
	}
}

// defaultRequestsHandler serves /api/v1/user/{id}/requests and /api/v1/requests[/{id}[/logs|source|report]]
func (s *Service) defaultRequestsHandler(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// parts: api v1 ...
	if len(parts) < 3 {
		http.NotFound(w, r)
		return
	}
	parts = parts[2:]
	switch {
	case len(parts) == 3 && parts[0] == "user" && parts[2] == "requests":
		s.userRequests(w, r, parts[1])
	case len(parts) == 1 && parts[0] == "requests":
		s.listRequests(w, r)
	case len(parts) == 2 && parts[0] == "requests":
		s.getRequest(w, r, parts[1])
	case len(parts) == 3 && parts[0] == "requests":
		s.requestArtifact(w, r, parts[1], parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (s *Service) userRequests(w http.ResponseWriter, r *http.Request, userID string) {
	user, _ := s.sessionUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if user.ID != userID {
		writeError(w, http.StatusForbidden, "Unauthorized")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.mux.RLock()
		var result = make([]schema.Request, 0)
		for _, id := range s.order {
			if req := s.requests[id]; req.UserID == userID {
				result = append(result, req.Request)
			}
		}
		s.mux.RUnlock()
		writeJSON(w, http.StatusOK, result)
	case http.MethodPut:
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file provided")
			return
		}
		defer file.Close()
		if !strings.HasSuffix(header.Filename, ".sol") {
			writeError(w, http.StatusBadRequest, "Invalid file type")
			return
		}
		source, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid file")
			return
		}
		s.mux.Lock()
		id := s.addRequest(userID, header.Filename, source, "", nil)
		created := s.requests[id].Request
		s.mux.Unlock()
		writeJSON(w, http.StatusOK, created)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Service) listRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 50
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	offset, _ := strconv.Atoi(query.Get("offset"))
	status := query.Get("status")

	s.mux.RLock()
	var matched []schema.Request
	for _, id := range s.order {
		if req := s.requests[id]; status == "" || req.Status == status {
			matched = append(matched, req.Request)
		}
	}
	s.mux.RUnlock()
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt < matched[j].CreatedAt })
	result := make([]schema.Request, 0)
	if offset < len(matched) {
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		result = append(result, matched[offset:end]...)
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Service) lookupRequest(id string) (*storedRequest, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	req, ok := s.requests[id]
	return req, ok
}

func (s *Service) getRequest(w http.ResponseWriter, r *http.Request, id string) {
	req, ok := s.lookupRequest(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Request not found")
		return
	}
	writeJSON(w, http.StatusOK, req.Request)
}

func (s *Service) requestArtifact(w http.ResponseWriter, r *http.Request, id, artifact string) {
	req, ok := s.lookupRequest(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Request not found")
		return
	}
	switch artifact {
	case "logs":
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(req.logs))
	case "source":
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write(req.source)
	case "report":
		if len(req.report) == 0 {
			writeError(w, http.StatusNotFound, "Report not found")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(req.report)
	default:
		http.NotFound(w, r)
	}
}
