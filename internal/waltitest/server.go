// Package waltitest provides an in-process fake of the Walti API.
package waltitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

// QueuedScan records one POST to the scans endpoint.
type QueuedScan struct {
	Target string
	Plugin string
}

// Server is a fake Walti API. Targets are served verbatim, so tests can
// feed malformed payloads too.
type Server struct {
	Key    string
	Secret string

	mu      sync.Mutex
	targets []json.RawMessage
	byName  map[string]json.RawMessage
	// queueStatus maps "target/plugin" to the status returned on queue;
	// unlisted pairs get 201.
	queueStatus map[string]int
	queued      []QueuedScan
	lastHeaders http.Header
}

// New returns a fake accepting only key/secret.
func New(key, secret string) *Server {
	return &Server{
		Key:         key,
		Secret:      secret,
		byName:      make(map[string]json.RawMessage),
		queueStatus: make(map[string]int),
	}
}

// AddTarget registers a raw target object. Its "name" field is used for
// lookups; an unnamed payload is listed but cannot be fetched.
func (s *Server) AddTarget(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := json.RawMessage(raw)
	s.targets = append(s.targets, msg)
	var head struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(msg, &head) == nil && head.Name != "" {
		s.byName[head.Name] = msg
	}
}

// SetQueueStatus makes queueing plugin on target answer with status.
func (s *Server) SetQueueStatus(target, plugin string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queueStatus[target+"/"+plugin] = status
}

// Queued returns the scans queued so far.
func (s *Server) Queued() []QueuedScan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]QueuedScan(nil), s.queued...)
}

// LastHeaders returns the headers of the most recent request.
func (s *Server) LastHeaders() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeaders.Clone()
}

// Handler returns the chi router serving the /v1 API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recordHeaders)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/me", s.me)
		r.Group(func(r chi.Router) {
			r.Use(s.requireCredentials)
			r.Get("/targets", s.listTargets)
			r.Get("/targets/{target}", s.getTarget)
			r.Post("/targets/{target}/plugins/{plugin}/scans", s.queueScan)
		})
	})
	return r
}

// Start serves the fake on a local httptest server. The caller closes it.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.Handler())
}

func (s *Server) recordHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.lastHeaders = r.Header.Clone()
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authorized(r *http.Request) bool {
	return r.Header.Get("Api-Key") == s.Key && r.Header.Get("Api-Secret") == s.Secret
}

func (s *Server) requireCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			JSONError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// me answers 404 for unknown credentials, as the real service does.
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		JSONError(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"api_key": s.Key})
}

func (s *Server) listTargets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := append([]json.RawMessage{}, s.targets...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getTarget(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "target")
	s.mu.Lock()
	raw, ok := s.byName[name]
	s.mu.Unlock()
	if !ok {
		JSONError(w, "target not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

func (s *Server) queueScan(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")
	plugin := chi.URLParam(r, "plugin")

	s.mu.Lock()
	_, known := s.byName[target]
	status, forced := s.queueStatus[target+"/"+plugin]
	if !forced {
		status = http.StatusCreated
	}
	if known && status == http.StatusCreated {
		s.queued = append(s.queued, QueuedScan{Target: target, Plugin: plugin})
	}
	s.mu.Unlock()

	if !known {
		JSONError(w, "target not found", http.StatusNotFound)
		return
	}
	if status != http.StatusCreated {
		JSONError(w, http.StatusText(status), status)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "queued"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
