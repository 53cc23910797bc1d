// Package backendtest provides an in-memory honeypot backend for tests.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Wikid82/snare/internal/models"
)

// Server is a fake of the backend REST API under /api/v1.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	nextID    uint
	campaigns map[uint]models.Campaign
	listeners map[uint]models.Listener
	sources   map[uint]models.Source
	hits      map[uint]models.Hit
	failures  map[string]failure
	requests  []string
}

type failure struct {
	status int
	body   string
}

// NewServer starts a fake backend that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		campaigns: map[uint]models.Campaign{},
		listeners: map[uint]models.Listener{},
		sources:   map[uint]models.Source{},
		hits:      map[uint]models.Hit{},
		failures:  map[string]failure{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/campaign", s.listCampaigns)
	mux.HandleFunc("POST /api/v1/campaign", s.createCampaign)
	mux.HandleFunc("GET /api/v1/campaign/{id}", s.getCampaign)
	mux.HandleFunc("PUT /api/v1/campaign/{id}", s.updateCampaign)
	mux.HandleFunc("DELETE /api/v1/campaign/{id}", s.deleteCampaign)
	mux.HandleFunc("GET /api/v1/listener", s.listListeners)
	mux.HandleFunc("POST /api/v1/listener", s.createListener)
	mux.HandleFunc("GET /api/v1/listener/{id}", s.getListener)
	mux.HandleFunc("PUT /api/v1/listener/{id}", s.updateListener)
	mux.HandleFunc("DELETE /api/v1/listener/{id}", s.deleteListener)
	mux.HandleFunc("GET /api/v1/source", s.listSources)
	mux.HandleFunc("POST /api/v1/source", s.createSource)
	mux.HandleFunc("GET /api/v1/source/{id}", s.getSource)
	mux.HandleFunc("PUT /api/v1/source/{id}", s.updateSource)
	mux.HandleFunc("DELETE /api/v1/source/{id}", s.deleteSource)
	mux.HandleFunc("GET /api/v1/hit", s.listHits)
	mux.HandleFunc("GET /api/v1/hit/{id}", s.getHit)
	mux.HandleFunc("DELETE /api/v1/hit/{id}", s.deleteHit)
	mux.HandleFunc("GET /api/v1/honeypot", s.listHoneypots)

	s.Server = httptest.NewServer(s.intercept(mux))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to hand to backend.NewClient.
func (s *Server) BaseURL() string {
	return s.URL + "/api/v1"
}

// Fail makes every "METHOD /path" request answer with status and body until
// cleared with Recover. path is relative to /api/v1, e.g. "/hit".
func (s *Server) Fail(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" /api/v1"+path] = failure{status: status, body: body}
}

// Recover clears every injected failure.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]failure{}
}

// Requests returns the "METHOD /path" log of received requests.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.requests = append(s.requests, key)
		f, failing := s.failures[key]
		s.mu.Unlock()

		if failing {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) id() uint {
	s.nextID++
	return s.nextID
}

// AddCampaign stores c, assigning ids to it and its honeypots.
func (s *Server) AddCampaign(c models.Campaign) models.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	s.stampCampaign(&c)
	s.campaigns[c.ID] = c
	return c
}

func (s *Server) stampCampaign(c *models.Campaign) {
	now := time.Now().UTC()
	if c.CreatedAt == nil {
		c.CreatedAt = &now
	}
	c.UpdatedAt = &now
	for i := range c.Honeypots {
		if c.Honeypots[i].ID == 0 {
			c.Honeypots[i].ID = s.id()
		}
		c.Honeypots[i].CampaignID = c.ID
	}
}

func (s *Server) AddListener(l models.Listener) models.Listener {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.id()
	now := time.Now().UTC()
	l.UpdatedAt = &now
	s.listeners[l.ID] = l
	return l
}

func (s *Server) AddSource(src models.Source) models.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	src.ID = s.id()
	s.sources[src.ID] = src
	return src
}

// AddHit stores h. A zero CreatedAt is set to now.
func (s *Server) AddHit(h models.Hit) models.Hit {
	s.mu.Lock()
	defer s.mu.Unlock()
	h.ID = s.id()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	s.hits[h.ID] = h
	return h
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": what + " not found"})
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	return uint(id), err == nil
}

func sortedKeys[T any](m map[uint]T) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func values[T any](m map[uint]T) []T {
	out := make([]T, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, m[k])
	}
	return out
}

func (s *Server) listCampaigns(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, values(s.campaigns))
}

func (s *Server) getCampaign(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	c, ok := s.campaigns[id]
	if !ok {
		notFound(w, "campaign")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) createCampaign(w http.ResponseWriter, r *http.Request) {
	var c models.Campaign
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if c.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	writeJSON(w, http.StatusCreated, s.AddCampaign(c))
}

func (s *Server) updateCampaign(w http.ResponseWriter, r *http.Request) {
	var c models.Campaign
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	existing, ok := s.campaigns[id]
	if !ok {
		notFound(w, "campaign")
		return
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	s.stampCampaign(&c)
	s.campaigns[id] = c
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCampaign(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	if _, ok := s.campaigns[id]; !ok {
		notFound(w, "campaign")
		return
	}
	delete(s.campaigns, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listListeners(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, values(s.listeners))
}

func (s *Server) getListener(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	l, ok := s.listeners[id]
	if !ok {
		notFound(w, "listener")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) createListener(w http.ResponseWriter, r *http.Request) {
	var l models.Listener
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, s.AddListener(l))
}

func (s *Server) updateListener(w http.ResponseWriter, r *http.Request) {
	var l models.Listener
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	if _, ok := s.listeners[id]; !ok {
		notFound(w, "listener")
		return
	}
	l.ID = id
	now := time.Now().UTC()
	l.UpdatedAt = &now
	s.listeners[id] = l
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) deleteListener(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	if _, ok := s.listeners[id]; !ok {
		notFound(w, "listener")
		return
	}
	delete(s.listeners, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listSources(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, values(s.sources))
}

func (s *Server) getSource(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	src, ok := s.sources[id]
	if !ok {
		notFound(w, "source")
		return
	}
	writeJSON(w, http.StatusOK, src)
}

func (s *Server) createSource(w http.ResponseWriter, r *http.Request) {
	var src models.Source
	if err := json.NewDecoder(r.Body).Decode(&src); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, s.AddSource(src))
}

func (s *Server) updateSource(w http.ResponseWriter, r *http.Request) {
	var src models.Source
	if err := json.NewDecoder(r.Body).Decode(&src); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	if _, ok := s.sources[id]; !ok {
		notFound(w, "source")
		return
	}
	src.ID = id
	s.sources[id] = src
	writeJSON(w, http.StatusOK, src)
}

func (s *Server) deleteSource(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	if _, ok := s.sources[id]; !ok {
		notFound(w, "source")
		return
	}
	delete(s.sources, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listHits(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, values(s.hits))
}

func (s *Server) getHit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	h, ok := s.hits[id]
	if !ok {
		notFound(w, "hit")
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) deleteHit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := pathID(r)
	if _, ok := s.hits[id]; !ok {
		notFound(w, "hit")
		return
	}
	delete(s.hits, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listHoneypots(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	honeypots := []models.Honeypot{}
	for _, c := range values(s.campaigns) {
		honeypots = append(honeypots, c.Honeypots...)
	}
	writeJSON(w, http.StatusOK, honeypots)
}

// String summarizes the stored records, handy in failure messages.
func (s *Server) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("backendtest{campaigns:%d listeners:%d sources:%d hits:%d}",
		len(s.campaigns), len(s.listeners), len(s.sources), len(s.hits))
}
