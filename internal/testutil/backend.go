// Package testutil provides shared test helpers: discard loggers and an
// in-memory fake of the document-indexing backend's admin API.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// FakeBackend is an in-memory stand-in for the admin REST API, close
// enough for console and client tests: pagination with items/total_items,
// {detail} error bodies, and minimal-diff writes.
//
// All exported methods are safe for concurrent use.
type FakeBackend struct {
	t      *testing.T
	server *httptest.Server

	mu sync.Mutex

	// Collections served by the fake. Tests set these up directly.
	Attempts      []map[string]any
	AttemptErrors []map[string]any
	EntityTypes   []map[string]any
	Files         []map[string]any
	Channels      []map[string]any
	Guilds        []map[string]any

	// OmitErrorTotal makes the errors endpoint report total_items: 0,
	// exercising the client-side total approximation.
	OmitErrorTotal bool

	// FailWith, when non-empty, makes every write endpoint respond 400
	// with this detail message.
	FailWith string

	// Request counters keyed by "METHOD path-pattern".
	requests map[string]int

	// Captured bodies of write requests, most recent last.
	WriteBodies []json.RawMessage
}

// NewFakeBackend starts the fake server. It shuts down with the test.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{t: t, requests: make(map[string]int)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/manage/admin/connector/{id}/index-attempts", f.listAttempts)
	mux.HandleFunc("GET /api/manage/admin/index-attempt/{id}/errors", f.listErrors)
	mux.HandleFunc("GET /api/admin/kg/entity-types", f.getEntityTypes)
	mux.HandleFunc("PUT /api/admin/kg/entity-types", f.putEntityTypes)
	mux.HandleFunc("GET /api/manage/admin/connector/{id}/files", f.getFiles)
	mux.HandleFunc("PUT /api/manage/admin/connector/{id}/files", f.putFiles)
	mux.HandleFunc("GET /api/manage/admin/discord-bot/channels", f.getChannels)
	mux.HandleFunc("PATCH /api/manage/admin/discord-bot/channels", f.patchChannels)
	mux.HandleFunc("GET /api/manage/admin/discord-bot/guilds", f.getGuilds)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the fake server's base URL.
func (f *FakeBackend) URL() string { return f.server.URL }

// Requests returns how many requests matched the given method and pattern,
// e.g. Requests("PUT", "/api/admin/kg/entity-types").
func (f *FakeBackend) Requests(method, pattern string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[method+" "+pattern]
}

func (f *FakeBackend) count(method, pattern string) {
	f.requests[method+" "+pattern]++
}

func (f *FakeBackend) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		f.t.Errorf("fake backend: encoding response: %v", err)
	}
}

func (f *FakeBackend) writeDetail(w http.ResponseWriter, status int, detail string) {
	f.writeJSON(w, status, map[string]string{"detail": detail})
}

// pageParams reads page_num/page_size, defaulting to 0/10.
func pageParams(r *http.Request) (pageNum, pageSize int) {
	pageNum, _ = strconv.Atoi(r.URL.Query().Get("page_num"))
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize <= 0 {
		pageSize = 10
	}
	return pageNum, pageSize
}

// paginate slices one page out of a collection.
func paginate(items []map[string]any, pageNum, pageSize int) []map[string]any {
	start := pageNum * pageSize
	if start >= len(items) {
		return []map[string]any{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

func (f *FakeBackend) listAttempts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GET", "/api/manage/admin/connector/{id}/index-attempts")

	pageNum, pageSize := pageParams(r)
	f.writeJSON(w, http.StatusOK, map[string]any{
		"items":       paginate(f.Attempts, pageNum, pageSize),
		"total_items": len(f.Attempts),
	})
}

func (f *FakeBackend) listErrors(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GET", "/api/manage/admin/index-attempt/{id}/errors")

	pageNum, pageSize := pageParams(r)
	total := len(f.AttemptErrors)
	if f.OmitErrorTotal {
		total = 0
	}
	f.writeJSON(w, http.StatusOK, map[string]any{
		"items":       paginate(f.AttemptErrors, pageNum, pageSize),
		"total_items": total,
	})
}

func (f *FakeBackend) getEntityTypes(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GET", "/api/admin/kg/entity-types")
	f.writeJSON(w, http.StatusOK, f.EntityTypes)
}

func (f *FakeBackend) putEntityTypes(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("PUT", "/api/admin/kg/entity-types")

	if f.FailWith != "" {
		f.writeDetail(w, http.StatusBadRequest, f.FailWith)
		return
	}

	var changed []map[string]any
	if err := f.captureBody(r, &changed); err != nil {
		f.writeDetail(w, http.StatusBadRequest, "malformed body")
		return
	}
	// Apply row-by-row onto the stored collection, keyed by name.
	for _, row := range changed {
		name, _ := row["name"].(string)
		for i, existing := range f.EntityTypes {
			if existing["name"] == name {
				f.EntityTypes[i] = row
				break
			}
		}
	}
	f.writeJSON(w, http.StatusOK, changed)
}

func (f *FakeBackend) getFiles(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GET", "/api/manage/admin/connector/{id}/files")
	f.writeJSON(w, http.StatusOK, f.Files)
}

func (f *FakeBackend) putFiles(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("PUT", "/api/manage/admin/connector/{id}/files")

	if f.FailWith != "" {
		f.writeDetail(w, http.StatusBadRequest, f.FailWith)
		return
	}
	var body map[string]json.RawMessage
	if err := f.captureBody(r, &body); err != nil {
		f.writeDetail(w, http.StatusBadRequest, "malformed body")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (f *FakeBackend) getChannels(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GET", "/api/manage/admin/discord-bot/channels")
	f.writeJSON(w, http.StatusOK, f.Channels)
}

func (f *FakeBackend) patchChannels(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("PATCH", "/api/manage/admin/discord-bot/channels")

	if f.FailWith != "" {
		f.writeDetail(w, http.StatusBadRequest, f.FailWith)
		return
	}
	var changed []map[string]any
	if err := f.captureBody(r, &changed); err != nil {
		f.writeDetail(w, http.StatusBadRequest, "malformed body")
		return
	}
	for _, row := range changed {
		id, _ := row["id"].(string)
		for i, existing := range f.Channels {
			if existing["id"] == id {
				f.Channels[i] = row
				break
			}
		}
	}
	f.writeJSON(w, http.StatusOK, changed)
}

func (f *FakeBackend) getGuilds(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GET", "/api/manage/admin/discord-bot/guilds")
	f.writeJSON(w, http.StatusOK, f.Guilds)
}

// captureBody decodes a write body and records the raw payload for
// assertions. Caller must hold f.mu.
func (f *FakeBackend) captureBody(r *http.Request, into any) error {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return err
	}
	f.WriteBodies = append(f.WriteBodies, raw)
	return json.Unmarshal(raw, into)
}
