// Package httpapi is the HTTP front door: health/info, the companion
// UI's crochet endpoints, metrics, and the mounted MCP transport.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/geppie/lilazul/internal/journal"
	"github.com/geppie/lilazul/internal/logging"
	"github.com/geppie/lilazul/internal/observability"
	"github.com/geppie/lilazul/internal/store"
)

// Store is the record-store surface the REST endpoints need.
type Store interface {
	UpsertWorkItem(ctx context.Context, title, status string) (store.WorkItem, error)
	ListWorkItems(ctx context.Context) ([]store.WorkItem, error)
}

// Handler serves the REST surface and hosts the MCP transport.
type Handler struct {
	store   Store
	journal *journal.Journal
	mcp     http.Handler
	version string
	started time.Time
}

// NewHandler builds a Handler. journal and mcp may be nil.
func NewHandler(st Store, j *journal.Journal, mcp http.Handler, version string) *Handler {
	return &Handler{
		store:   st,
		journal: j,
		mcp:     mcp,
		version: version,
		started: time.Now(),
	}
}

// Routes wires endpoints to a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.root)
	mux.HandleFunc("/crochet", h.crochet)
	mux.Handle("/metrics", observability.Handler())
	if h.mcp != nil {
		mux.Handle("/mcp", h.mcp)
	}
	return mux
}

// root reports liveness plus a few process stats for the companion UI.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"ok": false, "error": "unsupported method"})
		return
	}

	info := map[string]any{
		"ok":             true,
		"msg":            "lilazul alive + MCP mounted at /mcp 💜",
		"version":        h.version,
		"uptime_seconds": int(time.Since(h.started).Seconds()),
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		stats := map[string]any{}
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			stats["rss_bytes"] = mem.RSS
		}
		if cpu, err := proc.CPUPercent(); err == nil {
			stats["cpu_percent"] = cpu
		}
		info["process"] = stats
	}

	observability.RecordHTTPRequest("/", r.Method, http.StatusOK)
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) crochet(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createWorkItem(w, r)
	case http.MethodGet:
		h.listWorkItems(w, r)
	default:
		observability.RecordHTTPRequest("/crochet", r.Method, http.StatusMethodNotAllowed)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"ok": false, "error": "unsupported method"})
	}
}

type createWorkItemRequest struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

// createWorkItem is the only endpoint with local validation: a missing
// title or status is answered in-band, without touching the store.
func (h *Handler) createWorkItem(w http.ResponseWriter, r *http.Request) {
	var req createWorkItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordHTTPRequest("/crochet", r.Method, http.StatusOK)
		writeJSON(w, http.StatusOK, map[string]any{"ok": false, "error": "Missing title or status"})
		return
	}
	if req.Title == "" || req.Status == "" {
		observability.RecordHTTPRequest("/crochet", r.Method, http.StatusOK)
		writeJSON(w, http.StatusOK, map[string]any{"ok": false, "error": "Missing title or status"})
		return
	}

	if h.store == nil {
		observability.RecordHTTPRequest("/crochet", r.Method, http.StatusInternalServerError)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": store.ErrUnavailable.Error()})
		return
	}
	item, err := h.store.UpsertWorkItem(r.Context(), req.Title, req.Status)
	if err != nil {
		observability.RecordHTTPRequest("/crochet", r.Method, http.StatusInternalServerError)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	if h.journal != nil {
		if jerr := h.journal.Record("rest", "POST /crochet", "title="+req.Title); jerr != nil {
			logging.Error("httpapi", "journal write failed: %v", jerr)
		}
	}

	observability.RecordHTTPRequest("/crochet", r.Method, http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "item": item})
}

func (h *Handler) listWorkItems(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		observability.RecordHTTPRequest("/crochet", r.Method, http.StatusInternalServerError)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": store.ErrUnavailable.Error()})
		return
	}
	items, err := h.store.ListWorkItems(r.Context())
	if err != nil {
		observability.RecordHTTPRequest("/crochet", r.Method, http.StatusInternalServerError)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	observability.RecordHTTPRequest("/crochet", r.Method, http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "items": items})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error("httpapi", "encode response: %v", err)
	}
}
