package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geppie/lilazul/internal/store"
)

type fakeStore struct {
	items      []store.WorkItem
	upserts    int
	upsertErr  error
	listErr    error
}

func (f *fakeStore) UpsertWorkItem(_ context.Context, title, status string) (store.WorkItem, error) {
	if f.upsertErr != nil {
		return store.WorkItem{}, f.upsertErr
	}
	f.upserts++
	item := store.WorkItem{ID: "item-1", Title: title, Status: status}
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeStore) ListWorkItems(_ context.Context) ([]store.WorkItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestRootHealth(t *testing.T) {
	h := NewHandler(&fakeStore{}, nil, nil, "test")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["ok"])
	assert.Contains(t, body["msg"], "MCP mounted at /mcp")
}

func TestCreateWorkItem(t *testing.T) {
	fs := &fakeStore{}
	h := NewHandler(fs, nil, nil, "test")

	req := httptest.NewRequest(http.MethodPost, "/crochet",
		strings.NewReader(`{"title":"scarf","status":"wip"}`))
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, 1, fs.upserts)
}

func TestCreateWorkItemMissingStatus(t *testing.T) {
	fs := &fakeStore{}
	h := NewHandler(fs, nil, nil, "test")

	req := httptest.NewRequest(http.MethodPost, "/crochet",
		strings.NewReader(`{"title":"scarf"}`))
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Missing title or status", body["error"])
	// validation failure must not touch the store
	assert.Equal(t, 0, fs.upserts)
}

func TestCreateWorkItemMalformedBody(t *testing.T) {
	fs := &fakeStore{}
	h := NewHandler(fs, nil, nil, "test")

	req := httptest.NewRequest(http.MethodPost, "/crochet", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, 0, fs.upserts)
}

func TestCreateWorkItemStoreError(t *testing.T) {
	fs := &fakeStore{upsertErr: errors.New("connection refused")}
	h := NewHandler(fs, nil, nil, "test")

	req := httptest.NewRequest(http.MethodPost, "/crochet",
		strings.NewReader(`{"title":"scarf","status":"wip"}`))
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, false, body["ok"])
}

func TestListWorkItems(t *testing.T) {
	fs := &fakeStore{items: []store.WorkItem{
		{ID: "item-1", Title: "scarf", Status: "wip"},
		{ID: "item-2", Title: "hat", Status: "done"},
	}}
	h := NewHandler(fs, nil, nil, "test")

	req := httptest.NewRequest(http.MethodGet, "/crochet", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["ok"])
	items, _ := body["items"].([]any)
	assert.Len(t, items, 2)
}

func TestUnknownPath(t *testing.T) {
	h := NewHandler(&fakeStore{}, nil, nil, "test")

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMCPMount(t *testing.T) {
	mounted := false
	mcp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mounted = true
		w.WriteHeader(http.StatusOK)
	})
	h := NewHandler(&fakeStore{}, nil, mcp, "test")

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	assert.True(t, mounted)
}
