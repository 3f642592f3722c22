package upstream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleWorkItemNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ToggleWorkItem("42")
	require.Error(t, err)

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusNotFound, upErr.Status)
}

func TestToggleWorkItemSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/crochet/42/toggle", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"id": "42", "done": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	payload, err := client.ToggleWorkItem("42")
	require.NoError(t, err)
	assert.Equal(t, true, payload["done"])
}

func TestUnparsableBodyYieldsAbsentPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	payload, err := client.DeleteWorkItem("7")
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestAddFinishedBookGeneratesID(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/books/finished", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	id, _, err := client.AddFinishedBook("", "The Dispossessed", "2026-08-01")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, gotBody["id"])
}

func TestAddFinishedBookKeepsCallerID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	id, _, err := client.AddFinishedBook("book-9", "Piranesi", "2026-07-12")
	require.NoError(t, err)
	assert.Equal(t, "book-9", id)
}

func TestCakeMonthFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cakes", r.URL.Path)
		assert.Equal(t, "2026-08", r.URL.Query().Get("month"))
		json.NewEncoder(w).Encode(map[string]any{"month": "2026-08", "name": "stroopwafel cake"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	payload, err := client.Cake("2026-08")
	require.NoError(t, err)
	assert.Equal(t, "stroopwafel cake", payload["name"])
}

func TestCakeWithoutMonthOmitsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("month"))
		json.NewEncoder(w).Encode(map[string]any{"month": "2026-07"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	payload, err := client.Cake("")
	require.NoError(t, err)
	assert.Equal(t, "2026-07", payload["month"])
}

func TestSetCurrentBookOmitsEmptyAuthor(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SetCurrentBook("Ringworld", "")
	require.NoError(t, err)
	_, hasAuthor := gotBody["author"]
	assert.False(t, hasAuthor)
}
