// Package upstream forwards book, cake and remote-crochet operations to
// the hosted API that owns that data. One HTTP request per call, fixed
// timeout, upstream failures propagated as-is — no retry, no backoff.
package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const requestTimeout = 10 * time.Second

// Error is a non-success HTTP status from the upstream API, carrying the
// status code for the caller to propagate.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("upstream error (%d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("upstream error (%d)", e.Status)
}

// Client is the remote proxy client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// request issues one HTTP request and returns the raw response body.
// Status >= 400 becomes *Error.
func (c *Client) request(method, path string, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &Error{Status: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

// decode parses the response body as a JSON object. A body that does not
// parse yields nil rather than an error: the upstream owns its response
// shapes and a successful status is still a successful call.
func decode(data []byte) map[string]any {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return payload
}

// ToggleWorkItem flips the done state of a remote crochet item. The remote
// identifier space is separate from the locally stored title-keyed table.
func (c *Client) ToggleWorkItem(id string) (map[string]any, error) {
	data, err := c.request(http.MethodPatch, "/crochet/"+url.PathEscape(id)+"/toggle", nil)
	if err != nil {
		return nil, err
	}
	return decode(data), nil
}

// DeleteWorkItem removes a remote crochet item by id.
func (c *Client) DeleteWorkItem(id string) (map[string]any, error) {
	data, err := c.request(http.MethodDelete, "/crochet/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return decode(data), nil
}

// CurrentBook returns the book currently being read.
func (c *Client) CurrentBook() (map[string]any, error) {
	data, err := c.request(http.MethodGet, "/books/current", nil)
	if err != nil {
		return nil, err
	}
	return decode(data), nil
}

// SetCurrentBook replaces the book currently being read.
func (c *Client) SetCurrentBook(title, author string) (map[string]any, error) {
	body := map[string]any{"title": title}
	if author != "" {
		body["author"] = author
	}
	data, err := c.request(http.MethodPut, "/books/current", body)
	if err != nil {
		return nil, err
	}
	return decode(data), nil
}

// FinishedBooks lists the finished-books shelf.
func (c *Client) FinishedBooks() (map[string]any, error) {
	data, err := c.request(http.MethodGet, "/books/finished", nil)
	if err != nil {
		return nil, err
	}
	return decode(data), nil
}

// AddFinishedBook adds a book to the finished shelf. When the caller does
// not supply an id, a fresh one is generated here so the tool response can
// echo it back.
func (c *Client) AddFinishedBook(id, title, date string) (string, map[string]any, error) {
	if id == "" {
		id = uuid.NewString()
	}
	body := map[string]any{"id": id, "title": title, "date": date}
	data, err := c.request(http.MethodPost, "/books/finished", body)
	if err != nil {
		return "", nil, err
	}
	return id, decode(data), nil
}

// DeleteFinishedBook removes a book from the finished shelf.
func (c *Client) DeleteFinishedBook(id string) (map[string]any, error) {
	data, err := c.request(http.MethodDelete, "/books/finished/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return decode(data), nil
}

// Cake fetches a monthly cake note. With an empty month the upstream
// returns its most recent entry; that policy lives upstream, not here.
func (c *Client) Cake(month string) (map[string]any, error) {
	path := "/cakes"
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}
	data, err := c.request(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decode(data), nil
}

// CakeNote is the monthly cake record, upserted upstream keyed on month.
type CakeNote struct {
	Month    string `json:"month"`
	Name     string `json:"name"`
	Note     string `json:"note"`
	PhotoURL string `json:"photo_url"`
	Recipe   string `json:"recipe"`
}

// SetCake upserts a monthly cake note.
func (c *Client) SetCake(note CakeNote) (map[string]any, error) {
	data, err := c.request(http.MethodPut, "/cakes", note)
	if err != nil {
		return nil, err
	}
	return decode(data), nil
}

// DeleteCake removes a cake note by id.
func (c *Client) DeleteCake(id string) (map[string]any, error) {
	data, err := c.request(http.MethodDelete, "/cakes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return decode(data), nil
}
