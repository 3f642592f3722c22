// Package tools provides MCP tool registration with dependency injection.
package tools

import (
	"context"

	"github.com/geppie/lilazul/internal/clock"
	"github.com/geppie/lilazul/internal/journal"
	"github.com/geppie/lilazul/internal/store"
	"github.com/geppie/lilazul/internal/upstream"
)

// Mood owners are a fixed set: lau's mood is read-only from this system's
// perspective, geppie's is write-only.
const (
	OwnerLau    = "lau"
	OwnerGeppie = "geppie"
)

// Store is the record-store surface the tools depend on.
type Store interface {
	UpsertWorkItem(ctx context.Context, title, status string) (store.WorkItem, error)
	SetWorkItemStatus(ctx context.Context, title, status string) (store.WorkItem, error)
	ListWorkItems(ctx context.Context) ([]store.WorkItem, error)
	GetMood(ctx context.Context, owner string) (store.Mood, error)
	SetMood(ctx context.Context, owner, mood string) (store.Mood, error)
}

// Proxy is the remote-API surface the tools depend on.
type Proxy interface {
	ToggleWorkItem(id string) (map[string]any, error)
	DeleteWorkItem(id string) (map[string]any, error)
	CurrentBook() (map[string]any, error)
	SetCurrentBook(title, author string) (map[string]any, error)
	FinishedBooks() (map[string]any, error)
	AddFinishedBook(id, title, date string) (string, map[string]any, error)
	DeleteFinishedBook(id string) (map[string]any, error)
	Cake(month string) (map[string]any, error)
	SetCake(note upstream.CakeNote) (map[string]any, error)
	DeleteCake(id string) (map[string]any, error)
}

// Dependencies holds all services that MCP tools may need.
// Optional fields may be nil.
type Dependencies struct {
	Store    Store // nil when the process started without store credentials
	Upstream Proxy
	Clock    *clock.Clock

	// Optional services
	Journal *journal.Journal

	// If set, mood_set_geppie calls this after a successful write.
	NotifyMood func(owner, mood string)
}
