// Package store provides Postgres-backed persistence for locally owned
// records: crochet work items and shared moods. Every call is a single
// synchronous round trip; conflict resolution lives in the SQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUnavailable is returned when the store handle was never initialized,
// which happens when the process starts without database credentials.
var ErrUnavailable = errors.New("store unavailable: no database credentials configured")

// WorkItem is a crochet project tracked locally, keyed by unique title.
type WorkItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// Mood is one person's current mood. One row per person, overwritten
// wholesale on every set.
type Mood struct {
	Owner     string     `json:"owner"`
	Mood      string     `json:"mood"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Store wraps the connection pool. A nil *Store is a valid handle whose
// methods all fail with ErrUnavailable, so callers wired without
// credentials degrade per-call instead of at construction.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New connects to the managed store. The URL carries the credential; an
// empty URL is a configuration error surfaced to the caller.
func New(ctx context.Context, url string, now func() time.Time) (*Store, error) {
	if url == "" {
		return nil, ErrUnavailable
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Store{pool: pool, now: now}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ready() error {
	if s == nil || s.pool == nil {
		return ErrUnavailable
	}
	return nil
}

// UpsertWorkItem inserts or overwrites the row whose title matches.
// Conflict resolution is "replace status"; notes survive the upsert.
func (s *Store) UpsertWorkItem(ctx context.Context, title, status string) (WorkItem, error) {
	if err := s.ready(); err != nil {
		return WorkItem{}, err
	}

	const query = `INSERT INTO crochet_projects (title, status)
        VALUES ($1, $2)
        ON CONFLICT (title) DO UPDATE SET status = EXCLUDED.status
        RETURNING id, title, status, COALESCE(notes, '')`

	var item WorkItem
	row := s.pool.QueryRow(ctx, query, title, status)
	if err := row.Scan(&item.ID, &item.Title, &item.Status, &item.Notes); err != nil {
		return WorkItem{}, fmt.Errorf("store: upsert work item: %w", err)
	}
	return item, nil
}

// SetWorkItemStatus updates the status of the row matching title. A title
// with no matching row yields the zero WorkItem, not an error.
func (s *Store) SetWorkItemStatus(ctx context.Context, title, status string) (WorkItem, error) {
	if err := s.ready(); err != nil {
		return WorkItem{}, err
	}

	const query = `UPDATE crochet_projects SET status = $2
        WHERE title = $1
        RETURNING id, title, status, COALESCE(notes, '')`

	var item WorkItem
	row := s.pool.QueryRow(ctx, query, title, status)
	if err := row.Scan(&item.ID, &item.Title, &item.Status, &item.Notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WorkItem{}, nil
		}
		return WorkItem{}, fmt.Errorf("store: set work item status: %w", err)
	}
	return item, nil
}

// ListWorkItems returns all rows projected to the WorkItem shape, in
// store-native order.
func (s *Store) ListWorkItems(ctx context.Context) ([]WorkItem, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	const query = `SELECT id, title, status, COALESCE(notes, '') FROM crochet_projects`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: list work items: %w", err)
	}
	defer rows.Close()

	items := []WorkItem{}
	for rows.Next() {
		var item WorkItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Status, &item.Notes); err != nil {
			return nil, fmt.Errorf("store: scan work item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list work items: %w", err)
	}
	return items, nil
}

// GetMood fetches at most one row for owner. An absent row yields a Mood
// with empty mood and nil timestamp rather than an error.
func (s *Store) GetMood(ctx context.Context, owner string) (Mood, error) {
	if err := s.ready(); err != nil {
		return Mood{}, err
	}

	const query = `SELECT person, mood, updated_at FROM moods WHERE person = $1`

	var mood Mood
	row := s.pool.QueryRow(ctx, query, owner)
	if err := row.Scan(&mood.Owner, &mood.Mood, &mood.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Mood{Owner: owner}, nil
		}
		return Mood{}, fmt.Errorf("store: get mood: %w", err)
	}
	return mood, nil
}

// SetMood upserts the row for owner with the given mood and the current
// timestamp in the fixed zone.
func (s *Store) SetMood(ctx context.Context, owner, mood string) (Mood, error) {
	if err := s.ready(); err != nil {
		return Mood{}, err
	}

	const query = `INSERT INTO moods (person, mood, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (person) DO UPDATE SET mood = EXCLUDED.mood, updated_at = EXCLUDED.updated_at
        RETURNING person, mood, updated_at`

	var out Mood
	row := s.pool.QueryRow(ctx, query, owner, mood, s.now())
	if err := row.Scan(&out.Owner, &out.Mood, &out.UpdatedAt); err != nil {
		return Mood{}, fmt.Errorf("store: set mood: %w", err)
	}
	return out, nil
}
