package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutCredentials(t *testing.T) {
	_, err := New(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNilStoreFailsPerCall(t *testing.T) {
	var s *Store
	ctx := context.Background()

	_, err := s.UpsertWorkItem(ctx, "scarf", "wip")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = s.SetWorkItemStatus(ctx, "scarf", "done")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = s.ListWorkItems(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = s.GetMood(ctx, "lau")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = s.SetMood(ctx, "geppie", "cozy")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewRejectsMalformedURL(t *testing.T) {
	_, err := New(context.Background(), "not a postgres url", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
}
