package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.Record("tool", "crochet_add", "item=scarf"))
	require.NoError(t, j.Record("tool", "mood_set_geppie", "mood=cozy"))
	require.NoError(t, j.Record("rest", "POST /crochet", "title=hat"))

	entries, err := j.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// newest first
	assert.Equal(t, "POST /crochet", entries[0].Name)
	assert.Equal(t, "rest", entries[0].Kind)
	assert.Equal(t, "mood_set_geppie", entries[1].Name)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestTodayIncludesFreshEntries(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.Record("tool", "ping", ""))

	entries, err := j.Today()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ping", entries[0].Name)
}

func TestRecentEmptyJournal(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenTwiceReusesDatabase(t *testing.T) {
	dir := t.TempDir()

	j, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, j.Record("tool", "ping", ""))
	require.NoError(t, j.Close())

	j2, err := Open(dir)
	require.NoError(t, err)
	defer j2.Close()

	entries, err := j2.Recent(10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
