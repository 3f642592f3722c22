package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geppie/lilazul/internal/config"
)

func TestNowFixedZone(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	ctx := c.Now()
	assert.Equal(t, config.Timezone, ctx.Timezone)

	parsed, err := time.Parse(time.RFC3339, ctx.ISO)
	require.NoError(t, err)
	assert.Equal(t, ctx.Date, parsed.Format("2006-01-02"))
}

func TestNowFieldsAgree(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	// Pin the instant so every field is checked against a known value.
	fixed := time.Date(2026, time.March, 7, 22, 45, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	ctx := c.Now()
	// 22:45 UTC on 2026-03-07 is 23:45 in Amsterdam (CET, +01:00).
	assert.Equal(t, "23:45", ctx.CurrentTime)
	assert.Equal(t, "2026-03-07", ctx.Date)
	assert.Equal(t, "Saturday", ctx.Weekday)
	assert.Equal(t, "2026-03-07T23:45:00+01:00", ctx.ISO)
}
