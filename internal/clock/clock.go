// Package clock renders the current instant in the household's fixed
// timezone for tools that need "what time is it at home".
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata" // the fixed zone must resolve even without a system tz database

	"github.com/geppie/lilazul/internal/config"
)

// Context is the wall-clock snapshot returned by get_time.
type Context struct {
	CurrentTime string `json:"current_time"` // HH:MM
	Date        string `json:"date"`         // YYYY-MM-DD
	Weekday     string `json:"weekday"`
	Timezone    string `json:"timezone"`
	ISO         string `json:"iso"`
}

// Clock produces time contexts in one fixed location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New resolves the fixed timezone. A missing timezone database is a
// startup failure, not something callers recover from.
func New() (*Clock, error) {
	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", config.Timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// Now returns the current time context. All fields come from the same
// instant converted into the fixed zone.
func (c *Clock) Now() Context {
	t := c.now().In(c.loc)
	return Context{
		CurrentTime: t.Format("15:04"),
		Date:        t.Format("2006-01-02"),
		Weekday:     t.Weekday().String(),
		Timezone:    config.Timezone,
		ISO:         t.Format(time.RFC3339),
	}
}

// NowTime returns the current instant in the fixed zone, for callers that
// need a timestamp rather than a rendered context.
func (c *Clock) NowTime() time.Time {
	return c.now().In(c.loc)
}
