// Package hours works out when the shop next takes bookings.
// Service slots are described with a standard cron expression.
package hours

import (
	"errors"
	"fmt"
	"time"

	"github.com/marcus/workshop/internal/config"
	"github.com/robfig/cron/v3"
)

// ErrNoSchedule is returned when no service-slot expression is configured.
var ErrNoSchedule = errors.New("no service slots configured")

// Slots computes upcoming service slots.
type Slots struct {
	cronExpr string
	schedule cron.Schedule
	loc      *time.Location
}

// New parses a 5-field cron expression. A nil location means time.Local.
func New(expr string, loc *time.Location) (*Slots, error) {
	if expr == "" {
		return nil, ErrNoSchedule
	}
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid service slots %q: %w", expr, err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Slots{cronExpr: expr, schedule: sched, loc: loc}, nil
}

// NewFromConfig builds Slots from notification settings.
func NewFromConfig(cfg *config.NotificationsConfig) (*Slots, error) {
	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}
	return New(cfg.ServiceSlots, loc)
}

// Next returns the first slot strictly after t.
func (s *Slots) Next(after time.Time) time.Time {
	return s.schedule.Next(after.In(s.loc))
}

// Upcoming returns the next n slots after t.
func (s *Slots) Upcoming(after time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	t := after
	for i := 0; i < n; i++ {
		t = s.Next(t)
		if t.IsZero() {
			break
		}
		out = append(out, t)
	}
	return out
}

// Expr returns the cron expression.
func (s *Slots) Expr() string {
	return s.cronExpr
}

// Format renders a slot the way customers see it.
func Format(t time.Time) string {
	return t.Format("Mon Jan 2 15:04")
}
