// Package classify derives due-date status for board orders.
package classify

import (
	"fmt"
	"time"
	// Embedded so the display zone resolves on hosts without zoneinfo.
	_ "time/tzdata"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/normalize"
)

// Defaults used against the live workshop.
const (
	DefaultTimezone    = "Pacific/Auckland"
	DefaultDueSoonDays = 7
)

// Classifier assigns exactly one DueStatus to each order.
type Classifier struct {
	location    *time.Location
	clock       func() time.Time
	dueSoonDays int
}

// Option customizes classifier construction.
type Option func(*Classifier)

// WithClock allows tests to control "today".
func WithClock(clock func() time.Time) Option {
	return func(c *Classifier) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// New creates a classifier that computes today's date in location.
func New(location *time.Location, dueSoonDays int, opts ...Option) *Classifier {
	if location == nil {
		location = time.UTC
	}
	if dueSoonDays < 0 {
		dueSoonDays = DefaultDueSoonDays
	}
	c := &Classifier{
		location:    location,
		dueSoonDays: dueSoonDays,
		clock:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// LoadLocation resolves a display time zone by IANA name.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown display timezone %q: %w", name, err)
	}
	return loc, nil
}

// Now returns the current time in the display zone.
func (c *Classifier) Now() time.Time {
	return c.clock().In(c.location)
}

// Today returns the current calendar date in the display zone.
func (c *Classifier) Today() time.Time {
	return normalize.CalendarDate(c.Now())
}

// Status classifies a due date against today.
// daysOverdue is non-zero only for StatusOverdue.
func Status(due *time.Time, today time.Time, dueSoonDays int) (status model.DueStatus, daysOverdue int) {
	if due == nil {
		return model.StatusNoDate, 0
	}

	daysUntil := DaysBetween(today, *due)
	switch {
	case daysUntil < 0:
		return model.StatusOverdue, -daysUntil
	case daysUntil <= dueSoonDays:
		return model.StatusDueSoon, 0
	default:
		return model.StatusOnTrack, 0
	}
}

// DaysBetween counts whole calendar days from one date to another.
func DaysBetween(from, to time.Time) int {
	a := normalize.CalendarDate(from)
	b := normalize.CalendarDate(to)
	return int(b.Sub(a).Hours() / 24)
}

// Classify returns a copy of orders with status flags filled in.
func (c *Classifier) Classify(orders []model.Order) []model.Order {
	today := c.Today()
	out := make([]model.Order, len(orders))
	for i, order := range orders {
		order.Status, order.DaysOverdue = Status(order.EstimatedDeliveryDate, today, c.dueSoonDays)
		out[i] = order
	}
	return out
}
