package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDayRule = errors.New("day rule hours are invalid")
	ErrInvalidStep    = errors.New("slot step must be a positive divisor of 60")
)

// DayRule describes one weekday of a garage's operating hours. OpenHour and
// CloseHour are whole local hours; bookings start at StepMinutes intervals
// inside [OpenHour, CloseHour).
type DayRule struct {
	Open        bool
	OpenHour    int
	CloseHour   int
	StepMinutes int
}

// Contains reports whether a local wall-clock hour falls inside the rule.
func (r DayRule) Contains(hour int) bool {
	return r.Open && hour >= r.OpenHour && hour < r.CloseHour
}

// Describe renders the rule for display, e.g. "Open 09:00 - 15:00".
func (r DayRule) Describe() string {
	if !r.Open {
		return "Closed"
	}
	return fmt.Sprintf("Open %02d:00 - %02d:00", r.OpenHour, r.CloseHour)
}

func (r DayRule) validate() error {
	if !r.Open {
		return nil
	}
	if r.OpenHour < 0 || r.CloseHour >= 24 || r.OpenHour >= r.CloseHour {
		return ErrInvalidDayRule
	}
	if r.StepMinutes <= 0 || 60%r.StepMinutes != 0 {
		return ErrInvalidStep
	}
	return nil
}

// WeeklyPolicy holds one DayRule per weekday, indexed by time.Weekday
// (Sunday = 0). It is immutable configuration; the scheduling core never
// mutates it.
type WeeklyPolicy [7]DayRule

// NewWeeklyPolicy builds the marketplace's three-tier policy: one rule for
// Monday through Friday, one for Saturday, Sunday closed.
func NewWeeklyPolicy(weekdayOpen, weekdayClose, saturdayOpen, saturdayClose, stepMinutes int) WeeklyPolicy {
	var p WeeklyPolicy
	for d := time.Monday; d <= time.Friday; d++ {
		p[d] = DayRule{Open: true, OpenHour: weekdayOpen, CloseHour: weekdayClose, StepMinutes: stepMinutes}
	}
	p[time.Saturday] = DayRule{Open: true, OpenHour: saturdayOpen, CloseHour: saturdayClose, StepMinutes: stepMinutes}
	p[time.Sunday] = DayRule{Open: false}
	return p
}

// RuleFor looks up the rule for an instant's local weekday.
func (p WeeklyPolicy) RuleFor(local time.Time) DayRule {
	return p[local.Weekday()]
}

// IsOpenAt reports whether a local civil instant falls inside operating
// hours.
func (p WeeklyPolicy) IsOpenAt(local time.Time) bool {
	return p.RuleFor(local).Contains(local.Hour())
}

// Validate checks every open day's rule.
func (p WeeklyPolicy) Validate() error {
	for d, rule := range p {
		if err := rule.validate(); err != nil {
			return fmt.Errorf("%s: %w", time.Weekday(d), err)
		}
	}
	return nil
}
