package schedule

import (
	"errors"
	"time"
)

// ErrOutsideOperatingHours rejects an instant that does not fall inside the
// garage's operating hours. It is permanent for the given input; retrying
// the same instant cannot succeed.
var ErrOutsideOperatingHours = errors.New("appointment is outside operating hours")

// Validator is the single source of truth for whether an instant is
// bookable. The booking lifecycle re-validates every caller-supplied
// instant through it; a client may submit a time that was never offered as
// a generated slot.
type Validator struct {
	Policy WeeklyPolicy
}

// Validate accepts a local civil instant or returns
// ErrOutsideOperatingHours.
func (v Validator) Validate(local time.Time) error {
	if !v.Policy.IsOpenAt(local) {
		return ErrOutsideOperatingHours
	}
	return nil
}
