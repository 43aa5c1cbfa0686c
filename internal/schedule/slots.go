package schedule

import "time"

// Generator produces bookable start times for a calendar date. It holds no
// state between calls; slots are recomputed on every request because the
// "today" cutoff moves with the clock.
type Generator struct {
	Policy WeeklyPolicy
	Zone   Zone
	Now    func() time.Time
}

func NewGenerator(policy WeeklyPolicy, zone Zone, now func() time.Time) *Generator {
	return &Generator{Policy: policy, Zone: zone, Now: now}
}

// SlotsFor returns the ordered bookable start times for a local calendar
// date. A closed day yields nil. When the date is today in local time,
// every candidate in the current hour or earlier is dropped; the cutoff is
// deliberately hour-coarse, so 09:30 is not offered at 09:10.
func (g *Generator) SlotsFor(date time.Time) []time.Time {
	date = g.Zone.DateOf(date)
	rule := g.Policy.RuleFor(date)
	if !rule.Open {
		return nil
	}

	now := g.Zone.ToLocal(g.Now())
	today := g.Zone.SameDate(date, now)

	var slots []time.Time
	for m := rule.OpenHour * 60; m < rule.CloseHour*60; m += rule.StepMinutes {
		hour := m / 60
		if today && hour <= now.Hour() {
			continue
		}
		slots = append(slots, g.Zone.At(date.Year(), date.Month(), date.Day(), hour, m%60))
	}
	return slots
}

// MinSelectableDate returns the earliest local calendar date a caller may
// pick: today, unless today is closed or already past closing, in which
// case the next open day.
func (g *Generator) MinSelectableDate() time.Time {
	now := g.Zone.ToLocal(g.Now())
	date := g.Zone.DateOf(now)

	rule := g.Policy.RuleFor(date)
	if !rule.Open || now.Hour() >= rule.CloseHour {
		date = date.AddDate(0, 0, 1)
	}
	for i := 0; i < 7 && !g.Policy.RuleFor(date).Open; i++ {
		date = date.AddDate(0, 0, 1)
	}
	return date
}
