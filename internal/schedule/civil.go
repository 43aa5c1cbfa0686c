package schedule

import (
	"fmt"
	"time"
)

// Zone is the fixed-offset civil timezone all garages operate in.
// Appointment instants are stored in UTC; every policy decision is made
// after converting to this zone.
type Zone struct {
	loc *time.Location
}

func NewZone(offsetHours int) Zone {
	name := fmt.Sprintf("UTC%+d", offsetHours)
	return Zone{loc: time.FixedZone(name, offsetHours*60*60)}
}

// ToLocal converts a UTC instant to local civil time.
func (z Zone) ToLocal(t time.Time) time.Time {
	return t.In(z.loc)
}

// ToUTC converts a local civil instant back to UTC. ToUTC(ToLocal(t))
// equals t for every instant.
func (z Zone) ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// At builds a local civil instant from calendar components.
func (z Zone) At(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, z.loc)
}

// ParseDate parses a YYYY-MM-DD calendar date as local midnight.
func (z Zone) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, z.loc)
}

// DateOf truncates a local instant to its local midnight.
func (z Zone) DateOf(t time.Time) time.Time {
	local := t.In(z.loc)
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, z.loc)
}

// SameDate reports whether two instants fall on the same local calendar day.
func (z Zone) SameDate(a, b time.Time) bool {
	return z.DateOf(a).Equal(z.DateOf(b))
}
