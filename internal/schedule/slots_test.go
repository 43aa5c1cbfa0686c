package schedule

import (
	"testing"
	"time"
)

func fixedClock(utc time.Time) func() time.Time {
	return func() time.Time { return utc }
}

func newTestGenerator(nowUTC time.Time) *Generator {
	return NewGenerator(testPolicy(), NewZone(3), fixedClock(nowUTC))
}

func TestSlotsForSaturday(t *testing.T) {
	// Friday evening, so Saturday has no today-cutoff.
	gen := newTestGenerator(time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC))

	date, err := gen.Zone.ParseDate("2026-01-03") // Saturday
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slots := gen.SlotsFor(date)
	if len(slots) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(slots))
	}
	if slots[0].Hour() != 9 || slots[0].Minute() != 0 {
		t.Fatalf("expected first slot 09:00, got %s", slots[0])
	}
	last := slots[len(slots)-1]
	if last.Hour() != 14 || last.Minute() != 30 {
		t.Fatalf("expected last slot 14:30, got %s", last)
	}
}

func TestSlotsForSundayEmpty(t *testing.T) {
	gen := newTestGenerator(time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC))

	date, _ := gen.Zone.ParseDate("2026-01-04") // Sunday
	if slots := gen.SlotsFor(date); len(slots) != 0 {
		t.Fatalf("expected no slots on a closed day, got %d", len(slots))
	}
}

func TestSlotsOrderedAndWithinHours(t *testing.T) {
	gen := newTestGenerator(time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC))
	policy := gen.Policy

	for _, day := range []string{"2026-01-05", "2026-01-06", "2026-01-03"} {
		date, _ := gen.Zone.ParseDate(day)
		slots := gen.SlotsFor(date)
		if len(slots) == 0 {
			t.Fatalf("%s: expected slots on an open day", day)
		}
		for i, slot := range slots {
			if !policy.IsOpenAt(slot) {
				t.Fatalf("%s: slot %s outside operating hours", day, slot)
			}
			if i > 0 && !slots[i-1].Before(slot) {
				t.Fatalf("%s: slots not strictly ascending at index %d", day, i)
			}
		}
	}
}

func TestSlotsForTodayDropsPastHours(t *testing.T) {
	// Saturday 10:10 local (07:10 UTC at UTC+3).
	gen := newTestGenerator(time.Date(2026, 1, 3, 7, 10, 0, 0, time.UTC))

	date, _ := gen.Zone.ParseDate("2026-01-03")
	slots := gen.SlotsFor(date)

	// The cutoff is hour-coarse: 10:30 is not offered at 10:10.
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots after 10:xx cutoff, got %d", len(slots))
	}
	if slots[0].Hour() != 11 || slots[0].Minute() != 0 {
		t.Fatalf("expected first slot 11:00, got %s", slots[0])
	}
	for _, slot := range slots {
		if slot.Hour() <= 10 {
			t.Fatalf("slot %s should have been dropped by the today cutoff", slot)
		}
	}
}

func TestSlotsForTodayFullyElapsed(t *testing.T) {
	// Saturday 17:00 local, past closing.
	gen := newTestGenerator(time.Date(2026, 1, 3, 14, 0, 0, 0, time.UTC))

	date, _ := gen.Zone.ParseDate("2026-01-03")
	if slots := gen.SlotsFor(date); len(slots) != 0 {
		t.Fatalf("expected no slots after closing, got %d", len(slots))
	}
}

func TestSlotsForPastDateStillGenerates(t *testing.T) {
	// Rejecting past dates is the caller's job via MinSelectableDate.
	gen := newTestGenerator(time.Date(2026, 1, 9, 7, 0, 0, 0, time.UTC))

	date, _ := gen.Zone.ParseDate("2026-01-05")
	if slots := gen.SlotsFor(date); len(slots) == 0 {
		t.Fatal("expected slot list for a past open date")
	}
}

func TestMinSelectableDate(t *testing.T) {
	zone := NewZone(3)

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"weekday morning stays today", zone.ToUTC(zone.At(2026, time.January, 5, 10, 0)), "2026-01-05"},
		{"weekday past closing moves to tomorrow", zone.ToUTC(zone.At(2026, time.January, 5, 18, 30)), "2026-01-06"},
		{"friday past closing moves to saturday", zone.ToUTC(zone.At(2026, time.January, 2, 19, 0)), "2026-01-03"},
		{"saturday past closing skips sunday", zone.ToUTC(zone.At(2026, time.January, 3, 16, 0)), "2026-01-05"},
		{"sunday moves to monday", zone.ToUTC(zone.At(2026, time.January, 4, 11, 0)), "2026-01-05"},
	}

	for _, tc := range cases {
		gen := newTestGenerator(tc.now)
		got := gen.MinSelectableDate().Format("2006-01-02")
		if got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}
