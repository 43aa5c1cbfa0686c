package schedule

import (
	"testing"
	"time"
)

func TestZoneRoundTrip(t *testing.T) {
	zone := NewZone(3)

	instants := []time.Time{
		time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 3, 21, 30, 0, 0, time.UTC),
		time.Date(2026, 6, 15, 23, 59, 59, 0, time.UTC),
		time.Date(2026, 12, 31, 5, 0, 0, 0, time.UTC),
	}

	for _, utc := range instants {
		local := zone.ToLocal(utc)
		back := zone.ToUTC(local)
		if !back.Equal(utc) {
			t.Fatalf("round trip mismatch: %s -> %s -> %s", utc, local, back)
		}
	}
}

func TestZoneToLocalShiftsWallClock(t *testing.T) {
	zone := NewZone(3)

	utc := time.Date(2026, 1, 3, 21, 30, 0, 0, time.UTC)
	local := zone.ToLocal(utc)

	// 21:30 UTC is already the next local day at UTC+3.
	if local.Day() != 4 || local.Hour() != 0 || local.Minute() != 30 {
		t.Fatalf("expected local 04 Jan 00:30, got %s", local)
	}
}

func TestZoneParseDate(t *testing.T) {
	zone := NewZone(3)

	date, err := zone.ParseDate("2026-01-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.Year() != 2026 || date.Month() != time.January || date.Day() != 3 {
		t.Fatalf("unexpected date: %s", date)
	}
	if date.Hour() != 0 || date.Minute() != 0 {
		t.Fatalf("expected local midnight, got %s", date)
	}

	if _, err := zone.ParseDate("03/01/2026"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestZoneSameDate(t *testing.T) {
	zone := NewZone(3)

	// 22:00 UTC and 23:00 UTC are both past local midnight at UTC+3.
	a := time.Date(2026, 1, 3, 22, 0, 0, 0, time.UTC)
	b := time.Date(2026, 1, 3, 23, 0, 0, 0, time.UTC)
	if !zone.SameDate(a, b) {
		t.Fatal("expected same local date")
	}

	// 20:00 UTC is still 03 Jan locally, 21:00 UTC is 04 Jan.
	c := time.Date(2026, 1, 3, 20, 0, 0, 0, time.UTC)
	if zone.SameDate(b, c) {
		t.Fatal("expected different local dates")
	}
}
