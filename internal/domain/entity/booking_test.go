package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAggregateServiceLines(t *testing.T) {
	lines := []ServiceLine{
		{Name: "Oil Change", Price: decimal.NewFromInt(1500), DurationMinutes: 30},
		{Name: "Brake Inspection", Price: decimal.NewFromInt(2500), DurationMinutes: 45},
	}

	total, minutes := AggregateServiceLines(lines)
	if !total.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("total = %s, want 4000", total)
	}
	if minutes != 75 {
		t.Errorf("minutes = %d, want 75", minutes)
	}
}

func TestAggregateServiceLinesEmpty(t *testing.T) {
	total, minutes := AggregateServiceLines(nil)
	if !total.IsZero() {
		t.Errorf("total = %s, want 0", total)
	}
	if minutes != 0 {
		t.Errorf("minutes = %d, want 0", minutes)
	}
}

func TestBookingOverlapsInterval(t *testing.T) {
	at := time.Date(2026, 1, 2, 7, 0, 0, 0, time.UTC)
	booking := &Booking{AppointmentAt: at, TotalDurationMinutes: 30}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical interval", at, at.Add(30 * time.Minute), true},
		{"straddles the start", at.Add(-15 * time.Minute), at.Add(15 * time.Minute), true},
		{"contained", at.Add(10 * time.Minute), at.Add(20 * time.Minute), true},
		{"back to back after", at.Add(30 * time.Minute), at.Add(60 * time.Minute), false},
		{"back to back before", at.Add(-30 * time.Minute), at, false},
		{"disjoint", at.Add(2 * time.Hour), at.Add(3 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := booking.OverlapsInterval(tt.start, tt.end); got != tt.want {
				t.Errorf("OverlapsInterval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookingCanTransitionTo(t *testing.T) {
	tests := []struct {
		from   BookingStatus
		target BookingStatus
		want   bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusCancelled, false},
	}

	for _, tt := range tests {
		b := &Booking{Status: tt.from}
		if got := b.CanTransitionTo(tt.target); got != tt.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.target, got, tt.want)
		}
	}
}
