package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"garage-booking/internal/schedule"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func newTestSlotUsecase(t *testing.T, nowUTC time.Time) SlotUsecase {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	zone := schedule.NewZone(3)
	return NewSlotUsecase(log, &staticCatalog{catalog: testCatalog()}, zone, func() time.Time { return nowUTC })
}

func TestGetAvailableSlotsSaturday(t *testing.T) {
	// Thursday morning local time; Saturday is fully in the future.
	uc := newTestSlotUsecase(t, time.Date(2026, 1, 1, 6, 0, 0, 0, time.UTC))

	resp, err := uc.GetAvailableSlots(context.Background(), testGarageID, "2026-01-03")
	if err != nil {
		t.Fatalf("GetAvailableSlots() error = %v", err)
	}

	if len(resp.Slots) != 12 {
		t.Fatalf("len(Slots) = %d, want 12", len(resp.Slots))
	}
	if resp.Slots[0] != "09:00" {
		t.Errorf("Slots[0] = %s, want 09:00", resp.Slots[0])
	}
	if resp.Slots[len(resp.Slots)-1] != "14:30" {
		t.Errorf("last slot = %s, want 14:30", resp.Slots[len(resp.Slots)-1])
	}
	if resp.Date != "2026-01-03" {
		t.Errorf("Date = %s, want 2026-01-03", resp.Date)
	}
}

func TestGetAvailableSlotsSundayEmpty(t *testing.T) {
	uc := newTestSlotUsecase(t, time.Date(2026, 1, 1, 6, 0, 0, 0, time.UTC))

	resp, err := uc.GetAvailableSlots(context.Background(), testGarageID, "2026-01-04")
	if err != nil {
		t.Fatalf("GetAvailableSlots() error = %v", err)
	}
	if len(resp.Slots) != 0 {
		t.Errorf("len(Slots) = %d, want 0 on a closed day", len(resp.Slots))
	}
}

func TestGetAvailableSlotsDefaultsToMinDate(t *testing.T) {
	// Friday 20:00 local, past closing; the earliest selectable day is
	// Saturday.
	uc := newTestSlotUsecase(t, time.Date(2026, 1, 2, 17, 0, 0, 0, time.UTC))

	resp, err := uc.GetAvailableSlots(context.Background(), testGarageID, "")
	if err != nil {
		t.Fatalf("GetAvailableSlots() error = %v", err)
	}
	if resp.Date != "2026-01-03" {
		t.Errorf("Date = %s, want 2026-01-03", resp.Date)
	}
	if resp.MinDate != "2026-01-03" {
		t.Errorf("MinDate = %s, want 2026-01-03", resp.MinDate)
	}
	if len(resp.Slots) != 12 {
		t.Errorf("len(Slots) = %d, want 12", len(resp.Slots))
	}
}

func TestGetAvailableSlotsErrors(t *testing.T) {
	uc := newTestSlotUsecase(t, time.Date(2026, 1, 1, 6, 0, 0, 0, time.UTC))

	if _, err := uc.GetAvailableSlots(context.Background(), uuid.New(), "2026-01-03"); !errors.Is(err, ErrGarageNotFound) {
		t.Errorf("unknown garage error = %v, want %v", err, ErrGarageNotFound)
	}
	if _, err := uc.GetAvailableSlots(context.Background(), testGarageID, "03-01-2026"); !errors.Is(err, ErrInvalidAppointmentDate) {
		t.Errorf("bad date error = %v, want %v", err, ErrInvalidAppointmentDate)
	}
}
