package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a customer appointment at a garage. AppointmentAt is
// stored in UTC; totals are derived from the service lines and never
// trusted from a caller. IsDeleted is an administrative retention flag and
// is independent of the cancelled status: a cancelled booking is not
// automatically deleted.
type Booking struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	GarageID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"garage_id"`
	RequesterID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"requester_id"`
	BookingCode          string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"booking_code"`
	Services             []ServiceLine   `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"services"`
	TotalPrice           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	TotalDurationMinutes int             `gorm:"not null" json:"total_duration_minutes"`
	AppointmentAt        time.Time       `gorm:"not null;index" json:"appointment_at"`
	Status               BookingStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes                string          `gorm:"type:text" json:"notes,omitempty"`
	IsDeleted            bool            `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// ServiceLine is an immutable snapshot of a selected garage service. The
// booking stores a copy, so later catalog edits never alter historical
// bookings.
type ServiceLine struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	BookingID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
}

func (ServiceLine) TableName() string {
	return "booking_service_lines"
}

// AggregateServiceLines sums price and duration over a selection. An empty
// selection yields zero totals; callers enforce non-emptiness where
// required.
func AggregateServiceLines(lines []ServiceLine) (decimal.Decimal, int) {
	total := decimal.Zero
	minutes := 0
	for _, line := range lines {
		total = total.Add(line.Price)
		minutes += line.DurationMinutes
	}
	return total, minutes
}

// AppointmentEnd returns the UTC instant the appointment finishes.
func (b *Booking) AppointmentEnd() time.Time {
	return b.AppointmentAt.Add(time.Duration(b.TotalDurationMinutes) * time.Minute)
}

// OverlapsInterval reports whether the booking occupies any part of
// [start, end).
func (b *Booking) OverlapsInterval(start, end time.Time) bool {
	return b.AppointmentAt.Before(end) && b.AppointmentEnd().After(start)
}

// IsTerminal reports whether the booking reached a final state. No
// transition out of a terminal state is permitted.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// IsCancelled checks if booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// CanTransitionTo reports whether the status state machine permits moving
// to target: pending -> confirmed -> completed, with cancellation allowed
// from pending or confirmed.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	if b.IsTerminal() {
		return false
	}
	switch target {
	case BookingStatusConfirmed:
		return b.Status == BookingStatusPending
	case BookingStatusCompleted:
		return b.Status == BookingStatusConfirmed
	case BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// Cancel marks the booking cancelled. It does not touch IsDeleted.
func (b *Booking) Cancel() {
	b.Status = BookingStatusCancelled
}
