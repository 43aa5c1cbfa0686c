package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// CreateBookingRequest carries the appointment in local civil time; the
// lifecycle manager converts it to UTC for storage. Totals are never part
// of the request.
type CreateBookingRequest struct {
	GarageID        uuid.UUID   `json:"garage_id" validate:"required"`
	ServiceIDs      []uuid.UUID `json:"service_ids"`
	AppointmentDate string      `json:"appointment_date" validate:"required"` // YYYY-MM-DD
	AppointmentTime string      `json:"appointment_time" validate:"required"` // HH:MM
	Notes           string      `json:"notes" validate:"max=2000"`
}

type UpdateBookingRequest struct {
	ServiceIDs      []uuid.UUID `json:"service_ids"`
	AppointmentDate string      `json:"appointment_date" validate:"required"`
	AppointmentTime string      `json:"appointment_time" validate:"required"`
	Notes           string      `json:"notes" validate:"max=2000"`
}

type TransitionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed"`
}

// Response DTOs

type ServiceLineResponse struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
}

type BookingResponse struct {
	ID                   uuid.UUID             `json:"id"`
	GarageID             uuid.UUID             `json:"garage_id"`
	RequesterID          uuid.UUID             `json:"requester_id"`
	BookingCode          string                `json:"booking_code"`
	Services             []ServiceLineResponse `json:"services"`
	TotalPrice           decimal.Decimal       `json:"total_price"`
	TotalDurationMinutes int                   `json:"total_duration_minutes"`
	AppointmentAt        time.Time             `json:"appointment_at"`
	Status               string                `json:"status"`
	Notes                string                `json:"notes,omitempty"`
	IsDeleted            bool                  `json:"is_deleted"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
