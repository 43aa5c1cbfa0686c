package repository

import (
	"time"

	"garage-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByRequesterID(db *gorm.DB, requesterID uuid.UUID) ([]entity.Booking, error)
	FindAll(db *gorm.DB) ([]entity.Booking, error)
	// FindActiveByGarageBetween returns non-cancelled, non-deleted bookings
	// for a garage whose appointments start inside [from, to). Used for the
	// overlap check.
	FindActiveByGarageBetween(db *gorm.DB, garageID uuid.UUID, from, to time.Time) ([]entity.Booking, error)
	Save(db *gorm.DB, booking *entity.Booking) error
	// UpdateStatus moves a booking from one status to another atomically.
	// Returns affected rows: 0 means the booking changed state concurrently.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error)
	SetDeleted(db *gorm.DB, id uuid.UUID, deleted bool) (int64, error)
	HardDelete(db *gorm.DB, id uuid.UUID) error
}
