package repository

import (
	"errors"
	"time"

	"garage-booking/internal/domain/entity"
	domainRepo "garage-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Services").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByRequesterID(db *gorm.DB, requesterID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Services").
		Where("requester_id = ? AND is_deleted = ?", requesterID, false).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(db *gorm.DB) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Services").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindActiveByGarageBetween(db *gorm.DB, garageID uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.
		Where("garage_id = ? AND status != ? AND is_deleted = ?", garageID, entity.BookingStatusCancelled, false).
		Where("appointment_at >= ? AND appointment_at < ?", from, to).
		Order("appointment_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Save(db *gorm.DB, booking *entity.Booking) error {
	return db.Session(&gorm.Session{FullSaveAssociations: true}).Save(booking).Error
}

// UpdateStatus transitions atomically: the WHERE guard on the current
// status makes concurrent double-transitions lose with 0 affected rows.
func (r *bookingRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) SetDeleted(db *gorm.DB, id uuid.UUID, deleted bool) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND is_deleted = ?", id, !deleted).
		Update("is_deleted", deleted)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) HardDelete(db *gorm.DB, id uuid.UUID) error {
	if err := db.Where("booking_id = ?", id).Delete(&entity.ServiceLine{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entity.Booking{}).Error
}
