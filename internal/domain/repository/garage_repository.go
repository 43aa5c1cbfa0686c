package repository

import (
	"garage-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GarageRepository interface {
	// FindByID loads a live garage with its service catalog and operating
	// rules; soft-deleted garages are treated as absent.
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Garage, error)
}
