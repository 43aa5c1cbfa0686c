package repository

import (
	"errors"

	"garage-booking/internal/domain/entity"
	domainRepo "garage-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type garageRepository struct{}

func NewGarageRepository() domainRepo.GarageRepository {
	return &garageRepository{}
}

func (r *garageRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Garage, error) {
	var garage entity.Garage
	err := db.Preload("Services").Preload("OperatingRules").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&garage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &garage, nil
}
