package service

import (
	"context"

	"garage-booking/internal/domain/entity"
	"garage-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes the administrative trail of booking lifecycle
// events. It runs inside the caller's transaction so a failed mutation
// leaves no trail entry behind.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, bookingID uuid.UUID, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, bookingID uuid.UUID, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, bookingID uuid.UUID, oldValue interface{}) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, bookingID uuid.UUID, newValue interface{}) error {
	return s.record(tx, actorID, action, entity.JSON{
		"booking_id": bookingID.String(),
		"old_value":  nil,
		"new_value":  newValue,
	})
}

func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, bookingID uuid.UUID, oldValue, newValue interface{}) error {
	return s.record(tx, actorID, action, entity.JSON{
		"booking_id": bookingID.String(),
		"old_value":  oldValue,
		"new_value":  newValue,
	})
}

func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, bookingID uuid.UUID, oldValue interface{}) error {
	return s.record(tx, actorID, action, entity.JSON{
		"booking_id": bookingID.String(),
		"old_value":  oldValue,
		"new_value":  nil,
	})
}

func (s *auditService) record(tx *gorm.DB, actorID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
