package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"garage-booking/internal/converter"
	"garage-booking/internal/delivery/dto"
	"garage-booking/internal/domain/entity"
	"garage-booking/internal/domain/repository"
	"garage-booking/internal/schedule"
	"garage-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrGarageNotFound          = errors.New("garage not found")
	ErrGarageInactive          = errors.New("garage is not accepting bookings")
	ErrEmptyServiceSelection   = errors.New("at least one service must be selected")
	ErrServiceNotFound         = errors.New("selected service not found in garage catalog")
	ErrServiceInactive         = errors.New("selected service is no longer offered")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingNotOwned         = errors.New("booking does not belong to you")
	ErrInvalidStatusTransition = errors.New("booking status transition is not allowed")
	ErrTimeSlotTaken           = errors.New("another booking already occupies this time")
	ErrInvalidAppointmentDate  = errors.New("invalid appointment date format, use YYYY-MM-DD")
	ErrInvalidAppointmentTime  = errors.New("invalid appointment time format, use HH:MM")
)

// ErrOutsideOperatingHours is surfaced unchanged from the availability
// validator so handlers match a single sentinel.
var ErrOutsideOperatingHours = schedule.ErrOutsideOperatingHours

// CatalogProvider supplies the provider-directory snapshot for a garage:
// its service catalog and assembled weekly operating policy.
type CatalogProvider interface {
	GetCatalog(ctx context.Context, garageID uuid.UUID) (*service.GarageCatalog, error)
}

type BookingUsecase interface {
	CreateBooking(ctx context.Context, requesterID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	UpdateBooking(ctx context.Context, requesterID, bookingID uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, requesterID, bookingID uuid.UUID) error
	TransitionStatus(ctx context.Context, actorID, bookingID uuid.UUID, target entity.BookingStatus) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, requesterID uuid.UUID, isAdmin bool, bookingID uuid.UUID) (*dto.BookingResponse, error)
	GetMyBookings(ctx context.Context, requesterID uuid.UUID) (*dto.BookingListResponse, error)
	GetAllBookings(ctx context.Context) (*dto.BookingListResponse, error)
	SoftDeleteBooking(ctx context.Context, actorID, bookingID uuid.UUID) error
	RestoreBooking(ctx context.Context, actorID, bookingID uuid.UUID) error
	HardDeleteBooking(ctx context.Context, actorID, bookingID uuid.UUID) error
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	catalog      CatalogProvider
	auditService service.AuditService
	zone         schedule.Zone
	now          func() time.Time

	// Per-garage serialization point for the overlap check: two concurrent
	// creates for the same garage cannot both pass it.
	garageLocks sync.Map
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	catalog CatalogProvider,
	auditService service.AuditService,
	zone schedule.Zone,
	now func() time.Time,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		auditService: auditService,
		zone:         zone,
		now:          now,
	}
}

// CreateBooking validates the selection and the appointment instant, then
// persists a pending booking with server-derived totals.
//
// Flow:
// 1. Non-empty selection, garage exists and is active
// 2. Resolve each selected service against the catalog (inactive rejected)
// 3. Parse the local civil appointment instant, validate operating hours
// 4. Recompute totals, convert the instant to UTC
// 5. Under the garage lock, reject overlap with other active bookings
// 6. Insert booking + audit entry in one transaction
func (u *bookingUsecase) CreateBooking(ctx context.Context, requesterID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, ErrEmptyServiceSelection
	}

	catalog, err := u.catalog.GetCatalog(ctx, req.GarageID)
	if err != nil {
		u.log.Warnf("Failed to load catalog for garage %s: %+v", req.GarageID, err)
		return nil, fmt.Errorf("load garage catalog: %w", err)
	}
	if catalog == nil {
		return nil, ErrGarageNotFound
	}
	if !catalog.IsActive {
		return nil, ErrGarageInactive
	}

	lines, err := snapshotSelection(catalog, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	local, err := u.parseAppointment(req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	validator := schedule.Validator{Policy: catalog.Policy}
	if err := validator.Validate(local); err != nil {
		return nil, err
	}

	totalPrice, totalMinutes := entity.AggregateServiceLines(lines)
	appointmentAt := u.zone.ToUTC(local)

	unlock := u.lockGarage(req.GarageID)
	defer unlock()

	if err := u.checkOverlap(ctx, req.GarageID, appointmentAt, totalMinutes, uuid.Nil); err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		ID:                   uuid.New(),
		GarageID:             req.GarageID,
		RequesterID:          requesterID,
		BookingCode:          generateBookingCode(local),
		Services:             lines,
		TotalPrice:           totalPrice,
		TotalDurationMinutes: totalMinutes,
		AppointmentAt:        appointmentAt,
		Status:               entity.BookingStatusPending,
		Notes:                req.Notes,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Create(tx, booking); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, &requesterID, entity.AuditActionBookingCreate, booking.ID, converter.BookingToResponse(booking))
	})
	if err != nil {
		u.log.Errorf("Failed to insert booking: %+v", err)
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	u.log.Infof("Booking created: id=%s, garage=%s, at=%s, code=%s", booking.ID, booking.GarageID, booking.AppointmentAt.Format(time.RFC3339), booking.BookingCode)
	return converter.BookingToResponse(booking), nil
}

// UpdateBooking re-runs every create-time validation against the new
// selection and instant, then replaces the service snapshot and reschedules.
func (u *bookingUsecase) UpdateBooking(ctx context.Context, requesterID, bookingID uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	booking, err := u.loadOwned(ctx, requesterID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.IsTerminal() {
		return nil, ErrInvalidStatusTransition
	}

	if len(req.ServiceIDs) == 0 {
		return nil, ErrEmptyServiceSelection
	}

	catalog, err := u.catalog.GetCatalog(ctx, booking.GarageID)
	if err != nil {
		return nil, fmt.Errorf("load garage catalog: %w", err)
	}
	if catalog == nil {
		return nil, ErrGarageNotFound
	}

	lines, err := snapshotSelection(catalog, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	local, err := u.parseAppointment(req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	validator := schedule.Validator{Policy: catalog.Policy}
	if err := validator.Validate(local); err != nil {
		return nil, err
	}

	totalPrice, totalMinutes := entity.AggregateServiceLines(lines)
	appointmentAt := u.zone.ToUTC(local)

	unlock := u.lockGarage(booking.GarageID)
	defer unlock()

	if err := u.checkOverlap(ctx, booking.GarageID, appointmentAt, totalMinutes, booking.ID); err != nil {
		return nil, err
	}

	oldValue := converter.BookingToResponse(booking)

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Replace the snapshot wholesale; lines are owned by the booking.
		if err := tx.Where("booking_id = ?", booking.ID).Delete(&entity.ServiceLine{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].BookingID = booking.ID
		}
		booking.Services = lines
		booking.TotalPrice = totalPrice
		booking.TotalDurationMinutes = totalMinutes
		booking.AppointmentAt = appointmentAt
		booking.Notes = req.Notes

		if err := u.bookingRepo.Save(tx, booking); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, &requesterID, entity.AuditActionBookingUpdate, booking.ID, oldValue, converter.BookingToResponse(booking))
	})
	if err != nil {
		u.log.Errorf("Failed to update booking %s: %+v", bookingID, err)
		return nil, fmt.Errorf("persist booking update: %w", err)
	}

	u.log.Infof("Booking updated: id=%s, at=%s", booking.ID, booking.AppointmentAt.Format(time.RFC3339))
	return converter.BookingToResponse(booking), nil
}

// CancelBooking moves a booking to cancelled. Cancellation is a business
// state; the IsDeleted retention flag is untouched.
func (u *bookingUsecase) CancelBooking(ctx context.Context, requesterID, bookingID uuid.UUID) error {
	booking, err := u.loadOwned(ctx, requesterID, bookingID)
	if err != nil {
		return err
	}
	if !booking.CanTransitionTo(entity.BookingStatusCancelled) {
		return ErrInvalidStatusTransition
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.bookingRepo.UpdateStatus(tx, booking.ID, booking.Status, entity.BookingStatusCancelled)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost a race against another transition.
			return ErrInvalidStatusTransition
		}
		return u.auditService.LogUpdate(ctx, tx, &requesterID, entity.AuditActionBookingCancel, booking.ID, string(booking.Status), string(entity.BookingStatusCancelled))
	})
	if err != nil {
		if errors.Is(err, ErrInvalidStatusTransition) {
			return ErrInvalidStatusTransition
		}
		u.log.Warnf("Failed to cancel booking %s: %+v", bookingID, err)
		return fmt.Errorf("persist cancellation: %w", err)
	}

	u.log.Infof("Booking cancelled: id=%s", bookingID)
	return nil
}

// TransitionStatus is the administrative path for confirmed/completed.
// The customer-facing surface never calls it.
func (u *bookingUsecase) TransitionStatus(ctx context.Context, actorID, bookingID uuid.UUID, target entity.BookingStatus) (*dto.BookingResponse, error) {
	if target != entity.BookingStatusConfirmed && target != entity.BookingStatusCompleted {
		return nil, ErrInvalidStatusTransition
	}

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if !booking.CanTransitionTo(target) {
		return nil, ErrInvalidStatusTransition
	}

	action := entity.AuditActionBookingConfirm
	if target == entity.BookingStatusCompleted {
		action = entity.AuditActionBookingComplete
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.bookingRepo.UpdateStatus(tx, booking.ID, booking.Status, target)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrInvalidStatusTransition
		}
		return u.auditService.LogUpdate(ctx, tx, &actorID, action, booking.ID, string(booking.Status), string(target))
	})
	if err != nil {
		if errors.Is(err, ErrInvalidStatusTransition) {
			return nil, ErrInvalidStatusTransition
		}
		u.log.Warnf("Failed to transition booking %s to %s: %+v", bookingID, target, err)
		return nil, fmt.Errorf("persist status transition: %w", err)
	}

	booking.Status = target
	u.log.Infof("Booking %s transitioned to %s", bookingID, target)
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetBooking(ctx context.Context, requesterID uuid.UUID, isAdmin bool, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil || (booking.IsDeleted && !isAdmin) {
		return nil, ErrBookingNotFound
	}
	if !isAdmin && booking.RequesterID != requesterID {
		return nil, ErrBookingNotOwned
	}
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetMyBookings(ctx context.Context, requesterID uuid.UUID) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByRequesterID(u.db.WithContext(ctx), requesterID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for requester %s: %+v", requesterID, err)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *bookingUsecase) GetAllBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list all bookings: %+v", err)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// SoftDeleteBooking flips the retention flag. It is idempotent and does
// not change the booking status.
func (u *bookingUsecase) SoftDeleteBooking(ctx context.Context, actorID, bookingID uuid.UUID) error {
	return u.setDeleted(ctx, actorID, bookingID, true, entity.AuditActionBookingSoftDelete)
}

// RestoreBooking clears the retention flag.
func (u *bookingUsecase) RestoreBooking(ctx context.Context, actorID, bookingID uuid.UUID) error {
	return u.setDeleted(ctx, actorID, bookingID, false, entity.AuditActionBookingRestore)
}

// HardDeleteBooking removes the record entirely. Administrative only; the
// customer surface never reaches it.
func (u *bookingUsecase) HardDeleteBooking(ctx context.Context, actorID, bookingID uuid.UUID) error {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionBookingHardDelete, booking.ID, converter.BookingToResponse(booking)); err != nil {
			return err
		}
		return u.bookingRepo.HardDelete(tx, booking.ID)
	})
	if err != nil {
		u.log.Warnf("Failed to hard delete booking %s: %+v", bookingID, err)
		return fmt.Errorf("hard delete booking: %w", err)
	}

	u.log.Infof("Booking hard deleted: id=%s", bookingID)
	return nil
}

func (u *bookingUsecase) setDeleted(ctx context.Context, actorID, bookingID uuid.UUID, deleted bool, action string) error {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.IsDeleted == deleted {
		return nil
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := u.bookingRepo.SetDeleted(tx, booking.ID, deleted); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, &actorID, action, booking.ID, booking.IsDeleted, deleted)
	})
	if err != nil {
		u.log.Warnf("Failed to set deleted=%v on booking %s: %+v", deleted, bookingID, err)
		return fmt.Errorf("update retention flag: %w", err)
	}
	return nil
}

// loadOwned fetches a live booking and verifies ownership.
func (u *bookingUsecase) loadOwned(ctx context.Context, requesterID, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil || booking.IsDeleted {
		return nil, ErrBookingNotFound
	}
	if booking.RequesterID != requesterID {
		return nil, ErrBookingNotOwned
	}
	return booking, nil
}

// checkOverlap rejects an interval already occupied by another active
// booking of the same garage. Caller must hold the garage lock.
func (u *bookingUsecase) checkOverlap(ctx context.Context, garageID uuid.UUID, startUTC time.Time, durationMinutes int, excludeID uuid.UUID) error {
	endUTC := startUTC.Add(time.Duration(durationMinutes) * time.Minute)

	// A booking starting up to a day earlier can still reach into the new
	// interval; no appointment is longer than that.
	from := startUTC.Add(-24 * time.Hour)
	others, err := u.bookingRepo.FindActiveByGarageBetween(u.db.WithContext(ctx), garageID, from, endUTC)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	for i := range others {
		if others[i].ID == excludeID {
			continue
		}
		if others[i].OverlapsInterval(startUTC, endUTC) {
			return ErrTimeSlotTaken
		}
	}
	return nil
}

func (u *bookingUsecase) parseAppointment(dateStr, timeStr string) (time.Time, error) {
	date, err := u.zone.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, ErrInvalidAppointmentDate
	}
	clock, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, ErrInvalidAppointmentTime
	}
	return u.zone.At(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute()), nil
}

func (u *bookingUsecase) lockGarage(garageID uuid.UUID) func() {
	v, _ := u.garageLocks.LoadOrStore(garageID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// snapshotSelection resolves selected ids against the catalog and copies
// them into immutable booking lines.
func snapshotSelection(catalog *service.GarageCatalog, serviceIDs []uuid.UUID) ([]entity.ServiceLine, error) {
	lines := make([]entity.ServiceLine, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		svc := catalog.ServiceByID(id)
		if svc == nil {
			return nil, ErrServiceNotFound
		}
		if !svc.Active {
			return nil, ErrServiceInactive
		}
		lines = append(lines, svc.Snapshot())
	}
	return lines, nil
}

// generateBookingCode generates a unique booking code: GB-YYYYMMDD-XXXXXX
func generateBookingCode(appointmentLocal time.Time) string {
	dateStr := appointmentLocal.Format("20060102")
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	return fmt.Sprintf("GB-%s-%06X", dateStr, randomBytes)
}
