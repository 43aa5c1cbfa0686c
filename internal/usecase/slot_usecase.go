package usecase

import (
	"context"
	"time"

	"garage-booking/internal/delivery/dto"
	"garage-booking/internal/schedule"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SlotUsecase interface {
	// GetAvailableSlots lists bookable start times for a garage on a local
	// calendar date. An empty date means the earliest selectable date.
	GetAvailableSlots(ctx context.Context, garageID uuid.UUID, dateStr string) (*dto.SlotListResponse, error)
}

type slotUsecase struct {
	log     *logrus.Logger
	catalog CatalogProvider
	zone    schedule.Zone
	now     func() time.Time
}

func NewSlotUsecase(log *logrus.Logger, catalog CatalogProvider, zone schedule.Zone, now func() time.Time) SlotUsecase {
	return &slotUsecase{
		log:     log,
		catalog: catalog,
		zone:    zone,
		now:     now,
	}
}

func (u *slotUsecase) GetAvailableSlots(ctx context.Context, garageID uuid.UUID, dateStr string) (*dto.SlotListResponse, error) {
	catalog, err := u.catalog.GetCatalog(ctx, garageID)
	if err != nil {
		u.log.Warnf("Failed to load catalog for garage %s: %+v", garageID, err)
		return nil, err
	}
	if catalog == nil {
		return nil, ErrGarageNotFound
	}

	gen := schedule.NewGenerator(catalog.Policy, u.zone, u.now)

	var date time.Time
	if dateStr == "" {
		date = gen.MinSelectableDate()
	} else {
		date, err = u.zone.ParseDate(dateStr)
		if err != nil {
			return nil, ErrInvalidAppointmentDate
		}
	}

	slots := gen.SlotsFor(date)
	formatted := make([]string, len(slots))
	for i, slot := range slots {
		formatted[i] = slot.Format("15:04")
	}

	todayRule := catalog.Policy.RuleFor(u.zone.ToLocal(u.now()))

	return &dto.SlotListResponse{
		GarageID:   garageID,
		Date:       date.Format("2006-01-02"),
		Slots:      formatted,
		MinDate:    gen.MinSelectableDate().Format("2006-01-02"),
		HoursToday: todayRule.Describe(),
	}, nil
}
