package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"garage-booking/internal/delivery/dto"
	"garage-booking/internal/delivery/http/middleware"
	"garage-booking/internal/domain/entity"
	"garage-booking/internal/usecase"
	"garage-booking/pkg/response"
	"garage-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), requesterID, &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	var req dto.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.UpdateBooking(r.Context(), requesterID, bookingID, &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking updated successfully", booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	if err := h.bookingUsecase.CancelBooking(r.Context(), requesterID, bookingID); err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", nil)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), requesterID, roleID == entity.RoleIDAdmin, bookingID)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookings, err := h.bookingUsecase.GetMyBookings(r.Context(), requesterID)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.GetAllBookings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	var req dto.TransitionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.TransitionStatus(r.Context(), actorID, bookingID, entity.BookingStatus(req.Status))
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}

func (h *BookingHandler) SoftDeleteBooking(w http.ResponseWriter, r *http.Request) {
	h.retentionOp(w, r, h.bookingUsecase.SoftDeleteBooking, "Booking deleted successfully")
}

func (h *BookingHandler) RestoreBooking(w http.ResponseWriter, r *http.Request) {
	h.retentionOp(w, r, h.bookingUsecase.RestoreBooking, "Booking restored successfully")
}

func (h *BookingHandler) HardDeleteBooking(w http.ResponseWriter, r *http.Request) {
	h.retentionOp(w, r, h.bookingUsecase.HardDeleteBooking, "Booking permanently deleted")
}

func (h *BookingHandler) retentionOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actorID, bookingID uuid.UUID) error, message string) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	if err := op(r.Context(), actorID, bookingID); err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, message, nil)
}

// writeBookingError maps usecase failures onto HTTP statuses. Anything
// outside the known taxonomy is a storage failure and reported as 500.
func (h *BookingHandler) writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyServiceSelection):
		response.Error(w, http.StatusBadRequest, "At least one service must be selected", nil)
	case errors.Is(err, usecase.ErrInvalidAppointmentDate),
		errors.Is(err, usecase.ErrInvalidAppointmentTime):
		response.Error(w, http.StatusBadRequest, "Invalid appointment date or time", nil)
	case errors.Is(err, usecase.ErrOutsideOperatingHours):
		response.Error(w, http.StatusBadRequest, "Appointment is outside operating hours", nil)
	case errors.Is(err, usecase.ErrServiceNotFound):
		response.Error(w, http.StatusBadRequest, "Selected service not found", nil)
	case errors.Is(err, usecase.ErrServiceInactive):
		response.Error(w, http.StatusBadRequest, "Selected service is no longer offered", nil)
	case errors.Is(err, usecase.ErrGarageNotFound):
		response.NotFound(w, "Garage not found")
	case errors.Is(err, usecase.ErrGarageInactive):
		response.Conflict(w, "Garage is not accepting bookings")
	case errors.Is(err, usecase.ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, usecase.ErrBookingNotOwned):
		response.Forbidden(w, "Booking does not belong to you")
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		response.Conflict(w, "Booking status does not allow this operation")
	case errors.Is(err, usecase.ErrTimeSlotTaken):
		response.Conflict(w, "Another booking already occupies this time")
	default:
		response.InternalServerError(w, "Failed to process booking")
	}
}
