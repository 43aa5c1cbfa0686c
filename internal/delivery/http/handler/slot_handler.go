package handler

import (
	"errors"
	"net/http"

	"garage-booking/internal/usecase"
	"garage-booking/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
	}
}

// GetAvailableSlots lists bookable start times for a garage. The date
// query parameter is optional; without it the earliest selectable date is
// used.
func (h *SlotHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	garageID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid garage ID", nil)
		return
	}

	slots, err := h.slotUsecase.GetAvailableSlots(r.Context(), garageID, r.URL.Query().Get("date"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrGarageNotFound):
			response.NotFound(w, "Garage not found")
		case errors.Is(err, usecase.ErrInvalidAppointmentDate):
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
