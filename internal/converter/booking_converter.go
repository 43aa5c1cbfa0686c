package converter

import (
	"garage-booking/internal/delivery/dto"
	"garage-booking/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	services := make([]dto.ServiceLineResponse, len(booking.Services))
	for i, line := range booking.Services {
		services[i] = dto.ServiceLineResponse{
			Name:            line.Name,
			Price:           line.Price,
			DurationMinutes: line.DurationMinutes,
		}
	}

	return &dto.BookingResponse{
		ID:                   booking.ID,
		GarageID:             booking.GarageID,
		RequesterID:          booking.RequesterID,
		BookingCode:          booking.BookingCode,
		Services:             services,
		TotalPrice:           booking.TotalPrice,
		TotalDurationMinutes: booking.TotalDurationMinutes,
		AppointmentAt:        booking.AppointmentAt,
		Status:               string(booking.Status),
		Notes:                booking.Notes,
		IsDeleted:            booking.IsDeleted,
		CreatedAt:            booking.CreatedAt,
		UpdatedAt:            booking.UpdatedAt,
	}
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
