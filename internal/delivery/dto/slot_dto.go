package dto

import "github.com/google/uuid"

// Response DTOs

// SlotListResponse lists the bookable start times for one garage and one
// local calendar date. Slots are HH:MM local wall-clock strings.
type SlotListResponse struct {
	GarageID   uuid.UUID `json:"garage_id"`
	Date       string    `json:"date"`
	Slots      []string  `json:"slots"`
	MinDate    string    `json:"min_date"`
	HoursToday string    `json:"hours_today"`
}
