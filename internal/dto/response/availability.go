package response

import (
	"taxi-booking/internal/data/entity"
	"taxi-booking/pkg/utils"
)

type AvailabilityResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	IsAvailable bool   `json:"is_available"`
}

func AvailabilityToResponse(slot *entity.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		ID:          slot.ID.String(),
		Date:        utils.FormatDate(slot.Date),
		TimeSlot:    slot.TimeSlot,
		IsAvailable: slot.IsAvailable,
	}
}

func AvailabilitiesToResponse(slots []*entity.Availability) []AvailabilityResponse {
	out := make([]AvailabilityResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, AvailabilityToResponse(s))
	}
	return out
}
