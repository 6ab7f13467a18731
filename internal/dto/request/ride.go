package request

type UpdateRideStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted en_route finished cancelled"`
}

type RideFilterRequest struct {
	Status string `validate:"omitempty,oneof=all pending accepted en_route finished cancelled"`
	Date   string `validate:"omitempty,oneof=all today week month year"`
}
