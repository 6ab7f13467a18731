package request

type CreateTaxiRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	VehicleType string   `json:"vehicle_type" validate:"required,max=100"`
	PricePerKm  float64  `json:"price_per_km" validate:"gt=0"`
	Multiplier  *float64 `json:"multiplier,omitempty" validate:"omitempty,gt=0"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}

type UpdateTaxiRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	VehicleType string   `json:"vehicle_type" validate:"required,max=100"`
	PricePerKm  *float64 `json:"price_per_km" validate:"required,gte=0"`
	Multiplier  *float64 `json:"multiplier" validate:"required,gt=0"`
	IsAvailable *bool    `json:"is_available" validate:"required"`
}
