package response

import (
	"time"

	"taxi-booking/internal/data/entity"
)

type TaxiResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	VehicleType string    `json:"vehicle_type"`
	PricePerKm  float64   `json:"price_per_km"`
	Multiplier  float64   `json:"multiplier"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

type QuoteResponse struct {
	TaxiID     string  `json:"taxi_id"`
	DistanceKm float64 `json:"distance_km"`
	Price      float64 `json:"price"`
}

func TaxiToResponse(taxi *entity.Taxi) TaxiResponse {
	return TaxiResponse{
		ID:          taxi.ID.String(),
		Name:        taxi.Name,
		VehicleType: taxi.VehicleType,
		PricePerKm:  taxi.PricePerKm,
		Multiplier:  taxi.Multiplier,
		IsAvailable: taxi.IsAvailable,
		CreatedAt:   taxi.CreatedAt,
	}
}

func TaxisToResponse(taxis []*entity.Taxi) []TaxiResponse {
	out := make([]TaxiResponse, 0, len(taxis))
	for _, t := range taxis {
		out = append(out, TaxiToResponse(t))
	}
	return out
}
