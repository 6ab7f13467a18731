package response

import (
	"time"

	"taxi-booking/internal/data/entity"
	"taxi-booking/pkg/utils"
)

type RideResponse struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	TaxiID        string            `json:"taxi_id"`
	StartLocation string            `json:"start_location"`
	StartLat      float64           `json:"start_lat"`
	StartLng      float64           `json:"start_lng"`
	EndLocation   string            `json:"end_location"`
	EndLat        float64           `json:"end_lat"`
	EndLng        float64           `json:"end_lng"`
	DistanceKm    float64           `json:"distance_km"`
	EstimatedTime int               `json:"estimated_time"`
	Price         float64           `json:"price"`
	RideDate      string            `json:"ride_date"`
	RideTime      string            `json:"ride_time"`
	Status        entity.RideStatus `json:"status"`
	NextStatuses  []string          `json:"next_statuses"`
	Customer      *RideCustomer     `json:"customer,omitempty"`
	Taxi          *RideTaxi         `json:"taxi,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

type RideCustomer struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type RideTaxi struct {
	Name        string `json:"name"`
	VehicleType string `json:"vehicle_type"`
	Deleted     bool   `json:"deleted,omitempty"`
}

func RideToResponse(ride *entity.RideWithDetails) RideResponse {
	next := make([]string, 0, 2)
	for _, s := range ride.Status.NextStatuses() {
		next = append(next, string(s))
	}

	resp := RideResponse{
		ID:            ride.ID.String(),
		UserID:        ride.UserID.String(),
		TaxiID:        ride.TaxiID.String(),
		StartLocation: ride.StartLocation,
		StartLat:      ride.StartLat,
		StartLng:      ride.StartLng,
		EndLocation:   ride.EndLocation,
		EndLat:        ride.EndLat,
		EndLng:        ride.EndLng,
		DistanceKm:    ride.DistanceKm,
		EstimatedTime: ride.EstimatedTime,
		Price:         ride.Price,
		RideDate:      utils.FormatDate(ride.RideDate),
		RideTime:      ride.RideTime,
		Status:        ride.Status,
		NextStatuses:  next,
		CreatedAt:     ride.CreatedAt,
	}

	if ride.Profile != nil {
		resp.Customer = &RideCustomer{
			FullName: ride.Profile.FullName,
			Email:    ride.Profile.Email,
			Phone:    ride.Profile.Phone,
		}
	}
	if ride.Taxi != nil {
		resp.Taxi = &RideTaxi{
			Name:        ride.Taxi.Name,
			VehicleType: ride.Taxi.VehicleType,
			Deleted:     ride.Taxi.IsDeleted(),
		}
	}

	return resp
}

func RidesToResponse(rides []*entity.RideWithDetails) []RideResponse {
	out := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		out = append(out, RideToResponse(r))
	}
	return out
}
