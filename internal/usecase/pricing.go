package usecase

import (
	"taxi-booking/internal/data/entity"
	"taxi-booking/pkg/utils"
)

// QuotePrice prices a route with a taxi's rate. Without both it is 0.
func QuotePrice(route *entity.Route, taxi *entity.Taxi) float64 {
	if route == nil || taxi == nil {
		return 0
	}
	return utils.CalculateFare(route.DistanceKm, taxi.PricePerKm, taxi.Multiplier)
}
