package entity

const DefaultMultiplier = 1.0

type Taxi struct {
	Base
	Name        string  `db:"name"`
	VehicleType string  `db:"vehicle_type"`
	PricePerKm  float64 `db:"price_per_km"`
	Multiplier  float64 `db:"multiplier"`
	IsAvailable bool    `db:"is_available"`
}
