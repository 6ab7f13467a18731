package utils

import "math"

// CalculateFare returns distance * price per km * multiplier rounded to cents.
func CalculateFare(distanceKm, pricePerKm, multiplier float64) float64 {
	return RoundTo(distanceKm*pricePerKm*multiplier, 2)
}

// RoundTo rounds half away from zero at the given number of decimals.
func RoundTo(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}
