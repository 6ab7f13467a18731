package usecase

import (
	"taxi-booking/internal/data/repository"
	"taxi-booking/pkg/events"
	"taxi-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Taxi         TaxiService
	Availability AvailabilityService
	Ride         RideService
	Booking      BookingService
}

func NewService(
	repo *repository.Repository,
	routes RouteFinder,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	loc := config.App.Location()
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo.Profile, log),
		Taxi:         NewTaxiService(repo.Taxi, log),
		Availability: NewAvailabilityService(repo.Availability, loc, log),
		Ride:         NewRideService(repo.Ride, publisher, loc, log),
		Booking:      NewBookingService(repo, routes, publisher, config, log),
	}
}
