package usecase

import (
	"context"
	"time"

	"taxi-booking/internal/data/entity"
	"taxi-booking/internal/data/repository"
	"taxi-booking/internal/dto/request"
	"taxi-booking/internal/dto/response"
	"taxi-booking/pkg/events"
	"taxi-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	FilterAll   = "all"
	FilterToday = "today"
	FilterWeek  = "week"
	FilterMonth = "month"
	FilterYear  = "year"
)

// RideService is the admin view over every ride plus a customer's own history.
type RideService interface {
	List(ctx context.Context, filter *request.RideFilterRequest) ([]response.RideResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*response.RideResponse, error)
	Advance(ctx context.Context, id uuid.UUID, req *request.UpdateRideStatusRequest) (*response.RideResponse, error)
	UserRides(ctx context.Context, identity *entity.Identity, page request.PaginatedRequest) (*response.PaginatedResponse[response.RideResponse], error)
}

type rideService struct {
	rideRepo  repository.RideRepository
	publisher events.Publisher
	loc       *time.Location
	now       func() time.Time
	log       *zap.Logger
}

func NewRideService(rideRepo repository.RideRepository, publisher events.Publisher, loc *time.Location, log *zap.Logger) RideService {
	return &rideService{
		rideRepo:  rideRepo,
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
		log:       log.With(zap.String("service", "ride")),
	}
}

func (s *rideService) List(ctx context.Context, filter *request.RideFilterRequest) ([]response.RideResponse, error) {
	if err := validate(filter); err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.FindAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterRides(rides, filter.Status, filter.Date, s.now(), s.loc)
	return response.RidesToResponse(filtered), nil
}

func (s *rideService) Get(ctx context.Context, id uuid.UUID) (*response.RideResponse, error) {
	ride, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.RideToResponse(ride)
	return &resp, nil
}

// Advance applies one lifecycle step. The current status is re-checked by
// the update itself, so of two concurrent identical requests one fails.
func (s *rideService) Advance(ctx context.Context, id uuid.UUID, req *request.UpdateRideStatusRequest) (*response.RideResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	next := entity.RideStatus(req.Status)

	ride, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := ride.Status
	if err := entity.CheckTransition(previous, next); err != nil {
		s.log.Warn("Rejected ride transition",
			zap.String("ride_id", id.String()),
			zap.String("from", string(previous)),
			zap.String("to", string(next)))
		return nil, err
	}

	if err := s.rideRepo.UpdateStatus(ctx, id, previous, next); err != nil {
		return nil, err
	}

	now := s.now()
	ride.Status = next
	ride.UpdatedAt = now

	s.log.Info("Ride status changed",
		zap.String("ride_id", id.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))

	s.publisher.Publish(ctx, events.RideEvent{
		Type:           events.RideStatusChanged,
		RideID:         ride.ID,
		UserID:         ride.UserID,
		Status:         string(next),
		PreviousStatus: string(previous),
		At:             now,
	})

	resp := response.RideToResponse(ride)
	return &resp, nil
}

func (s *rideService) UserRides(ctx context.Context, identity *entity.Identity, page request.PaginatedRequest) (*response.PaginatedResponse[response.RideResponse], error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}

	rides, err := s.rideRepo.FindByUserID(ctx, identity.UserID(), page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.rideRepo.CountByUserID(ctx, identity.UserID())
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.RidesToResponse(rides), page.Page, page.PerPage, total), nil
}

func (s *rideService) find(ctx context.Context, id uuid.UUID) (*entity.RideWithDetails, error) {
	ride, err := s.rideRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, notFound("ride", id)
	}
	return ride, nil
}

// FilterRides keeps rides matching a status ("" or "all" for any) and a
// date window anchored at local midnight of now: "today" is the same
// calendar day, "week", "month" and "year" reach back from that midnight.
// Order is preserved.
func FilterRides(rides []*entity.RideWithDetails, status, window string, now time.Time, loc *time.Location) []*entity.RideWithDetails {
	midnight := utils.StartOfDay(now, loc)

	var from time.Time
	switch window {
	case FilterWeek:
		from = midnight.AddDate(0, 0, -7)
	case FilterMonth:
		from = midnight.AddDate(0, -1, 0)
	case FilterYear:
		from = midnight.AddDate(-1, 0, 0)
	}

	out := make([]*entity.RideWithDetails, 0, len(rides))
	for _, ride := range rides {
		if status != "" && status != FilterAll && string(ride.Status) != status {
			continue
		}

		day := utils.CalendarDate(ride.RideDate, loc)
		switch window {
		case FilterToday:
			if !day.Equal(midnight) {
				continue
			}
		case FilterWeek, FilterMonth, FilterYear:
			if day.Before(from) {
				continue
			}
		}

		out = append(out, ride)
	}
	return out
}
