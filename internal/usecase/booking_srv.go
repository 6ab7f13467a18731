package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
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

// RouteFinder looks up a driving route between two points.
type RouteFinder interface {
	Lookup(ctx context.Context, start, end entity.Point) (*entity.Route, error)
}

// BookingService drives a customer's booking draft from the first map
// point to a confirmed ride.
type BookingService interface {
	GetDraft(ctx context.Context, identity *entity.Identity) (*response.DraftResponse, error)
	SelectPoint(ctx context.Context, identity *entity.Identity, req *request.PointRequest) (*response.DraftResponse, error)
	SelectTaxi(ctx context.Context, identity *entity.Identity, req *request.SelectTaxiRequest) (*response.DraftResponse, error)
	SelectDate(ctx context.Context, identity *entity.Identity, req *request.SelectDateRequest) (*response.DraftResponse, error)
	SelectTime(ctx context.Context, identity *entity.Identity, req *request.SelectTimeRequest) (*response.DraftResponse, error)
	Reset(ctx context.Context, identity *entity.Identity) (*response.DraftResponse, error)
	Confirm(ctx context.Context, identity *entity.Identity) (*response.RideResponse, error)
	LookupRoute(ctx context.Context, req *request.RouteLookupRequest) (*response.RouteResponse, error)
}

type bookingService struct {
	repo       *repository.Repository
	routes     RouteFinder
	publisher  events.Publisher
	resetDelay time.Duration
	loc        *time.Location
	now        func() time.Time
	locks      userLocks
	log        *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	routes RouteFinder,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:       repo,
		routes:     routes,
		publisher:  publisher,
		resetDelay: config.Booking.ResetDelay,
		loc:        config.App.Location(),
		now:        time.Now,
		log:        log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetDraft(ctx context.Context, identity *entity.Identity) (*response.DraftResponse, error) {
	var resp *response.DraftResponse
	err := s.withDraft(ctx, identity, func(draft *entity.BookingDraft) (bool, error) {
		var err error
		resp, err = s.render(ctx, draft)
		return false, err
	})
	return resp, err
}

// SelectPoint adds a map point and, once both ends are known, fetches the
// route. A failed lookup still keeps the points.
func (s *bookingService) SelectPoint(ctx context.Context, identity *entity.Identity, req *request.PointRequest) (*response.DraftResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var resp *response.DraftResponse
	err := s.withDraft(ctx, identity, func(draft *entity.BookingDraft) (bool, error) {
		s.beginEdit(draft)

		if draft.SelectPoint(entity.Point{Lat: *req.Lat, Lng: *req.Lng}) {
			route, err := s.routes.Lookup(ctx, *draft.Start, *draft.End)
			if err != nil {
				s.log.Warn("Route lookup failed",
					zap.Error(err),
					zap.String("user_id", draft.UserID.String()))
				if saveErr := s.store(ctx, draft); saveErr != nil {
					return false, saveErr
				}
				return false, err
			}
			draft.SetRoute(route)
		}

		var err error
		resp, err = s.render(ctx, draft)
		return true, err
	})
	return resp, err
}

func (s *bookingService) SelectTaxi(ctx context.Context, identity *entity.Identity, req *request.SelectTaxiRequest) (*response.DraftResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	taxiID, err := uuid.Parse(req.TaxiID)
	if err != nil {
		return nil, fieldError("TaxiID", "Must be a valid UUID")
	}

	taxi, err := s.repo.Taxi.FindByID(ctx, taxiID)
	if err != nil {
		return nil, err
	}
	if taxi == nil {
		return nil, notFound("taxi", taxiID)
	}
	if !taxi.IsAvailable {
		return nil, ErrTaxiUnavailable
	}

	var resp *response.DraftResponse
	err = s.withDraft(ctx, identity, func(draft *entity.BookingDraft) (bool, error) {
		s.beginEdit(draft)
		draft.SelectTaxi(taxi.ID)
		resp = s.renderWith(draft, taxi)
		return true, nil
	})
	return resp, err
}

// SelectDate accepts only offered dates and forgets the chosen time.
func (s *bookingService) SelectDate(ctx context.Context, identity *entity.Identity, req *request.SelectDateRequest) (*response.DraftResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	offered, err := s.repo.Availability.FindDatesFrom(ctx, s.today())
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(offered, func(d time.Time) bool { return utils.FormatDate(d) == req.Date }) {
		return nil, fieldError("Date", "Date is not offered")
	}

	var resp *response.DraftResponse
	err = s.withDraft(ctx, identity, func(draft *entity.BookingDraft) (bool, error) {
		s.beginEdit(draft)
		draft.SelectDate(req.Date)

		var err error
		resp, err = s.render(ctx, draft)
		return true, err
	})
	return resp, err
}

func (s *bookingService) SelectTime(ctx context.Context, identity *entity.Identity, req *request.SelectTimeRequest) (*response.DraftResponse, error) {
	req.Time = strings.TrimSpace(req.Time)
	if err := validate(req); err != nil {
		return nil, err
	}

	var resp *response.DraftResponse
	err := s.withDraft(ctx, identity, func(draft *entity.BookingDraft) (bool, error) {
		s.beginEdit(draft)
		if draft.Date == "" {
			return false, fieldError("Date", "Select a date first")
		}

		day, err := s.bookableDay(draft.Date)
		if err != nil {
			return false, err
		}
		slots, err := s.repo.Availability.FindAvailableByDate(ctx, day)
		if err != nil {
			return false, err
		}
		if !slices.ContainsFunc(slots, func(a *entity.Availability) bool { return a.TimeSlot == req.Time }) {
			return false, fmt.Errorf("%w: %s %s", ErrSlotUnavailable, draft.Date, req.Time)
		}

		draft.SelectTime(req.Time)
		resp, err = s.render(ctx, draft)
		return true, err
	})
	return resp, err
}

// Reset clears the draft's points, route, date and time. The taxi stays.
func (s *bookingService) Reset(ctx context.Context, identity *entity.Identity) (*response.DraftResponse, error) {
	var resp *response.DraftResponse
	err := s.withDraft(ctx, identity, func(draft *entity.BookingDraft) (bool, error) {
		draft.Reset()

		var err error
		resp, err = s.render(ctx, draft)
		return true, err
	})
	return resp, err
}

// Confirm writes the ride and books its slot in one transaction. Nothing is
// written when a selection is missing or the slot was taken meanwhile.
func (s *bookingService) Confirm(ctx context.Context, identity *entity.Identity) (*response.RideResponse, error) {
	var resp *response.RideResponse
	err := s.withDraft(ctx, identity, func(draft *entity.BookingDraft) (bool, error) {
		if draft.SubmittedAt != nil {
			return false, ErrAlreadySubmitted
		}
		if missing := draft.Missing(); len(missing) > 0 {
			return false, missingFields(missing)
		}

		rideDate, err := s.bookableDay(draft.Date)
		if err != nil {
			return false, err
		}

		taxi, err := s.repo.Taxi.FindByID(ctx, *draft.TaxiID)
		if err != nil {
			return false, err
		}
		if taxi == nil {
			return false, notFound("taxi", *draft.TaxiID)
		}
		if !taxi.IsAvailable {
			return false, ErrTaxiUnavailable
		}

		now := s.now()
		ride := &entity.Ride{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:        identity.UserID(),
			TaxiID:        taxi.ID,
			StartLocation: utils.FormatCoordinate(draft.Start.Lat, draft.Start.Lng),
			StartLat:      draft.Start.Lat,
			StartLng:      draft.Start.Lng,
			EndLocation:   utils.FormatCoordinate(draft.End.Lat, draft.End.Lng),
			EndLat:        draft.End.Lat,
			EndLng:        draft.End.Lng,
			DistanceKm:    draft.Route.DistanceKm,
			EstimatedTime: int(math.Round(draft.Route.DurationMin)),
			Price:         QuotePrice(draft.Route, taxi),
			RideDate:      rideDate,
			RideTime:      draft.Time,
			Status:        entity.RideStatusPending,
		}

		if err := s.repo.Ride.CreateWithSlot(ctx, ride); err != nil {
			if errors.Is(err, ErrSlotUnavailable) {
				s.log.Warn("Slot taken before confirmation",
					zap.String("user_id", ride.UserID.String()),
					zap.String("date", draft.Date),
					zap.String("time", draft.Time))
			}
			return false, err
		}

		draft.MarkSubmitted(ride.ID, now)

		s.log.Info("Ride booked",
			zap.String("ride_id", ride.ID.String()),
			zap.String("user_id", ride.UserID.String()),
			zap.Float64("price", ride.Price))

		s.publisher.Publish(ctx, events.RideEvent{
			Type:   events.RideCreated,
			RideID: ride.ID,
			UserID: ride.UserID,
			Status: string(ride.Status),
			At:     now,
		})

		out := response.RideToResponse(&entity.RideWithDetails{Ride: *ride, Profile: identity.Profile, Taxi: taxi})
		resp = &out
		return true, nil
	})
	return resp, err
}

func (s *bookingService) LookupRoute(ctx context.Context, req *request.RouteLookupRequest) (*response.RouteResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	route, err := s.routes.Lookup(ctx,
		entity.Point{Lat: *req.Start.Lat, Lng: *req.Start.Lng},
		entity.Point{Lat: *req.End.Lat, Lng: *req.End.Lng},
	)
	if err != nil {
		return nil, err
	}
	return response.RouteToResponse(route), nil
}

// withDraft loads the caller's draft under a per-user lock, runs fn and
// saves the draft when fn reports a change.
func (s *bookingService) withDraft(ctx context.Context, identity *entity.Identity, fn func(*entity.BookingDraft) (bool, error)) error {
	if identity == nil || identity.Profile == nil {
		return ErrUnauthorized
	}
	userID := identity.UserID()

	unlock := s.locks.lock(userID)
	defer unlock()

	draft, err := s.repo.Draft.Get(ctx, userID)
	if err != nil {
		return err
	}

	changed := false
	if draft == nil {
		draft = entity.NewBookingDraft(userID)
	} else if draft.ExpireSubmission(s.now(), s.resetDelay) {
		changed = true
	}

	dirty, err := fn(draft)
	if err != nil {
		if changed {
			if saveErr := s.store(ctx, draft); saveErr != nil {
				s.log.Warn("Failed to save expired draft", zap.Error(saveErr))
			}
		}
		return err
	}

	if changed || dirty {
		return s.store(ctx, draft)
	}
	return nil
}

// store saves the draft, or drops it once nothing is selected anymore.
func (s *bookingService) store(ctx context.Context, draft *entity.BookingDraft) error {
	if draft.IsEmpty() {
		return s.repo.Draft.Delete(ctx, draft.UserID)
	}
	return s.repo.Draft.Save(ctx, draft)
}

// beginEdit starts a fresh booking when the previous one was already submitted.
func (s *bookingService) beginEdit(draft *entity.BookingDraft) {
	if draft.SubmittedAt != nil {
		draft.Reset()
	}
}

func (s *bookingService) render(ctx context.Context, draft *entity.BookingDraft) (*response.DraftResponse, error) {
	var taxi *entity.Taxi
	if draft.TaxiID != nil && draft.Route != nil {
		var err error
		taxi, err = s.repo.Taxi.FindByID(ctx, *draft.TaxiID)
		if err != nil {
			return nil, err
		}
	}
	return s.renderWith(draft, taxi), nil
}

func (s *bookingService) renderWith(draft *entity.BookingDraft, taxi *entity.Taxi) *response.DraftResponse {
	resp := response.DraftToResponse(draft, QuotePrice(draft.Route, taxi))
	return &resp
}

func (s *bookingService) today() time.Time {
	return utils.DateOnly(utils.StartOfDay(s.now(), s.loc))
}

// bookableDay parses a draft date and rejects days before today.
func (s *bookingService) bookableDay(value string) (time.Time, error) {
	day, err := parseDay("Date", value, s.loc)
	if err != nil {
		return time.Time{}, err
	}
	if day.Before(s.today()) {
		return time.Time{}, fieldError("Date", "Date is in the past")
	}
	return day, nil
}

// userLocks serializes draft edits per user. An entry lives only while
// someone holds or waits for it.
type userLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func (l *userLocks) lock(userID uuid.UUID) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uuid.UUID]*userLock)
	}
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.Lock()
	return func() {
		ul.Unlock()

		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
