package usecase

import (
	"context"
	"strings"
	"time"

	"taxi-booking/internal/data/entity"
	"taxi-booking/internal/data/repository"
	"taxi-booking/internal/dto/request"
	"taxi-booking/internal/dto/response"
	"taxi-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService publishes bookable (date, time) slots and answers
// which dates and times customers may pick.
type AvailabilityService interface {
	ListUpcoming(ctx context.Context) ([]response.AvailabilityResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*response.AvailabilityResponse, error)
	Create(ctx context.Context, req *request.CreateAvailabilityRequest) (*response.AvailabilityResponse, error)
	Toggle(ctx context.Context, id uuid.UUID) (*response.AvailabilityResponse, error)
	Delete(ctx context.Context, id uuid.UUID, confirmed bool) error
	OfferedDates(ctx context.Context) ([]string, error)
	OfferedTimes(ctx context.Context, date string) ([]string, error)
}

type availabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	loc              *time.Location
	now              func() time.Time
	log              *zap.Logger
}

func NewAvailabilityService(availabilityRepo repository.AvailabilityRepository, loc *time.Location, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		loc:              loc,
		now:              time.Now,
		log:              log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) today() time.Time {
	return utils.DateOnly(utils.StartOfDay(s.now(), s.loc))
}

func (s *availabilityService) ListUpcoming(ctx context.Context) ([]response.AvailabilityResponse, error) {
	slots, err := s.availabilityRepo.FindFrom(ctx, s.today())
	if err != nil {
		return nil, err
	}
	return response.AvailabilitiesToResponse(slots), nil
}

func (s *availabilityService) Get(ctx context.Context, id uuid.UUID) (*response.AvailabilityResponse, error) {
	slot, err := s.availabilityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, notFound("availability", id)
	}

	resp := response.AvailabilityToResponse(slot)
	return &resp, nil
}

// Create always publishes the slot as available.
func (s *availabilityService) Create(ctx context.Context, req *request.CreateAvailabilityRequest) (*response.AvailabilityResponse, error) {
	req.TimeSlot = strings.TrimSpace(req.TimeSlot)
	if err := validate(req); err != nil {
		return nil, err
	}

	date, err := parseDay("Date", req.Date, s.loc)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	slot := &entity.Availability{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Date:        date,
		TimeSlot:    req.TimeSlot,
		IsAvailable: true,
	}

	if err := s.availabilityRepo.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.log.Info("Availability created",
		zap.String("availability_id", slot.ID.String()),
		zap.String("date", req.Date),
		zap.String("time_slot", slot.TimeSlot))

	resp := response.AvailabilityToResponse(slot)
	return &resp, nil
}

func (s *availabilityService) Toggle(ctx context.Context, id uuid.UUID) (*response.AvailabilityResponse, error) {
	slot, err := s.availabilityRepo.Toggle(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, notFound("availability", id)
	}

	resp := response.AvailabilityToResponse(slot)
	return &resp, nil
}

func (s *availabilityService) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.availabilityRepo.Delete(ctx, id)
}

// OfferedDates lists every slot date from today on, booked or not.
func (s *availabilityService) OfferedDates(ctx context.Context) ([]string, error) {
	dates, err := s.availabilityRepo.FindDatesFrom(ctx, s.today())
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, utils.FormatDate(d))
	}
	return out, nil
}

// OfferedTimes lists the still available time labels for one date.
func (s *availabilityService) OfferedTimes(ctx context.Context, date string) ([]string, error) {
	day, err := parseDay("date", date, s.loc)
	if err != nil {
		return nil, err
	}

	slots, err := s.availabilityRepo.FindAvailableByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot.TimeSlot)
	}
	return out, nil
}
