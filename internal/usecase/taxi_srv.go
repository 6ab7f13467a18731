package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"taxi-booking/internal/data/entity"
	"taxi-booking/internal/data/repository"
	"taxi-booking/internal/dto/request"
	"taxi-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaxiService manages the fleet and serves the bookable vehicle list.
type TaxiService interface {
	ListAvailable(ctx context.Context) ([]response.TaxiResponse, error)
	ListAll(ctx context.Context) ([]response.TaxiResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.TaxiResponse, error)
	Create(ctx context.Context, req *request.CreateTaxiRequest) (*response.TaxiResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateTaxiRequest) (*response.TaxiResponse, error)
	Delete(ctx context.Context, id uuid.UUID, confirmed bool) error
	Quote(ctx context.Context, id uuid.UUID, distanceKm float64) (*response.QuoteResponse, error)
}

type taxiService struct {
	taxiRepo repository.TaxiRepository
	log      *zap.Logger
}

func NewTaxiService(taxiRepo repository.TaxiRepository, log *zap.Logger) TaxiService {
	return &taxiService{
		taxiRepo: taxiRepo,
		log:      log.With(zap.String("service", "taxi")),
	}
}

func (s *taxiService) ListAvailable(ctx context.Context) ([]response.TaxiResponse, error) {
	taxis, err := s.taxiRepo.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return response.TaxisToResponse(taxis), nil
}

func (s *taxiService) ListAll(ctx context.Context) ([]response.TaxiResponse, error) {
	taxis, err := s.taxiRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return response.TaxisToResponse(taxis), nil
}

func (s *taxiService) GetByID(ctx context.Context, id uuid.UUID) (*response.TaxiResponse, error) {
	taxi, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.TaxiToResponse(taxi)
	return &resp, nil
}

func (s *taxiService) Create(ctx context.Context, req *request.CreateTaxiRequest) (*response.TaxiResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.VehicleType = strings.TrimSpace(req.VehicleType)
	if err := validate(req); err != nil {
		return nil, err
	}

	multiplier := entity.DefaultMultiplier
	if req.Multiplier != nil {
		multiplier = *req.Multiplier
	}
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	now := time.Now()
	taxi := &entity.Taxi{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		VehicleType: req.VehicleType,
		PricePerKm:  req.PricePerKm,
		Multiplier:  multiplier,
		IsAvailable: isAvailable,
	}

	if err := s.taxiRepo.Create(ctx, taxi); err != nil {
		return nil, err
	}

	s.log.Info("Taxi created",
		zap.String("taxi_id", taxi.ID.String()),
		zap.String("name", taxi.Name))

	resp := response.TaxiToResponse(taxi)
	return &resp, nil
}

// Update replaces every editable field in one write.
func (s *taxiService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateTaxiRequest) (*response.TaxiResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.VehicleType = strings.TrimSpace(req.VehicleType)
	if err := validate(req); err != nil {
		return nil, err
	}

	taxi, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	taxi.Name = req.Name
	taxi.VehicleType = req.VehicleType
	taxi.PricePerKm = *req.PricePerKm
	taxi.Multiplier = *req.Multiplier
	taxi.IsAvailable = *req.IsAvailable
	taxi.UpdatedAt = time.Now()

	if err := s.taxiRepo.Update(ctx, taxi); err != nil {
		return nil, err
	}

	s.log.Info("Taxi updated", zap.String("taxi_id", id.String()))

	resp := response.TaxiToResponse(taxi)
	return &resp, nil
}

func (s *taxiService) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.taxiRepo.Delete(ctx, id)
}

// Quote prices a distance with the taxi's rate, without a route lookup.
func (s *taxiService) Quote(ctx context.Context, id uuid.UUID, distanceKm float64) (*response.QuoteResponse, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return nil, fieldError("distance_km", "Must be a finite number")
	}
	if distanceKm < 0 {
		return nil, fieldError("distance_km", "Must be greater than or equal to 0")
	}

	taxi, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	return &response.QuoteResponse{
		TaxiID:     taxi.ID.String(),
		DistanceKm: distanceKm,
		Price:      QuotePrice(&entity.Route{DistanceKm: distanceKm}, taxi),
	}, nil
}

func (s *taxiService) find(ctx context.Context, id uuid.UUID) (*entity.Taxi, error) {
	taxi, err := s.taxiRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if taxi == nil {
		return nil, notFound("taxi", id)
	}
	return taxi, nil
}
