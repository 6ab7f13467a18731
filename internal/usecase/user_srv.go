package usecase

import (
	"context"

	"taxi-booking/internal/data/entity"
	"taxi-booking/internal/data/repository"
	"taxi-booking/internal/dto/request"
	"taxi-booking/internal/dto/response"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, identity *entity.Identity) (*response.ProfileResponse, error)
	ListProfiles(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.ProfileResponse], error)
}

type userService struct {
	profileRepo repository.ProfileRepository
	log         *zap.Logger
}

func NewUserService(profileRepo repository.ProfileRepository, log *zap.Logger) UserService {
	return &userService{
		profileRepo: profileRepo,
		log:         log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, identity *entity.Identity) (*response.ProfileResponse, error) {
	if identity == nil || identity.Profile == nil {
		return nil, ErrUnauthorized
	}
	resp := response.ProfileToResponse(identity.Profile)
	return &resp, nil
}

func (s *userService) ListProfiles(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.ProfileResponse], error) {
	profiles, err := s.profileRepo.FindAll(ctx, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.profileRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]response.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		data = append(data, response.ProfileToResponse(p))
	}

	return response.NewPaginatedResponse(data, page.Page, page.PerPage, total), nil
}
