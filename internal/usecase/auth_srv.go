package usecase

import (
	"context"
	"errors"
	"fmt"
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

// AuthService signs users up, in and out, and resolves bearer tokens to an
// explicit Identity for the rest of the request.
type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, client ClientInfo) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, identity *entity.Identity) error
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
}

// ClientInfo is stored on the session for auditing.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, client ClientInfo) (*response.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.Profile.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, entity.ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	profile := &entity.Profile{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: hashed,
		FullName:     req.FullName,
		Phone:        req.Phone,
	}

	if err := s.repo.Profile.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.log.Info("Profile registered",
		zap.String("user_id", profile.ID.String()),
		zap.String("email", profile.Email))

	return s.openSession(ctx, profile, client)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate(req); err != nil {
		return nil, err
	}

	profile, err := s.repo.Profile.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if profile == nil || !utils.CheckPassword(profile.PasswordHash, req.Password) {
		s.log.Warn("Login rejected", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	s.log.Info("Profile signed in", zap.String("user_id", profile.ID.String()))
	return s.openSession(ctx, profile, client)
}

func (s *authService) Logout(ctx context.Context, identity *entity.Identity) error {
	if identity == nil {
		return ErrUnauthorized
	}
	if err := s.repo.Session.Revoke(ctx, identity.SessionToken); err != nil {
		return err
	}

	s.log.Info("Profile signed out", zap.String("user_id", identity.UserID().String()))
	return nil
}

// Authenticate checks the token signature, then the backing session row,
// then loads the profile.
func (s *authService) Authenticate(ctx context.Context, token string) (*entity.Identity, error) {
	claims, err := utils.ParseToken(token, s.config.JWT.Secret)
	if err != nil {
		return nil, ErrUnauthorized
	}

	sessionToken, err := uuid.Parse(claims.SessionToken)
	if err != nil {
		return nil, ErrUnauthorized
	}

	session, err := s.repo.Session.FindValidSession(ctx, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil || session.UserID.String() != claims.Subject {
		return nil, ErrUnauthorized
	}

	profile, err := s.repo.Profile.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrUnauthorized
	}

	return &entity.Identity{
		Profile:      profile,
		SessionID:    session.ID,
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

func (s *authService) openSession(ctx context.Context, profile *entity.Profile, client ClientInfo) (*response.AuthResponse, error) {
	session := entity.NewSession(
		profile.ID,
		optional(client.UserAgent),
		optional(client.IPAddress),
		time.Now(),
		time.Duration(s.config.JWT.ExpiryHours)*time.Hour,
	)

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	signed, err := utils.GenerateToken(profile.ID, session.Token, s.config.JWT.Secret, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	resp := response.AuthToResponse(profile, signed, session.ExpiresAt)
	return &resp, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// IsAuthError reports whether err means the caller is not signed in.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials)
}
