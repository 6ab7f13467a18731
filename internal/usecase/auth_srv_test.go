package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"taxi-booking/internal/data/entity"
	"taxi-booking/internal/data/repository"
	"taxi-booking/internal/dto/request"
	"taxi-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*entity.Profile
}

func (r *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	for _, existing := range r.profiles {
		if existing.Email == p.Email {
			return entity.ErrEmailTaken
		}
	}
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Profile, error) {
	return r.profiles[id], nil
}

func (r *fakeProfileRepo) FindByEmail(_ context.Context, email string) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Profile, error) {
	var out []*entity.Profile
	for _, p := range r.profiles {
		out = append(out, p)
	}
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

func (r *fakeProfileRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.profiles)), nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.Session) error {
	r.sessions[s.Token] = s
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil || !s.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token uuid.UUID) error {
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return fmt.Errorf("session not found or already revoked")
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(_ context.Context) (int64, error) {
	return 0, nil
}

func newAuthFixture() (AuthService, *fakeProfileRepo, *fakeSessionRepo) {
	profiles := &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
	sessions := &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
	config := &utils.Config{JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1}}

	svc := NewAuthService(&repository.Repository{Profile: profiles, Session: sessions}, config, zap.NewNop())
	return svc, profiles, sessions
}

func TestAuth_RegisterLoginAuthenticateLogout(t *testing.T) {
	ctx := context.Background()
	svc, profiles, _ := newAuthFixture()

	registered, err := svc.Register(ctx, &request.RegisterRequest{
		Email:    "  Rider@Example.com ",
		Password: "secret123",
		FullName: "Rider One",
		Phone:    "+4912345",
	}, ClientInfo{UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", registered.Email)
	assert.False(t, registered.IsAdmin)
	assert.Len(t, profiles.profiles, 1)

	loggedIn, err := svc.Login(ctx, &request.LoginRequest{Email: "rider@example.com", Password: "secret123"}, ClientInfo{})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, loggedIn.UserID)

	identity, err := svc.Authenticate(ctx, loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, identity.UserID().String())

	require.NoError(t, svc.Logout(ctx, identity))

	_, err = svc.Authenticate(ctx, loggedIn.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// the registration session is independent
	_, err = svc.Authenticate(ctx, registered.Token)
	assert.NoError(t, err)
}

func TestAuth_RegisterRejects(t *testing.T) {
	ctx := context.Background()
	svc, profiles, _ := newAuthFixture()

	_, err := svc.Register(ctx, &request.RegisterRequest{Email: "nope", Password: "123", FullName: "", Phone: "1"}, ClientInfo{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Email")
	assert.Contains(t, verr.Fields, "Password")
	assert.Empty(t, profiles.profiles)

	req := &request.RegisterRequest{Email: "a@b.test", Password: "secret123", FullName: "A", Phone: "123456"}
	_, err = svc.Register(ctx, req, ClientInfo{})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &request.RegisterRequest{Email: "A@B.test", Password: "secret123", FullName: "B", Phone: "123456"}, ClientInfo{})
	assert.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestAuth_LoginRejects(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(ctx, &request.RegisterRequest{Email: "a@b.test", Password: "secret123", FullName: "A", Phone: "123456"}, ClientInfo{})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "a@b.test", Password: "wrong-one"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.True(t, IsAuthError(err))

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "ghost@b.test", Password: "secret123"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_AuthenticateRejects(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := newAuthFixture()

	resp, err := svc.Register(ctx, &request.RegisterRequest{Email: "a@b.test", Password: "secret123", FullName: "A", Phone: "123456"}, ClientInfo{})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	forged, err := utils.GenerateToken(uuid.MustParse(resp.UserID), uuid.New(), "other-secret", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// a valid signature for a session that expired server side
	for _, s := range sessions.sessions {
		s.ExpiresAt = time.Now().Add(-time.Minute)
	}
	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	profiles := &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
	for i := 0; i < 3; i++ {
		p := &entity.Profile{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Email: fmt.Sprintf("u%d@b.test", i)}
		profiles.profiles[p.ID] = p
	}
	svc := NewUserService(profiles, zap.NewNop())

	identity := newIdentity(false)
	profile, err := svc.GetProfile(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID().String(), profile.ID)

	_, err = svc.GetProfile(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	page, err := svc.ListProfiles(ctx, request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
}
