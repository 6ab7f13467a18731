package usecase

import (
	"context"
	"testing"
	"time"

	"taxi-booking/internal/data/entity"
	"taxi-booking/internal/dto/request"
	"taxi-booking/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func rideOn(date time.Time, status entity.RideStatus) *entity.RideWithDetails {
	return &entity.RideWithDetails{Ride: entity.Ride{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		UserID:       uuid.New(),
		RideDate:     date,
		RideTime:     "09:00",
		Status:       status,
	}}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilterRides(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)

	today := rideOn(day(2024, 6, 15), entity.RideStatusPending)
	fewDays := rideOn(day(2024, 6, 10), entity.RideStatusAccepted)
	weekEdge := rideOn(day(2024, 6, 8), entity.RideStatusPending)
	lastMonth := rideOn(day(2024, 5, 20), entity.RideStatusFinished)
	lastYear := rideOn(day(2023, 9, 1), entity.RideStatusCancelled)
	ancient := rideOn(day(2020, 1, 1), entity.RideStatusPending)
	upcoming := rideOn(day(2024, 6, 16), entity.RideStatusPending)

	all := []*entity.RideWithDetails{today, fewDays, weekEdge, lastMonth, lastYear, ancient, upcoming}

	tests := []struct {
		name   string
		status string
		window string
		want   []*entity.RideWithDetails
	}{
		{"everything", "", "", all},
		{"all all", FilterAll, FilterAll, all},
		{"pending only", "pending", "", []*entity.RideWithDetails{today, weekEdge, ancient, upcoming}},
		{"today", "", FilterToday, []*entity.RideWithDetails{today}},
		{"week", "", FilterWeek, []*entity.RideWithDetails{today, fewDays, weekEdge, upcoming}},
		{"month", "", FilterMonth, []*entity.RideWithDetails{today, fewDays, weekEdge, lastMonth, upcoming}},
		{"year", "", FilterYear, []*entity.RideWithDetails{today, fewDays, weekEdge, lastMonth, lastYear, upcoming}},
		{"pending this week", "pending", FilterWeek, []*entity.RideWithDetails{today, weekEdge, upcoming}},
		{"no match", "en_route", FilterAll, []*entity.RideWithDetails{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRides(all, tt.status, tt.window, now, time.UTC)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterRides_TodayUsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 20:00 UTC on the 14th is already the 15th at UTC+7
	now := time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC)

	fifteenth := rideOn(day(2024, 6, 15), entity.RideStatusPending)
	fourteenth := rideOn(day(2024, 6, 14), entity.RideStatusPending)

	got := FilterRides([]*entity.RideWithDetails{fifteenth, fourteenth}, "", FilterToday, now, loc)
	assert.Equal(t, []*entity.RideWithDetails{fifteenth}, got)
}

func newRideFixture(rides ...*entity.RideWithDetails) (*rideService, *fakeRideRepo, *recordingPublisher) {
	repo := &fakeRideRepo{rides: rides}
	publisher := &recordingPublisher{}
	svc := NewRideService(repo, publisher, time.UTC, zap.NewNop()).(*rideService)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc, repo, publisher
}

func TestRideService_AdvanceOnlyTouchesOneRide(t *testing.T) {
	ctx := context.Background()
	target := rideOn(day(2024, 6, 15), entity.RideStatusPending)
	other := rideOn(day(2024, 6, 15), entity.RideStatusPending)
	svc, repo, publisher := newRideFixture(target, other)

	resp, err := svc.Advance(ctx, target.ID, &request.UpdateRideStatusRequest{Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, entity.RideStatusAccepted, resp.Status)
	assert.Equal(t, []string{"en_route"}, resp.NextStatuses)

	statuses := repo.statuses()
	assert.Equal(t, entity.RideStatusAccepted, statuses[target.ID])
	assert.Equal(t, entity.RideStatusPending, statuses[other.ID])

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.RideStatusChanged, publisher.events[0].Type)
	assert.Equal(t, "pending", publisher.events[0].PreviousStatus)
	assert.Equal(t, "accepted", publisher.events[0].Status)
}

func TestRideService_AdvanceWalksLifecycle(t *testing.T) {
	ctx := context.Background()
	ride := rideOn(day(2024, 6, 15), entity.RideStatusPending)
	svc, repo, _ := newRideFixture(ride)

	for _, next := range []string{"accepted", "en_route", "finished"} {
		_, err := svc.Advance(ctx, ride.ID, &request.UpdateRideStatusRequest{Status: next})
		require.NoError(t, err, next)
	}
	assert.Equal(t, entity.RideStatusFinished, repo.statuses()[ride.ID])
}

func TestRideService_AdvanceRejectsIllegal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		from entity.RideStatus
		to   string
	}{
		{"skip ahead", entity.RideStatusPending, "finished"},
		{"cancel accepted", entity.RideStatusAccepted, "cancelled"},
		{"backwards", entity.RideStatusEnRoute, "accepted"},
		{"from finished", entity.RideStatusFinished, "pending"},
		{"from cancelled", entity.RideStatusCancelled, "accepted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ride := rideOn(day(2024, 6, 15), tt.from)
			svc, repo, publisher := newRideFixture(ride)

			_, err := svc.Advance(ctx, ride.ID, &request.UpdateRideStatusRequest{Status: tt.to})
			assert.ErrorIs(t, err, ErrIllegalTransition)
			assert.Equal(t, tt.from, repo.statuses()[ride.ID])
			assert.Empty(t, publisher.events)
		})
	}
}

func TestRideService_AdvanceLosesRace(t *testing.T) {
	ctx := context.Background()
	ride := rideOn(day(2024, 6, 15), entity.RideStatusPending)
	svc, repo, _ := newRideFixture(ride)

	// the ride is read as pending, then changed underneath before the write
	staleRepo := &staleRideRepo{fakeRideRepo: repo, stale: *ride}
	svc.rideRepo = staleRepo
	ride.Status = entity.RideStatusCancelled

	_, err := svc.Advance(ctx, ride.ID, &request.UpdateRideStatusRequest{Status: "accepted"})
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, entity.RideStatusCancelled, repo.statuses()[ride.ID])
}

type staleRideRepo struct {
	*fakeRideRepo
	stale entity.RideWithDetails
}

func (r *staleRideRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.RideWithDetails, error) {
	cp := r.stale
	return &cp, nil
}

func TestRideService_AdvanceValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newRideFixture()

	_, err := svc.Advance(ctx, uuid.New(), &request.UpdateRideStatusRequest{Status: "flying"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Advance(ctx, uuid.New(), &request.UpdateRideStatusRequest{Status: "accepted"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRideService_List(t *testing.T) {
	ctx := context.Background()
	today := rideOn(day(2024, 6, 15), entity.RideStatusPending)
	old := rideOn(day(2024, 1, 1), entity.RideStatusFinished)
	svc, _, _ := newRideFixture(today, old)

	got, err := svc.List(ctx, &request.RideFilterRequest{Date: FilterToday})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, today.ID.String(), got[0].ID)

	_, err = svc.List(ctx, &request.RideFilterRequest{Date: "decade"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRideService_UserRides(t *testing.T) {
	ctx := context.Background()
	identity := newIdentity(false)

	var rides []*entity.RideWithDetails
	for i := 0; i < 3; i++ {
		r := rideOn(day(2024, 6, 15), entity.RideStatusPending)
		r.UserID = identity.UserID()
		rides = append(rides, r)
	}
	rides = append(rides, rideOn(day(2024, 6, 15), entity.RideStatusPending))
	svc, _, _ := newRideFixture(rides...)

	page, err := svc.UserRides(ctx, identity, request.PaginatedRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	_, err = svc.UserRides(ctx, nil, request.PaginatedRequest{Page: 1, PerPage: 10})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
