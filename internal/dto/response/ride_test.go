package response

import (
	"testing"
	"time"

	"taxi-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRideToResponse_DeletedTaxiStaysVisible(t *testing.T) {
	deletedAt := time.Now()
	taxiID := uuid.New()
	ride := &entity.RideWithDetails{
		Ride: entity.Ride{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
			TaxiID:       taxiID,
			RideDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			RideTime:     "14:00",
			Status:       entity.RideStatusFinished,
		},
		Profile: &entity.Profile{FullName: "Rider", Email: "r@example.com"},
		Taxi: &entity.Taxi{
			Base: entity.Base{ID: taxiID, DeletedAt: &deletedAt},
			Name: "Old van",
		},
	}

	resp := RideToResponse(ride)
	assert.Equal(t, taxiID.String(), resp.TaxiID)
	assert.Equal(t, "2024-06-01", resp.RideDate)
	require.NotNil(t, resp.Taxi)
	assert.True(t, resp.Taxi.Deleted)
	assert.Equal(t, "Rider", resp.Customer.FullName)
	assert.Empty(t, resp.NextStatuses)
	assert.NotNil(t, resp.NextStatuses)
}

func TestDraftToResponse(t *testing.T) {
	taxiID := uuid.New()
	draft := &entity.BookingDraft{
		Start:  &entity.Point{Lat: 1, Lng: 2},
		TaxiID: &taxiID,
	}

	resp := DraftToResponse(draft, 0)
	assert.Equal(t, entity.DraftStartSelected, resp.State)
	assert.Equal(t, taxiID.String(), resp.TaxiID)
	assert.Equal(t, []string{"end", "route", "date", "time"}, resp.Missing)
	assert.Nil(t, resp.Route)
}
