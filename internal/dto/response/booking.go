package response

import (
	"time"

	"taxi-booking/internal/data/entity"
)

type RouteResponse struct {
	DistanceKm  float64      `json:"distance_km"`
	DurationMin float64      `json:"duration_min"`
	Path        [][2]float64 `json:"path"`
}

type DraftResponse struct {
	State       entity.DraftState `json:"state"`
	Start       *entity.Point     `json:"start,omitempty"`
	End         *entity.Point     `json:"end,omitempty"`
	Route       *RouteResponse    `json:"route,omitempty"`
	TaxiID      string            `json:"taxi_id,omitempty"`
	Date        string            `json:"date,omitempty"`
	Time        string            `json:"time,omitempty"`
	Price       float64           `json:"price"`
	Missing     []string          `json:"missing,omitempty"`
	RideID      string            `json:"ride_id,omitempty"`
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
}

func RouteToResponse(route *entity.Route) *RouteResponse {
	if route == nil {
		return nil
	}
	return &RouteResponse{
		DistanceKm:  route.DistanceKm,
		DurationMin: route.DurationMin,
		Path:        route.Path,
	}
}

// DraftToResponse renders a draft; price is computed by the caller.
func DraftToResponse(draft *entity.BookingDraft, price float64) DraftResponse {
	resp := DraftResponse{
		State:       draft.State(),
		Start:       draft.Start,
		End:         draft.End,
		Route:       RouteToResponse(draft.Route),
		Date:        draft.Date,
		Time:        draft.Time,
		Price:       price,
		Missing:     draft.Missing(),
		SubmittedAt: draft.SubmittedAt,
	}
	if draft.TaxiID != nil {
		resp.TaxiID = draft.TaxiID.String()
	}
	if draft.RideID != nil {
		resp.RideID = draft.RideID.String()
	}
	return resp
}
