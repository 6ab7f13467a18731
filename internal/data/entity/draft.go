package entity

import (
	"time"

	"github.com/google/uuid"
)

type DraftState string

const (
	DraftNoPoints       DraftState = "no-points-selected"
	DraftStartSelected  DraftState = "start-selected"
	DraftRouting        DraftState = "both-selected-routing"
	DraftRouted         DraftState = "both-selected-routed"
	DraftVehicleChosen  DraftState = "vehicle-selected"
	DraftSlotSelected   DraftState = "slot-selected"
	DraftReadyToConfirm DraftState = "ready-to-confirm"
	DraftSubmitted      DraftState = "submitted"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route is a driving route between two points. Path holds [lat, lng] pairs.
type Route struct {
	DistanceKm  float64      `json:"distance_km"`
	DurationMin float64      `json:"duration_min"`
	Path        [][2]float64 `json:"path"`
}

// BookingDraft holds one customer's in-progress selections. It lives in the
// draft store, never in SQL.
type BookingDraft struct {
	UserID      uuid.UUID  `json:"user_id"`
	Start       *Point     `json:"start,omitempty"`
	End         *Point     `json:"end,omitempty"`
	Route       *Route     `json:"route,omitempty"`
	TaxiID      *uuid.UUID `json:"taxi_id,omitempty"`
	Date        string     `json:"date,omitempty"`
	Time        string     `json:"time,omitempty"`
	RideID      *uuid.UUID `json:"ride_id,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewBookingDraft(userID uuid.UUID) *BookingDraft {
	return &BookingDraft{UserID: userID, UpdatedAt: time.Now()}
}

// SelectPoint fills start, then end. A third point starts over: it becomes
// the new start and the previous end and route are dropped.
// Returns true when both points are set and a route lookup is due.
func (d *BookingDraft) SelectPoint(p Point) bool {
	switch {
	case d.Start == nil:
		d.Start = &p
		d.Route = nil
	case d.End == nil:
		d.End = &p
		d.Route = nil
	default:
		d.Start = &p
		d.End = nil
		d.Route = nil
	}
	d.touch()
	return d.Start != nil && d.End != nil
}

func (d *BookingDraft) SetRoute(r *Route) {
	d.Route = r
	d.touch()
}

func (d *BookingDraft) SelectTaxi(id uuid.UUID) {
	d.TaxiID = &id
	d.touch()
}

// SelectDate picks a day and forgets any previously chosen time.
func (d *BookingDraft) SelectDate(date string) {
	d.Date = date
	d.Time = ""
	d.touch()
}

func (d *BookingDraft) SelectTime(slot string) {
	d.Time = slot
	d.touch()
}

// Reset clears points, route, date and time. The chosen taxi is kept.
func (d *BookingDraft) Reset() {
	d.Start = nil
	d.End = nil
	d.Route = nil
	d.Date = ""
	d.Time = ""
	d.RideID = nil
	d.SubmittedAt = nil
	d.touch()
}

func (d *BookingDraft) MarkSubmitted(rideID uuid.UUID, at time.Time) {
	d.RideID = &rideID
	d.SubmittedAt = &at
	d.UpdatedAt = at
}

// ExpireSubmission resets a submitted draft once delay has passed since
// submission. Reports whether the draft changed.
func (d *BookingDraft) ExpireSubmission(now time.Time, delay time.Duration) bool {
	if d.SubmittedAt == nil || now.Sub(*d.SubmittedAt) < delay {
		return false
	}
	d.Reset()
	return true
}

func (d *BookingDraft) State() DraftState {
	switch {
	case d.SubmittedAt != nil:
		return DraftSubmitted
	case d.Start == nil:
		return DraftNoPoints
	case d.End == nil:
		return DraftStartSelected
	case d.Route == nil:
		return DraftRouting
	case d.TaxiID == nil:
		return DraftRouted
	case d.Date == "":
		return DraftVehicleChosen
	case d.Time == "":
		return DraftSlotSelected
	default:
		return DraftReadyToConfirm
	}
}

// IsEmpty reports whether nothing is selected, not even a taxi.
func (d *BookingDraft) IsEmpty() bool {
	return d.Start == nil && d.End == nil && d.Route == nil && d.TaxiID == nil &&
		d.Date == "" && d.Time == "" && d.SubmittedAt == nil
}

// Missing lists the selections still required before confirmation.
func (d *BookingDraft) Missing() []string {
	var missing []string
	if d.Start == nil {
		missing = append(missing, "start")
	}
	if d.End == nil {
		missing = append(missing, "end")
	}
	if d.Route == nil {
		missing = append(missing, "route")
	}
	if d.TaxiID == nil {
		missing = append(missing, "taxi")
	}
	if d.Date == "" {
		missing = append(missing, "date")
	}
	if d.Time == "" {
		missing = append(missing, "time")
	}
	return missing
}

func (d *BookingDraft) touch() {
	d.UpdatedAt = time.Now()
}
