package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RideStatus string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusEnRoute   RideStatus = "en_route"
	RideStatusFinished  RideStatus = "finished"
	RideStatusCancelled RideStatus = "cancelled"
)

// rideTransitions lists, per status, the statuses an admin may move a ride to.
var rideTransitions = map[RideStatus][]RideStatus{
	RideStatusPending:  {RideStatusAccepted, RideStatusCancelled},
	RideStatusAccepted: {RideStatusEnRoute},
	RideStatusEnRoute:  {RideStatusFinished},
}

func (s RideStatus) Valid() bool {
	switch s {
	case RideStatusPending, RideStatusAccepted, RideStatusEnRoute, RideStatusFinished, RideStatusCancelled:
		return true
	}
	return false
}

func (s RideStatus) IsTerminal() bool {
	return s == RideStatusFinished || s == RideStatusCancelled
}

// NextStatuses returns the legal targets from s, empty for terminal states.
func (s RideStatus) NextStatuses() []RideStatus {
	next := rideTransitions[s]
	out := make([]RideStatus, len(next))
	copy(out, next)
	return out
}

func (s RideStatus) CanTransitionTo(to RideStatus) bool {
	for _, next := range rideTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition wraps ErrIllegalTransition when from -> to is not allowed.
func CheckTransition(from, to RideStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown ride status %q", ErrIllegalTransition, to)
	}
	if from.IsTerminal() {
		return fmt.Errorf("%w: ride is already %s", ErrIllegalTransition, from)
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: ride status cannot change from %s to %s", ErrIllegalTransition, from, to)
	}
	return nil
}

type Ride struct {
	BaseNoDelete
	UserID        uuid.UUID  `db:"user_id"`
	TaxiID        uuid.UUID  `db:"taxi_id"`
	StartLocation string     `db:"start_location"`
	StartLat      float64    `db:"start_lat"`
	StartLng      float64    `db:"start_lng"`
	EndLocation   string     `db:"end_location"`
	EndLat        float64    `db:"end_lat"`
	EndLng        float64    `db:"end_lng"`
	DistanceKm    float64    `db:"distance_km"`
	EstimatedTime int        `db:"estimated_time"` // minutes
	Price         float64    `db:"price"`
	RideDate      time.Time  `db:"ride_date"`
	RideTime      string     `db:"ride_time"`
	Status        RideStatus `db:"status"`
}

// RideWithDetails joins a ride with its requester and vehicle. Taxi is nil
// only when the referenced row no longer exists at all.
type RideWithDetails struct {
	Ride
	Profile *Profile
	Taxi    *Taxi
}
