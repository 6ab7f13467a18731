package repository

import (
	"taxi-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Profile      ProfileRepository
	Session      SessionRepository
	Taxi         TaxiRepository
	Availability AvailabilityRepository
	Ride         RideRepository
	Draft        DraftStore
}

// NewRepository wires the SQL repositories. The draft store lives outside
// PostgreSQL and is passed in by the caller.
func NewRepository(db database.PgxIface, drafts DraftStore, log *zap.Logger) *Repository {
	return &Repository{
		Profile:      NewProfileRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Taxi:         NewTaxiRepository(db, log),
		Availability: NewAvailabilityRepository(db, log),
		Ride:         NewRideRepository(db, log),
		Draft:        drafts,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
