package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taxi-booking/internal/data/entity"
	"taxi-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RideRepository interface {
	CreateWithSlot(ctx context.Context, ride *entity.Ride) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RideWithDetails, error)
	FindAllWithDetails(ctx context.Context) ([]*entity.RideWithDetails, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.RideWithDetails, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.RideStatus) error
}

type rideRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRideRepository(db database.PgxIface, log *zap.Logger) RideRepository {
	return &rideRepository{
		db:  db,
		log: log.With(zap.String("repository", "ride")),
	}
}

const rideDetailsSelect = `
	SELECT r.id, r.user_id, r.taxi_id, r.start_location, r.start_lat, r.start_lng,
	       r.end_location, r.end_lat, r.end_lng, r.distance_km, r.estimated_time,
	       r.price, r.ride_date, r.ride_time, r.status, r.created_at, r.updated_at,
	       p.id, p.email, p.full_name, p.phone, p.is_admin,
	       t.id, t.name, t.vehicle_type, t.price_per_km, t.multiplier, t.is_available, t.deleted_at
	FROM rides r
	JOIN profiles p ON p.id = r.user_id
	LEFT JOIN taxis t ON t.id = r.taxi_id
`

// CreateWithSlot books the ride's (date, time) slot and inserts the ride in
// one transaction. When no available slot matches nothing is written and
// ErrSlotUnavailable is returned.
func (r *rideRepository) CreateWithSlot(ctx context.Context, ride *entity.Ride) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err))
		return fmt.Errorf("begin booking transaction: %w", err)
	}

	slotQuery := `
		UPDATE availabilities
		SET is_available = FALSE, updated_at = NOW()
		WHERE date = $1 AND time_slot = $2 AND is_available = TRUE
	`
	result, err := tx.Exec(ctx, slotQuery, ride.RideDate, ride.RideTime)
	if err != nil {
		r.rollback(ctx, tx)
		r.log.Error("Failed to book availability slot",
			zap.Error(err),
			zap.Time("ride_date", ride.RideDate),
			zap.String("ride_time", ride.RideTime),
		)
		return fmt.Errorf("book slot: %w", err)
	}
	if result.RowsAffected() == 0 {
		r.rollback(ctx, tx)
		return fmt.Errorf("%w: %s %s", entity.ErrSlotUnavailable, ride.RideDate.Format("2006-01-02"), ride.RideTime)
	}

	rideQuery := `
		INSERT INTO rides (id, user_id, taxi_id, start_location, start_lat, start_lng,
		                   end_location, end_lat, end_lng, distance_km, estimated_time,
		                   price, ride_date, ride_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = tx.Exec(ctx, rideQuery,
		ride.ID,
		ride.UserID,
		ride.TaxiID,
		ride.StartLocation,
		ride.StartLat,
		ride.StartLng,
		ride.EndLocation,
		ride.EndLat,
		ride.EndLng,
		ride.DistanceKm,
		ride.EstimatedTime,
		ride.Price,
		ride.RideDate,
		ride.RideTime,
		ride.Status,
		ride.CreatedAt,
		ride.UpdatedAt,
	)
	if err != nil {
		r.rollback(ctx, tx)
		r.log.Error("Failed to insert ride",
			zap.Error(err),
			zap.String("user_id", ride.UserID.String()),
		)
		return fmt.Errorf("insert ride: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking transaction", zap.Error(err))
		return fmt.Errorf("commit booking transaction: %w", err)
	}

	return nil
}

func (r *rideRepository) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.log.Warn("Failed to roll back transaction", zap.Error(err))
	}
}

func (r *rideRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RideWithDetails, error) {
	query := rideDetailsSelect + ` WHERE r.id = $1`

	ride, err := scanRideWithDetails(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ride",
			zap.Error(err),
			zap.String("ride_id", id.String()),
		)
		return nil, fmt.Errorf("find ride %s: %w", id, err)
	}

	return ride, nil
}

// FindAllWithDetails returns every ride, newest first.
func (r *rideRepository) FindAllWithDetails(ctx context.Context) ([]*entity.RideWithDetails, error) {
	query := rideDetailsSelect + ` ORDER BY r.created_at DESC`
	return r.list(ctx, query)
}

func (r *rideRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.RideWithDetails, error) {
	query := rideDetailsSelect + `
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userID, limit, offset)
}

func (r *rideRepository) list(ctx context.Context, query string, args ...any) ([]*entity.RideWithDetails, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list rides", zap.Error(err))
		return nil, fmt.Errorf("list rides: %w", err)
	}
	defer rows.Close()

	rides := make([]*entity.RideWithDetails, 0)
	for rows.Next() {
		ride, err := scanRideWithDetails(rows)
		if err != nil {
			r.log.Error("Failed to scan ride row", zap.Error(err))
			return nil, fmt.Errorf("scan ride row: %w", err)
		}
		rides = append(rides, ride)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ride rows: %w", err)
	}

	return rides, nil
}

func (r *rideRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rides WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count rides",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count rides: %w", err)
	}
	return count, nil
}

// UpdateStatus moves a ride from one status to another only if it is still
// in from. A ride that moved in the meantime yields ErrIllegalTransition.
func (r *rideRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.RideStatus) error {
	query := `
		UPDATE rides
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update ride status",
			zap.Error(err),
			zap.String("ride_id", id.String()),
			zap.String("status", string(to)),
		)
		return fmt.Errorf("update ride status %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: ride %s is no longer %s", entity.ErrIllegalTransition, id, from)
	}

	return nil
}

func scanRideWithDetails(row scanner) (*entity.RideWithDetails, error) {
	var (
		rd      entity.RideWithDetails
		profile entity.Profile

		taxiID          *uuid.UUID
		taxiName        *string
		taxiVehicleType *string
		taxiPrice       *float64
		taxiMultiplier  *float64
		taxiAvailable   *bool
		taxiDeletedAt   *time.Time
	)

	err := row.Scan(
		&rd.ID,
		&rd.UserID,
		&rd.TaxiID,
		&rd.StartLocation,
		&rd.StartLat,
		&rd.StartLng,
		&rd.EndLocation,
		&rd.EndLat,
		&rd.EndLng,
		&rd.DistanceKm,
		&rd.EstimatedTime,
		&rd.Price,
		&rd.RideDate,
		&rd.RideTime,
		&rd.Status,
		&rd.CreatedAt,
		&rd.UpdatedAt,
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.Phone,
		&profile.IsAdmin,
		&taxiID,
		&taxiName,
		&taxiVehicleType,
		&taxiPrice,
		&taxiMultiplier,
		&taxiAvailable,
		&taxiDeletedAt,
	)
	if err != nil {
		return nil, err
	}

	rd.Profile = &profile
	if taxiID != nil {
		rd.Taxi = &entity.Taxi{
			Base:        entity.Base{ID: *taxiID, DeletedAt: taxiDeletedAt},
			Name:        deref(taxiName),
			VehicleType: deref(taxiVehicleType),
			PricePerKm:  deref(taxiPrice),
			Multiplier:  deref(taxiMultiplier),
			IsAvailable: deref(taxiAvailable),
		}
	}

	return &rd, nil
}
