package repository

import (
	"context"
	"errors"
	"fmt"

	"taxi-booking/internal/data/entity"
	"taxi-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TaxiRepository interface {
	Create(ctx context.Context, taxi *entity.Taxi) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Taxi, error)
	FindAll(ctx context.Context) ([]*entity.Taxi, error)
	FindAvailable(ctx context.Context) ([]*entity.Taxi, error)
	Update(ctx context.Context, taxi *entity.Taxi) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type taxiRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTaxiRepository(db database.PgxIface, log *zap.Logger) TaxiRepository {
	return &taxiRepository{
		db:  db,
		log: log.With(zap.String("repository", "taxi")),
	}
}

const taxiColumns = `id, name, vehicle_type, price_per_km, multiplier, is_available, created_at, updated_at, deleted_at`

func (r *taxiRepository) Create(ctx context.Context, taxi *entity.Taxi) error {
	query := `
		INSERT INTO taxis (id, name, vehicle_type, price_per_km, multiplier, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		taxi.ID,
		taxi.Name,
		taxi.VehicleType,
		taxi.PricePerKm,
		taxi.Multiplier,
		taxi.IsAvailable,
		taxi.CreatedAt,
		taxi.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create taxi",
			zap.Error(err),
			zap.String("name", taxi.Name),
		)
		return fmt.Errorf("create taxi %s: %w", taxi.Name, err)
	}

	return nil
}

func (r *taxiRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Taxi, error) {
	query := `SELECT ` + taxiColumns + ` FROM taxis WHERE id = $1 AND deleted_at IS NULL`

	taxi, err := scanTaxi(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find taxi by ID",
			zap.Error(err),
			zap.String("taxi_id", id.String()),
		)
		return nil, fmt.Errorf("find taxi by ID %s: %w", id, err)
	}

	return taxi, nil
}

// FindAll lists the fleet for admins, ordered by name.
func (r *taxiRepository) FindAll(ctx context.Context) ([]*entity.Taxi, error) {
	query := `
		SELECT ` + taxiColumns + `
		FROM taxis
		WHERE deleted_at IS NULL
		ORDER BY name
	`
	return r.list(ctx, query)
}

// FindAvailable lists bookable taxis, cheapest per km first.
func (r *taxiRepository) FindAvailable(ctx context.Context) ([]*entity.Taxi, error) {
	query := `
		SELECT ` + taxiColumns + `
		FROM taxis
		WHERE is_available = TRUE AND deleted_at IS NULL
		ORDER BY price_per_km
	`
	return r.list(ctx, query)
}

func (r *taxiRepository) list(ctx context.Context, query string) ([]*entity.Taxi, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list taxis", zap.Error(err))
		return nil, fmt.Errorf("list taxis: %w", err)
	}
	defer rows.Close()

	taxis := make([]*entity.Taxi, 0)
	for rows.Next() {
		taxi, err := scanTaxi(rows)
		if err != nil {
			r.log.Error("Failed to scan taxi row", zap.Error(err))
			return nil, fmt.Errorf("scan taxi row: %w", err)
		}
		taxis = append(taxis, taxi)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate taxi rows: %w", err)
	}

	return taxis, nil
}

func (r *taxiRepository) Update(ctx context.Context, taxi *entity.Taxi) error {
	query := `
		UPDATE taxis
		SET name = $2, vehicle_type = $3, price_per_km = $4,
		    multiplier = $5, is_available = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		taxi.ID,
		taxi.Name,
		taxi.VehicleType,
		taxi.PricePerKm,
		taxi.Multiplier,
		taxi.IsAvailable,
		taxi.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update taxi",
			zap.Error(err),
			zap.String("taxi_id", taxi.ID.String()),
		)
		return fmt.Errorf("update taxi %s: %w", taxi.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("taxi %s not found", taxi.ID)
	}

	return nil
}

// Delete soft deletes the taxi; rides keep pointing at the row.
func (r *taxiRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE taxis SET deleted_at = NOW(), is_available = FALSE WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete taxi",
			zap.Error(err),
			zap.String("taxi_id", id.String()),
		)
		return fmt.Errorf("delete taxi %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("taxi %s not found", id)
	}

	r.log.Info("Taxi deleted", zap.String("taxi_id", id.String()))
	return nil
}

func scanTaxi(row scanner) (*entity.Taxi, error) {
	var t entity.Taxi
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.VehicleType,
		&t.PricePerKm,
		&t.Multiplier,
		&t.IsAvailable,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
