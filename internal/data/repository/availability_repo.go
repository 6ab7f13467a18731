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

type AvailabilityRepository interface {
	Create(ctx context.Context, slot *entity.Availability) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Availability, error)
	FindFrom(ctx context.Context, from time.Time) ([]*entity.Availability, error)
	FindDatesFrom(ctx context.Context, from time.Time) ([]time.Time, error)
	FindAvailableByDate(ctx context.Context, date time.Time) ([]*entity.Availability, error)
	Toggle(ctx context.Context, id uuid.UUID) (*entity.Availability, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type availabilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability")),
	}
}

const availabilityColumns = `id, date, time_slot, is_available, created_at, updated_at`

func (r *availabilityRepository) Create(ctx context.Context, slot *entity.Availability) error {
	query := `
		INSERT INTO availabilities (id, date, time_slot, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.Date,
		slot.TimeSlot,
		slot.IsAvailable,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create availability",
			zap.Error(err),
			zap.Time("date", slot.Date),
			zap.String("time_slot", slot.TimeSlot),
		)
		return fmt.Errorf("create availability: %w", err)
	}

	return nil
}

func (r *availabilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Availability, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availabilities WHERE id = $1`

	slot, err := scanAvailability(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find availability",
			zap.Error(err),
			zap.String("availability_id", id.String()),
		)
		return nil, fmt.Errorf("find availability %s: %w", id, err)
	}

	return slot, nil
}

// FindFrom lists every slot dated on or after from, by date then time label.
func (r *availabilityRepository) FindFrom(ctx context.Context, from time.Time) ([]*entity.Availability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availabilities
		WHERE date >= $1
		ORDER BY date, time_slot
	`
	return r.list(ctx, query, from)
}

// FindDatesFrom returns the distinct slot dates on or after from, whatever
// their availability flag.
func (r *availabilityRepository) FindDatesFrom(ctx context.Context, from time.Time) ([]time.Time, error) {
	query := `
		SELECT DISTINCT date
		FROM availabilities
		WHERE date >= $1
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, from)
	if err != nil {
		r.log.Error("Failed to list availability dates", zap.Error(err))
		return nil, fmt.Errorf("list availability dates: %w", err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan availability date: %w", err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability dates: %w", err)
	}

	return dates, nil
}

func (r *availabilityRepository) FindAvailableByDate(ctx context.Context, date time.Time) ([]*entity.Availability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availabilities
		WHERE date = $1 AND is_available = TRUE
		ORDER BY time_slot
	`
	return r.list(ctx, query, date)
}

func (r *availabilityRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Availability, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list availabilities", zap.Error(err))
		return nil, fmt.Errorf("list availabilities: %w", err)
	}
	defer rows.Close()

	slots := make([]*entity.Availability, 0)
	for rows.Next() {
		slot, err := scanAvailability(rows)
		if err != nil {
			r.log.Error("Failed to scan availability row", zap.Error(err))
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability rows: %w", err)
	}

	return slots, nil
}

// Toggle flips is_available in place and returns the updated slot.
func (r *availabilityRepository) Toggle(ctx context.Context, id uuid.UUID) (*entity.Availability, error) {
	query := `
		UPDATE availabilities
		SET is_available = NOT is_available, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + availabilityColumns

	slot, err := scanAvailability(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to toggle availability",
			zap.Error(err),
			zap.String("availability_id", id.String()),
		)
		return nil, fmt.Errorf("toggle availability %s: %w", id, err)
	}

	return slot, nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM availabilities WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete availability",
			zap.Error(err),
			zap.String("availability_id", id.String()),
		)
		return fmt.Errorf("delete availability %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("availability %s not found", id)
	}

	return nil
}

func scanAvailability(row scanner) (*entity.Availability, error) {
	var a entity.Availability
	err := row.Scan(
		&a.ID,
		&a.Date,
		&a.TimeSlot,
		&a.IsAvailable,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
