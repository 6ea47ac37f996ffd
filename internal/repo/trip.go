// Package repo contains all database access logic for the Trip Planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// Every read and write except Create is scoped by ownerID: a trip owned by
// another user behaves exactly like a missing one.
type TripRepo interface {
	// Create inserts a new trip (OwnerID, CreatedAt and UpdatedAt must be set)
	// and returns the persisted record with its DB-generated id.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip.
	// Returns domain.ErrNotFound if the owner has no trip with that ID.
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)

	// ListByOwner returns the owner's trips ordered by created_at descending.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error)

	// Update merges the non-nil patch fields into the trip, sets updated_at
	// to updatedAt, and returns the updated record.
	// Returns domain.ErrNotFound if the owner has no trip with that ID and
	// domain.ErrValidation if the merged dates are out of order.
	Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.TripPatch, updatedAt time.Time) (domain.Trip, error)

	// ReplaceChecklist overwrites the whole embedded checklist and sets
	// updated_at to updatedAt.
	// Returns domain.ErrNotFound if the owner has no trip with that ID.
	ReplaceChecklist(ctx context.Context, ownerID string, id uuid.UUID, items []domain.ChecklistItem, updatedAt time.Time) error

	// Delete removes a trip. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner_id, title, location, start_date, end_date,
		       description, notes, checklist, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (owner_id, title, location, start_date, end_date,
		                   description, notes, checklist, created_at, updated_at)
		VALUES (@owner_id, @title, @location, @start_date, @end_date,
		        @description, @notes, @checklist, @created_at, @updated_at)
		RETURNING ` + tripColumns

	checklist, err := encodeChecklist(trip.Checklist)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	args := pgx.NamedArgs{
		"owner_id":    trip.OwnerID,
		"title":       trip.Title,
		"location":    trip.Location,
		"start_date":  pgtype.Date{Time: trip.StartDate, Valid: true},
		"end_date":    pgtype.Date{Time: trip.EndDate, Valid: true},
		"description": trip.Description,
		"notes":       trip.Notes,
		"checklist":   checklist,
		"created_at":  trip.CreatedAt,
		"updated_at":  trip.UpdatedAt,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to its owner.
func (r *pgTripRepo) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND owner_id = @owner_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByOwner returns the owner's trips, newest first.
func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByOwner: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: rows: %w", err)
	}

	return trips, nil
}

// Update merges the present patch fields. NULL parameters keep the stored value.
// The merge happens in SQL, so a concurrent write can still produce an end
// date before the start date; the CHECK constraint rejects that row.
func (r *pgTripRepo) Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.TripPatch, updatedAt time.Time) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET title       = COALESCE(@title, title),
		    location    = COALESCE(@location, location),
		    start_date  = COALESCE(@start_date, start_date),
		    end_date    = COALESCE(@end_date, end_date),
		    description = COALESCE(@description, description),
		    notes       = COALESCE(@notes, notes),
		    updated_at  = @updated_at
		WHERE id = @id AND owner_id = @owner_id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          id,
		"owner_id":    ownerID,
		"title":       patch.Title, // nil becomes NULL
		"location":    patch.Location,
		"start_date":  optionalDate(patch.StartDate),
		"end_date":    optionalDate(patch.EndDate),
		"description": patch.Description,
		"notes":       patch.Notes,
		"updated_at":  updatedAt,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapConstraintError(err))
	}
	return result, nil
}

// ReplaceChecklist overwrites the checklist column in a single statement.
func (r *pgTripRepo) ReplaceChecklist(ctx context.Context, ownerID string, id uuid.UUID, items []domain.ChecklistItem, updatedAt time.Time) error {
	const q = `
		UPDATE trips
		SET checklist  = @checklist,
		    updated_at = @updated_at
		WHERE id = @id AND owner_id = @owner_id`

	checklist, err := encodeChecklist(items)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.ReplaceChecklist: %w", err)
	}

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":         id,
		"owner_id":   ownerID,
		"checklist":  checklist,
		"updated_at": updatedAt,
	})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.ReplaceChecklist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.ReplaceChecklist: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes a trip by primary key, scoped to its owner.
func (r *pgTripRepo) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// checkViolation is the SQLSTATE Postgres reports for a failed CHECK constraint.
const checkViolation = "23514"

// mapConstraintError turns a violated trips_dates_ordered CHECK into
// domain.ErrValidation. Any other error is returned unchanged.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolation && pgErr.ConstraintName == "trips_dates_ordered" {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return err
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, date, and JSONB checklist conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		checklist []byte
	)

	err := s.Scan(&id, &t.OwnerID, &t.Title, &t.Location, &startDate, &endDate,
		&t.Description, &t.Notes, &checklist, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time

	t.Checklist = []domain.ChecklistItem{}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &t.Checklist); err != nil {
			return domain.Trip{}, fmt.Errorf("decode checklist: %w", err)
		}
	}

	return t, nil
}

// encodeChecklist renders items as a JSON array; nil becomes [].
func encodeChecklist(items []domain.ChecklistItem) (string, error) {
	if items == nil {
		items = []domain.ChecklistItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode checklist: %w", err)
	}
	return string(b), nil
}

// optionalDate maps a nil pointer to SQL NULL.
func optionalDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}
