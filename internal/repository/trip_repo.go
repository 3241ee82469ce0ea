package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"driver_logsheet/internal/models"
)

// sqliteTimeLayout matches SQLite's TIMESTAMP text format.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const (
	upsertTripSQL = `INSERT INTO trip_schedules (id, name, total_days, payload, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, total_days = excluded.total_days,
payload = excluded.payload, updated_at = excluded.updated_at`
	selectTripSQL = `SELECT payload FROM trip_schedules WHERE id = ?`
	listTripsSQL  = `SELECT id, name, total_days, created_at FROM trip_schedules ORDER BY created_at ASC, id ASC`
	deleteTripSQL = `DELETE FROM trip_schedules WHERE id = ?`
	countTripsSQL = `SELECT COUNT(*) FROM trip_schedules`
)

// TripSQLite keeps each schedule as a JSON payload plus a few columns for listing.
type TripSQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewTripSQLite(db *sql.DB) *TripSQLite {
	return &TripSQLite{db: db, now: time.Now}
}

var _ TripRepo = (*TripSQLite)(nil)

// Save inserts the schedule or replaces the stored document for its id.
func (r *TripSQLite) Save(ctx context.Context, trip models.TripSchedule) error {
	payload, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("encode trip %q: %w", trip.ID, err)
	}
	ts := r.now().UTC().Format(sqliteTimeLayout)
	if _, err := r.db.ExecContext(ctx, upsertTripSQL, trip.ID, trip.Name, len(trip.Days), string(payload), ts, ts); err != nil {
		return fmt.Errorf("save trip %q: %w", trip.ID, err)
	}
	return nil
}

func (r *TripSQLite) Get(ctx context.Context, id string) (models.TripSchedule, error) {
	var payload string
	if err := r.db.QueryRowContext(ctx, selectTripSQL, id).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TripSchedule{}, fmt.Errorf("trip %q: %w", id, ErrNotFound)
		}
		return models.TripSchedule{}, fmt.Errorf("select trip %q: %w", id, err)
	}

	var trip models.TripSchedule
	if err := json.Unmarshal([]byte(payload), &trip); err != nil {
		return models.TripSchedule{}, fmt.Errorf("decode trip %q: %w", id, err)
	}
	return trip, nil
}

func (r *TripSQLite) List(ctx context.Context) ([]models.TripSummary, error) {
	rows, err := r.db.QueryContext(ctx, listTripsSQL)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	out := make([]models.TripSummary, 0, 16)
	for rows.Next() {
		var s models.TripSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.TotalDays, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		s.CreatedAt = s.CreatedAt.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return out, nil
}

func (r *TripSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteTripSQL, id)
	if err != nil {
		return fmt.Errorf("delete trip %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trip %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("trip %q: %w", id, ErrNotFound)
	}
	return nil
}

func (r *TripSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countTripsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return n, nil
}
