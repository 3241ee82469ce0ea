package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"driver_logsheet/internal/models"

	"github.com/google/uuid"
)

const (
	insertEventSQL = `INSERT INTO render_events (id, occurred_at, type, trip_id, day, message, meta)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectEventsSQL = `SELECT id, occurred_at, type, trip_id, day, message, meta FROM render_events`
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

// Append inserts a new event. If EventID or OccurredAt are empty, they are set.
func (r *EventSQLite) Append(ctx context.Context, e models.RenderEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	var metaPtr *string
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("encode event metadata: %w", err)
		}
		s := string(b)
		metaPtr = &s
	}

	var tripID *string
	if e.TripID != "" {
		tripID = &e.TripID
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.UTC().Format(sqliteTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		tripID,
		e.Day,
		e.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", e.Type, err)
	}
	return nil
}

// List returns events matching f, [From, To] inclusive, oldest first.
func (r *EventSQLite) List(ctx context.Context, f EventFilter) ([]models.RenderEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, f.From.UTC().Format(sqliteTimeLayout))
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, f.To.UTC().Format(sqliteTimeLayout))
	}
	if typ := strings.ToUpper(strings.TrimSpace(f.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if f.TripID != "" {
		conds = append(conds, "trip_id = ?")
		args = append(args, f.TripID)
	}
	if f.Day > 0 {
		conds = append(conds, "day = ?")
		args = append(args, f.Day)
	}

	q := selectEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := make([]models.RenderEvent, 0, 64)
	for rows.Next() {
		var (
			ev      models.RenderEvent
			tripID  sql.NullString
			metaStr sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &tripID, &ev.Day, &ev.Description, &metaStr); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		ev.TripID = tripID.String

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}
