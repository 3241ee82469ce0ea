package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"driver_logsheet/internal/models"
)

var (
	// ErrNotFound is returned when a row addressed by id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert collides with a unique key.
	ErrDuplicate = errors.New("duplicate")
)

// Authorization persists operator accounts.
type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	RecordSignIn(ctx context.Context, id int) error
}

// TripRepo stores upstream schedules as opaque documents keyed by id.
type TripRepo interface {
	Save(ctx context.Context, trip models.TripSchedule) error
	Get(ctx context.Context, id string) (models.TripSchedule, error)
	List(ctx context.Context) ([]models.TripSummary, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// EventFilter narrows an audit log query. Zero fields do not filter.
type EventFilter struct {
	From   time.Time
	To     time.Time
	Type   string
	TripID string
	Day    int
}

type EventRepo interface {
	Append(ctx context.Context, e models.RenderEvent) error
	List(ctx context.Context, f EventFilter) ([]models.RenderEvent, error)
}

type Repository struct {
	TripRepo  TripRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		TripRepo:  NewTripSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewOperatorSQLite(db),
	}
}
