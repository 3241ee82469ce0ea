package service

import (
	"context"
	"errors"
	"time"

	"driver_logsheet/internal/logger"
	"driver_logsheet/internal/logsheet"
	"driver_logsheet/internal/models"
	"driver_logsheet/internal/repository"
)

var (
	ErrTripNotFound    = errors.New("trip not found")
	ErrDayNotFound     = errors.New("day not found")
	ErrInvalidSchedule = errors.New("invalid schedule")
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Trips stores upstream schedules. Segments are kept exactly as received.
type Trips interface {
	Create(ctx context.Context, trip models.TripSchedule) (models.TripSchedule, error)
	Get(ctx context.Context, id string) (models.TripSchedule, error)
	List(ctx context.Context) ([]models.TripSummary, error)
	Delete(ctx context.Context, id string) error
}

// LogSheet renders daily log sheets with the active layout.
type LogSheet interface {
	RenderDay(ctx context.Context, tripID string, day int) (logsheet.Output, error)
	RenderInput(ctx context.Context, in logsheet.Input) logsheet.Output
	Layout() logsheet.Layout
	SetLayout(l logsheet.Layout) error
}

// EventLog exposes the render audit log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RenderEvent, error)
}

// Demo inserts the bundled demo schedules.
type Demo interface {
	Seed(ctx context.Context) (int, error)
}

type Service struct {
	Trips
	LogSheet
	EventLog
	Demo
	Authorization
}

// Options configures NewService. Metrics and Logger may be nil.
type Options struct {
	Layout     logsheet.Layout
	SigningKey string
	TokenTTL   time.Duration
	Metrics    Metrics
	Logger     *logger.Logger
}

func NewService(repos *repository.Repository, opts Options) (*Service, error) {
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	sheets, err := NewLogSheetService(repos.TripRepo, opts.Layout, opts.Metrics)
	if err != nil {
		return nil, err
	}
	trips := NewTripService(repos.TripRepo, repos.EventRepo, sheets, opts.Metrics, opts.Logger)

	return &Service{
		Trips:         trips,
		LogSheet:      sheets,
		EventLog:      NewEventLogService(repos.EventRepo),
		Demo:          NewDemoService(trips),
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
	}, nil
}
