package handlers

import (
	"context"
	"net/http"
	"sync"

	"driver_logsheet/internal/logsheet"
	"driver_logsheet/internal/models"
	"driver_logsheet/internal/service"

	"github.com/gin-gonic/gin"
)

type mockAuth struct {
	signUpID       int
	signUpErr      error
	genTokenToken  string
	genTokenErr    error
	parseID        int
	parseErr       error
	lastParseToken string
}

func (m *mockAuth) SignUp(_ context.Context, _, _ string) (int, error) {
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(_ context.Context, _, _ string) (string, error) {
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockTrips struct {
	created   []models.TripSchedule
	createID  string
	createErr error
	trip      models.TripSchedule
	getErr    error
	list      []models.TripSummary
	listErr   error
	deleted   []string
	deleteErr error
}

func (m *mockTrips) Create(_ context.Context, trip models.TripSchedule) (models.TripSchedule, error) {
	m.created = append(m.created, trip)
	if m.createErr != nil {
		return models.TripSchedule{}, m.createErr
	}
	if trip.ID == "" {
		trip.ID = m.createID
	}
	return trip, nil
}

func (m *mockTrips) Get(_ context.Context, _ string) (models.TripSchedule, error) {
	return m.trip, m.getErr
}

func (m *mockTrips) List(_ context.Context) ([]models.TripSummary, error) {
	return m.list, m.listErr
}

func (m *mockTrips) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.deleteErr
}

// mockLogSheet is read from the WebSocket handler goroutine, hence the mutex.
type mockLogSheet struct {
	mu        sync.Mutex
	out       logsheet.Output
	err       error
	calls     int
	lastTrip  string
	lastDay   int
	lastInput logsheet.Input
	layout    logsheet.Layout
	// failAfter makes RenderDay return err once calls exceeds it; 0 fails from the start.
	failAfter int
}

func (m *mockLogSheet) RenderDay(_ context.Context, tripID string, day int) (logsheet.Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastTrip, m.lastDay = tripID, day
	if m.err != nil && m.calls > m.failAfter {
		return logsheet.Output{}, m.err
	}
	return m.out, nil
}

func (m *mockLogSheet) RenderInput(_ context.Context, in logsheet.Input) logsheet.Output {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastInput = in
	return m.out
}

func (m *mockLogSheet) Layout() logsheet.Layout { return m.layout }

func (m *mockLogSheet) SetLayout(l logsheet.Layout) error {
	m.layout = l
	return nil
}

func (m *mockLogSheet) renderCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockEventLog struct {
	resp      []models.RenderEvent
	err       error
	gotFilter service.LogFilter
	calls     int
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.RenderEvent, error) {
	m.calls++
	m.gotFilter = f
	return m.resp, m.err
}

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, opts...).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h
}

// authed copies the bearer header onto req.
func authed(req *http.Request) *http.Request {
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
