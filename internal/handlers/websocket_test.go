package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"driver_logsheet/internal/logsheet"
	"driver_logsheet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
		u    string
		want time.Duration
	}{
		{"default_when_missing", nil, "/ws", defaultInterval},
		{"configured_default", []Option{WithStreamInterval(2 * time.Second)}, "/ws", 2 * time.Second},
		{"configured_default_out_of_range", []Option{WithStreamInterval(time.Hour)}, "/ws", defaultInterval},
		{"interval_string_valid", nil, "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", nil, "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", nil, "/ws?interval=2m", defaultInterval},
		{"interval_ms_too_large", nil, "/ws?interval_ms=120000", defaultInterval},
		{"interval_invalid_string", nil, "/ws?interval=bogus", defaultInterval},
		{"interval_ms_invalid", nil, "/ws?interval_ms=NaN", defaultInterval},
		{"both_present_interval_wins", nil, "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", nil, "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(&service.Service{}, nil, tc.opts...)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := h.parseInterval(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func wsURL(t *testing.T, srv *httptest.Server, path string, query url.Values) string {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	u.Scheme = "ws"
	u.Path = path
	u.RawQuery = query.Encode()
	return u.String()
}

func TestWebSocket_LogSheetStream_InitialAndPeriodic(t *testing.T) {
	sheets := &mockLogSheet{out: sampleOutput()}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, LogSheet: sheets}
	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	q := url.Values{}
	q.Set("interval_ms", "20")
	q.Set("token", "valid")
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv, "/ws/trips/long/days/2", q), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if env.Type != envelopeLogSheet || len(env.Data) == 0 {
			t.Fatalf("bad envelope %d: %+v", i, env)
		}
		var out logsheet.Output
		if err := json.Unmarshal(env.Data, &out); err != nil {
			t.Fatalf("unmarshal output: %v", err)
		}
		if out.Meta.Day != 2 || len(out.DutyBars) != 1 {
			t.Fatalf("unexpected output: %+v", out.Meta)
		}
	}
	if sheets.renderCalls() < 2 {
		t.Fatalf("expected re-render per tick, got %d calls", sheets.renderCalls())
	}
}

func TestWebSocket_RejectsBeforeUpgrade(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		token  string
		parse  error
		render error
		want   int
	}{
		{"no token", "/ws/trips/long/days/1", "", nil, nil, http.StatusUnauthorized},
		{"bad token", "/ws/trips/long/days/1", "expired", errors.New("expired"), nil, http.StatusUnauthorized},
		{"bad day", "/ws/trips/long/days/x", "valid", nil, nil, http.StatusBadRequest},
		{"unknown trip", "/ws/trips/nope/days/1", "valid", nil, fmt.Errorf("%w: nope", service.ErrTripNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &service.Service{
				Authorization: &mockAuth{parseErr: tc.parse},
				LogSheet:      &mockLogSheet{err: tc.render},
			}
			srv := httptest.NewServer(newTestRouter(s))
			defer srv.Close()

			q := url.Values{}
			if tc.token != "" {
				q.Set("token", tc.token)
			}
			dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
			conn, resp, err := dialer.Dial(wsURL(t, srv, tc.path, q), nil)
			if err == nil {
				conn.Close()
				t.Fatalf("expected handshake failure")
			}
			if resp == nil || resp.StatusCode != tc.want {
				t.Fatalf("handshake response=%v, want status %d", resp, tc.want)
			}
		})
	}
}

func TestWebSocket_TripDeletedMidStream(t *testing.T) {
	sheets := &mockLogSheet{
		out:       sampleOutput(),
		err:       fmt.Errorf("%w: long", service.ErrTripNotFound),
		failAfter: 1,
	}
	s := &service.Service{Authorization: &mockAuth{}, LogSheet: sheets}
	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	q := url.Values{}
	q.Set("interval_ms", "20")
	q.Set("token", "valid")
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv, "/ws/trips/long/days/1", q), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil || env.Type != envelopeLogSheet {
		t.Fatalf("initial: %+v err=%v", env, err)
	}

	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error envelope: %v", err)
	}
	if env.Type != envelopeError || env.Error == "" {
		t.Fatalf("expected error envelope, got %+v", env)
	}

	// The server closes after the error envelope.
	if err := conn.ReadJSON(&env); err == nil {
		t.Fatalf("expected closed connection, got %+v", env)
	}
}
