package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 5 * time.Second
	maxInterval      = time.Minute
	maxIntervalMilli = 60_000

	envelopeLogSheet = "logsheet"
	envelopeError    = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins once the UI host is configurable
}

// @Summary      Stream a day's log sheet
// @Description  Upgrades to WebSocket and sends {"type":"logsheet","data":Output} immediately and then every interval. Each message is a full re-render with the active layout.
// @Tags         logsheet
// @Param        id           path   string  true   "Trip id"
// @Param        day          path   int     true   "1-based day number"
// @Param        interval     query  string  false  "Go duration, e.g. 2s"
// @Param        interval_ms  query  int     false  "Interval in milliseconds"
// @Param        token        query  string  false  "Access token when no Authorization header can be sent"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /ws/trips/{id}/days/{day} [get]
func (h *Handler) wsLogSheet(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidDay})
		return
	}
	tripID := c.Param("id")
	interval := h.parseInterval(c)

	// Unknown trips and days are rejected before the upgrade so clients get a plain 404.
	first, err := h.services.RenderDay(c.Request.Context(), tripID, day)
	if err != nil {
		h.respondServiceError(c, err, errRender, "ws_render_failed", "trip_id", tripID, "day", day)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	if err := writeEnvelope(conn, wsEnvelope{Type: envelopeLogSheet, Data: first}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	ctx := c.Request.Context()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendLogSheet(ctx, conn, tripID, day); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "trip_id", tripID, "day", day, "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds, falling back to
// the configured default.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	if h.streamInterval > 0 {
		return h.streamInterval
	}
	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendLogSheet re-renders the day and writes it. If the trip was deleted meanwhile,
// an error envelope is sent before the stream ends.
func (h *Handler) sendLogSheet(ctx context.Context, conn *websocket.Conn, tripID string, day int) error {
	out, err := h.services.RenderDay(ctx, tripID, day)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_render_failed", "trip_id", tripID, "day", day, "err", err)
		}
		_ = writeEnvelope(conn, wsEnvelope{Type: envelopeError, Error: err.Error()})
		return err
	}
	return writeEnvelope(conn, wsEnvelope{Type: envelopeLogSheet, Data: out})
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}

