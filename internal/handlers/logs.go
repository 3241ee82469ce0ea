package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"driver_logsheet/internal/models"
	"driver_logsheet/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

var queryTimeLayouts = []string{time.RFC3339, layoutDateTime, layoutDate}

// logQuery is the raw query string of GET /api/v1/logs.
type logQuery struct {
	From   string `form:"from"`
	To     string `form:"to"`
	Type   string `form:"type"`
	TripID string `form:"trip_id"`
	Day    int    `form:"day" binding:"omitempty,min=1"`
}

var errBadDay = errors.New("'day' must be a positive integer")

// parseLogFilter turns the query into a service filter. Returned errors are
// safe to show to the caller.
func parseLogFilter(c *gin.Context) (service.LogFilter, error) {
	var q logQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return service.LogFilter{}, errBadDay
	}

	f := service.LogFilter{
		Type:   strings.ToUpper(strings.TrimSpace(q.Type)),
		TripID: strings.TrimSpace(q.TripID),
		Day:    q.Day,
	}
	if f.Type != "" && !models.KnownEventType(f.Type) {
		return service.LogFilter{}, fmt.Errorf("unknown event type %q", q.Type)
	}
	if f.Day > 0 && f.TripID == "" {
		return service.LogFilter{}, errors.New("'day' requires 'trip_id'")
	}

	var err error
	if f.From, err = parseQueryTime(q.From, false); err != nil {
		return service.LogFilter{}, fmt.Errorf("'from': %w", err)
	}
	if f.To, err = parseQueryTime(q.To, true); err != nil {
		return service.LogFilter{}, fmt.Errorf("'to': %w", err)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return service.LogFilter{}, errors.New("'from' must be <= 'to'")
	}
	return f, nil
}

// parseQueryTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" or "YYYY-MM-DD", in
// UTC. An empty string is the zero time. With endOfDay set a bare date
// covers the whole day.
func parseQueryTime(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range queryTimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if endOfDay && layout == layoutDate {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q; use RFC3339 or YYYY-MM-DD", s)
}

// @Summary      List render audit events
// @Description  Filter events by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'), type, trip and day. A date-only 'to' covers the whole day.
// @Tags         logs
// @Produce      json
// @Param        from     query  string   false  "Start of range"  example(2025-08-01)
// @Param        to       query  string   false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        type     query  string   false  "Event type"  Enums(TOTALS_MISMATCH,MALFORMED_SEGMENT,TRIP_INGESTED,TRIP_DELETED)
// @Param        trip_id  query  string   false  "Only events for this trip"
// @Param        day      query  integer  false  "Only events for this 1-based day; needs trip_id"
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	f, err := parseLogFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("logs_list_failed", "err", err, "filter", f)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}
