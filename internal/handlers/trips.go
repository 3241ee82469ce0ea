package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"driver_logsheet/internal/fixtures"
	"driver_logsheet/internal/models"

	"github.com/gin-gonic/gin"
)

const maxScheduleBytes = 4 << 20

// @Summary      Store a trip schedule
// @Description  Accepts the planner's schedule as JSON, or YAML with Content-Type application/yaml. Segments are stored as received.
// @Tags         trips
// @Accept       json
// @Accept       x-yaml
// @Produce      json
// @Param        body  body      models.TripSchedule  true  "Trip schedule"
// @Success      201   {object}  map[string]interface{}  "id, days"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/trips [post]
// @Security     BearerAuth
func (h *Handler) createTrip(c *gin.Context) {
	trip, ok := h.bindSchedule(c)
	if !ok {
		return
	}

	stored, err := h.services.Trips.Create(c.Request.Context(), trip)
	if err != nil {
		h.respondServiceError(c, err, errTripStore, "trip_create_failed", "name", trip.Name)
		return
	}
	if h.log != nil {
		h.log.Infow("trip_stored", "trip_id", stored.ID, "days", len(stored.Days))
	}
	c.JSON(http.StatusCreated, gin.H{"id": stored.ID, "days": len(stored.Days)})
}

// bindSchedule decodes the request body as JSON or, for YAML content types, through
// the fixtures decoder. It writes a 400 and returns false on failure.
func (h *Handler) bindSchedule(c *gin.Context) (models.TripSchedule, bool) {
	var trip models.TripSchedule
	if !isYAML(c.ContentType()) {
		return trip, h.bindJSONOrBadRequest(c, &trip)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxScheduleBytes))
	if err == nil {
		trip, err = fixtures.Decode(body)
	}
	if err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return models.TripSchedule{}, false
	}
	return trip, true
}

func isYAML(contentType string) bool {
	return strings.HasSuffix(contentType, "/yaml") || strings.HasSuffix(contentType, "/x-yaml")
}

// @Summary      List stored trips
// @Tags         trips
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, trips"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/trips [get]
// @Security     BearerAuth
func (h *Handler) listTrips(c *gin.Context) {
	trips, err := h.services.Trips.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errTripsList, "trip_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(trips),
		"trips": trips,
	})
}

// @Summary      Get a stored trip schedule
// @Tags         trips
// @Produce      json
// @Param        id   path      string  true  "Trip id"
// @Success      200  {object}  models.TripSchedule
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/trips/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTrip(c *gin.Context) {
	id := c.Param("id")
	trip, err := h.services.Trips.Get(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err, errTripLoad, "trip_get_failed", "trip_id", id)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// @Summary      Delete a stored trip schedule
// @Tags         trips
// @Produce      json
// @Param        id   path      string  true  "Trip id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/trips/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTrip(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Trips.Delete(c.Request.Context(), id); err != nil {
		h.respondServiceError(c, err, errTripDelete, "trip_delete_failed", "trip_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted, "id": id})
}

// parseDay reads the 1-based :day path parameter.
func parseDay(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		return 0, false
	}
	return day, true
}
