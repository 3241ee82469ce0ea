package handlers

import (
	"errors"
	"net/http"

	"driver_logsheet/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK      = "ok"
	statusDeleted = "deleted"

	errInvalidBodyPref = "invalid body: "
	errInvalidDay      = "day must be a positive integer"
	errTripsList       = "failed to list trips"
	errTripLoad        = "failed to load trip"
	errTripStore       = "failed to store trip"
	errTripDelete      = "failed to delete trip"
	errRender          = "failed to render log sheet"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps domain sentinels to 4xx with the error text; anything
// else is logged and reported as 500 with fallback as the message.
func (h *Handler) respondServiceError(c *gin.Context, err error, fallback, logKey string, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrTripNotFound), errors.Is(err, service.ErrDayNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, fallback, logKey, err, kv...)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
