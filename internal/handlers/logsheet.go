package handlers

import (
	"net/http"

	"driver_logsheet/internal/logsheet"

	"github.com/gin-gonic/gin"
)

// @Summary      Render one day of a stored trip
// @Description  Returns the full draw list: grid, duty bars, transition marks, remarks, totals check and diagnostics.
// @Tags         logsheet
// @Produce      json
// @Param        id   path      string  true  "Trip id"
// @Param        day  path      int     true  "1-based day number"
// @Success      200  {object}  logsheet.Output
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/trips/{id}/days/{day}/log [get]
// @Security     BearerAuth
func (h *Handler) getDayLog(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidDay})
		return
	}
	id := c.Param("id")
	out, err := h.services.RenderDay(c.Request.Context(), id, day)
	if err != nil {
		h.respondServiceError(c, err, errRender, "logsheet_render_failed", "trip_id", id, "day", day)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Render a caller-supplied day
// @Description  Totals that do not add up and malformed segments are reported in the output, never as errors.
// @Tags         logsheet
// @Accept       json
// @Produce      json
// @Param        body  body      logsheet.Input  true  "Day to render"
// @Success      200   {object}  logsheet.Output
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/logsheet/render [post]
// @Security     BearerAuth
func (h *Handler) renderLogSheet(c *gin.Context) {
	var in logsheet.Input
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}
	c.JSON(http.StatusOK, h.services.RenderInput(c.Request.Context(), in))
}

// @Summary      Active layout constants
// @Tags         logsheet
// @Produce      json
// @Success      200  {object}  logsheet.Layout
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/logsheet/layout [get]
// @Security     BearerAuth
func (h *Handler) getLayout(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Layout())
}
