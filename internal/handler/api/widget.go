package api

import (
	"errors"
	"net/http"
	"os"

	resdto "pacectrl/internal/handler/dto/response"
	"pacectrl/internal/handler/httperr"
	"pacectrl/internal/pkg/config"
	"pacectrl/internal/pkg/errs"
	"pacectrl/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type WidgetHandler struct {
	q          queries.ChoiceQueries
	scriptPath string
}

func NewWidgetHandler(q queries.ChoiceQueries, cfg config.Config) *WidgetHandler {
	return &WidgetHandler{q: q, scriptPath: cfg.Widget.ScriptPath}
}

// @Summary Widget configuration
// @Description Speed bounds and display theme for one trip
// @Tags widget
// @Produce json
// @Param external_trip_id query string true "External trip ID"
// @Success 200 {object} resdto.WidgetConfigResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/public/widget/config [get]
func (h *WidgetHandler) GetConfig(c *gin.Context) {
	externalTripID := c.Query("external_trip_id")
	if externalTripID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing external_trip_id"), "Missing external_trip_id", nil)
		return
	}
	cfg, err := h.q.WidgetConfig(c.Request.Context(), externalTripID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Trip not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTripConfig(cfg))
}

// @Summary Widget script
// @Description Serve the built embeddable widget bundle
// @Tags widget
// @Produce plain
// @Success 200 {string} string "javascript"
// @Failure 404 {object} map[string]string
// @Router /widget.js [get]
func (h *WidgetHandler) ServeScript(c *gin.Context) {
	if _, err := os.Stat(h.scriptPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "widget.js not built yet", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.Wrap(err, "stat widget bundle"), "Failed to read widget.js", nil)
		return
	}
	c.Header("Content-Type", "application/javascript")
	c.File(h.scriptPath)
}
