package api

import (
	"io"
	"net/http"

	resdto "pacectrl/internal/handler/dto/response"
	"pacectrl/internal/handler/httperr"
	"pacectrl/internal/pkg/errs"
	"pacectrl/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	q queries.ChoiceQueries
}

func NewAdminHandler(q queries.ChoiceQueries) *AdminHandler {
	return &AdminHandler{q: q}
}

// @Summary List live intents
// @Description Pending choice intents, most recent first
// @Tags admin
// @Produce json
// @Success 200 {array} resdto.ChoiceIntentResponse
// @Router /api/v1/admin/choice-intents [get]
func (h *AdminHandler) ListIntents(c *gin.Context) {
	intents := h.q.ListIntents(c.Request.Context())
	c.JSON(http.StatusOK, resdto.FromIntentList(intents))
}

// @Summary List confirmations
// @Description All confirmed choices, most recent first
// @Tags admin
// @Produce json
// @Success 200 {array} resdto.ChoiceConfirmationResponse
// @Router /api/v1/admin/choice-confirmations [get]
func (h *AdminHandler) ListConfirmations(c *gin.Context) {
	records := h.q.ListConfirmations(c.Request.Context())
	c.JSON(http.StatusOK, resdto.FromConfirmationList(records))
}

// @Summary Trip average
// @Description Confirmation count and mean reduction percent for one trip
// @Tags admin
// @Produce json
// @Param external_trip_id query string true "External trip ID"
// @Success 200 {object} resdto.TripAverageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/trip-average [get]
func (h *AdminHandler) TripAverage(c *gin.Context) {
	externalTripID := c.Query("external_trip_id")
	if externalTripID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing external_trip_id"), "Missing external_trip_id", nil)
		return
	}
	view, err := h.q.TripAverage(c.Request.Context(), externalTripID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Trip not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTripAverage(view))
}

// @Summary Live state stream
// @Description Server-sent events: one snapshot on connect plus one per state change
// @Tags admin
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /api/v1/admin/stream [get]
func (h *AdminHandler) Stream(c *gin.Context) {
	sub := h.q.Attach(c.Request.Context())
	defer h.q.Detach(sub)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(_ io.Writer) bool {
		select {
		case snapshot, ok := <-sub.C():
			if !ok {
				return false
			}
			c.SSEvent("snapshot", resdto.FromSnapshot(snapshot))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
