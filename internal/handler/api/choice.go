package api

import (
	"errors"
	"net/http"

	reqdto "pacectrl/internal/handler/dto/request"
	resdto "pacectrl/internal/handler/dto/response"
	"pacectrl/internal/handler/httperr"
	"pacectrl/internal/pkg/errs"
	"pacectrl/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ChoiceHandler struct {
	cmds commands.ChoiceCommands
}

func NewChoiceHandler(cmds commands.ChoiceCommands) *ChoiceHandler {
	return &ChoiceHandler{cmds: cmds}
}

// @Summary Create choice intent
// @Description Register a pending speed-reduction choice for a trip
// @Tags choices
// @Accept json
// @Produce json
// @Param request body reqdto.CreateChoiceIntentRequest true "Create intent request"
// @Success 201 {object} resdto.ChoiceIntentCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/public/choice-intents [post]
func (h *ChoiceHandler) CreateIntent(c *gin.Context) {
	var req reqdto.CreateChoiceIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreateIntent(c.Request.Context(), commands.CreateIntentRequest{
		ExternalTripID: req.ExternalTripID,
		ReductionPct:   *req.ReductionPct,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrTripNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Trip not found", nil)
		case errors.Is(err, errs.ErrReductionOutOfRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Reduction out of bounds", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Create intent failed", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, &resdto.ChoiceIntentCreatedResponse{IntentID: result.IntentID})
}

// @Summary Confirm choice
// @Description Bind a booking to a previously created intent (exactly once)
// @Tags choices
// @Accept json
// @Produce json
// @Param request body reqdto.ConfirmChoiceRequest true "Confirm choice request"
// @Success 200 {object} resdto.ChoiceConfirmationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/public/choice-confirmations [post]
func (h *ChoiceHandler) ConfirmChoice(c *gin.Context) {
	var req reqdto.ConfirmChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	record, err := h.cmds.ConfirmChoice(c.Request.Context(), commands.ConfirmChoiceRequest{
		BookingID: *req.BookingID,
		IntentID:  req.IntentID,
	})
	if err != nil {
		if errors.Is(err, errs.ErrIntentNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Intent not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Confirm choice failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConfirmation(*record))
}
