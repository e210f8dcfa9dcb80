package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/pkg/response"
)

type uiHintService interface {
	Get(ctx context.Context, subject, key string) (*dto.UIHintResponse, error)
	Set(ctx context.Context, key string, req dto.UIHintRequest) (*dto.UIHintResponse, error)
}

// UIHintHandler exposes one-time hint flags.
type UIHintHandler struct {
	service uiHintService
}

// NewUIHintHandler constructs handler.
func NewUIHintHandler(svc uiHintService) *UIHintHandler {
	return &UIHintHandler{service: svc}
}

// Get godoc
// @Summary Whether a hint was dismissed
// @Tags UI Hints
// @Produce json
// @Param key path string true "Hint key"
// @Param subject query string true "User or device id"
// @Success 200 {object} response.Envelope
// @Router /ui-hints/{key} [get]
func (h *UIHintHandler) Get(c *gin.Context) {
	hint, err := h.service.Get(c.Request.Context(), c.Query("subject"), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, hint)
}

// Set godoc
// @Summary Record or clear a hint dismissal
// @Tags UI Hints
// @Accept json
// @Produce json
// @Param key path string true "Hint key"
// @Param payload body dto.UIHintRequest true "Flag"
// @Success 200 {object} response.Envelope
// @Router /ui-hints/{key} [put]
func (h *UIHintHandler) Set(c *gin.Context) {
	var req dto.UIHintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	hint, err := h.service.Set(c.Request.Context(), c.Param("key"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, hint)
}
