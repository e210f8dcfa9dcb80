package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
	"github.com/noah-isme/sma-schedule-engine/pkg/response"
)

type scheduleService interface {
	BuildGrid(ctx context.Context, query dto.ScopeQuery) (*dto.ScheduleGridResponse, error)
	ValidateSelection(ctx context.Context, req dto.ValidateSelectionRequest) (*models.SelectionValidation, error)
	ClassifyTeachers(ctx context.Context, req dto.ClassifyTeachersRequest) (*models.TeacherBuckets, error)
	ValidateAssignment(ctx context.Context, req dto.AssignmentValidationRequest) (*models.AssignmentValidationResult, error)
	DeleteSession(ctx context.Context, id string) error
	InvalidateSnapshots(ctx context.Context) error
}

// ScheduleHandler serves the stateless schedule endpoints.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
}

// Grid godoc
// @Summary Schedule grid of a teacher or a group
// @Tags Schedule
// @Produce json
// @Param teacherId query string false "Teacher scope"
// @Param groupId query string false "Group scope"
// @Success 200 {object} response.Envelope
// @Router /schedule/grid [get]
func (h *ScheduleHandler) Grid(c *gin.Context) {
	var query dto.ScopeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	grid, err := h.service.BuildGrid(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, grid)
}

// ValidateSelection godoc
// @Summary Validate a multi-cell selection
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.ValidateSelectionRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Router /schedule/selection/validate [post]
func (h *ScheduleHandler) ValidateSelection(c *gin.Context) {
	var req dto.ValidateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.service.ValidateSelection(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// ClassifyTeachers godoc
// @Summary Classify eligible teachers for a course and hour set
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.ClassifyTeachersRequest true "Classification request"
// @Success 200 {object} response.Envelope
// @Router /schedule/teachers/classify [post]
func (h *ScheduleHandler) ClassifyTeachers(c *gin.Context) {
	var req dto.ClassifyTeachersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	buckets, err := h.service.ClassifyTeachers(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, buckets)
}

// ValidateAssignment godoc
// @Summary Authoritative validation of a proposed session
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.AssignmentValidationRequest true "Assignment"
// @Success 200 {object} response.Envelope
// @Router /schedule/assignments/validate [post]
func (h *ScheduleHandler) ValidateAssignment(c *gin.Context) {
	var req dto.AssignmentValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.service.ValidateAssignment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteSession godoc
// @Summary Delete a class session
// @Tags Schedule
// @Param id path string true "Session ID"
// @Success 204
// @Router /schedule/sessions/{id} [delete]
func (h *ScheduleHandler) DeleteSession(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// InvalidateCache godoc
// @Summary Drop cached reference snapshots
// @Tags Schedule
// @Success 204
// @Router /schedule/cache [delete]
func (h *ScheduleHandler) InvalidateCache(c *gin.Context) {
	if err := h.service.InvalidateSnapshots(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
