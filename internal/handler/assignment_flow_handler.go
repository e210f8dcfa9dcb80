package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/pkg/response"
)

type assignmentFlowService interface {
	StartFlow(ctx context.Context, req dto.StartFlowRequest) (*dto.FlowStateResponse, error)
	FlowState(flowID string) (*dto.FlowStateResponse, error)
	FlowGrid(flowID string) (*dto.ScheduleGridResponse, error)
	EndFlow(flowID string) error
	ToggleCell(flowID string, req dto.CellRequest) (*models.SelectionValidation, error)
	ClearSelection(flowID string) (*dto.FlowStateResponse, error)
	ConfirmSelection(flowID string) (*models.SelectionValidation, error)
	SelectCourse(ctx context.Context, flowID string, req dto.SelectCourseRequest) (*models.SessionTypeChoice, error)
	SelectSessionType(flowID string, req dto.SelectSessionTypeRequest) (*dto.FlowStateResponse, error)
	FlowClassifyTeachers(ctx context.Context, flowID string) (*models.TeacherBuckets, error)
	SelectTeacher(flowID string, req dto.SelectTeacherRequest) (*dto.TeacherSelectionResponse, error)
	LoadSpaces(ctx context.Context, flowID string) ([]models.LearningSpace, error)
	SelectSpace(flowID string, req dto.SelectSpaceRequest) (*dto.FlowStateResponse, error)
	ValidateFlow(ctx context.Context, flowID string) (*models.AssignmentValidationResult, error)
	SubmitFlow(ctx context.Context, flowID string, req dto.SubmitSessionRequest) (*dto.SubmitSessionResponse, error)
	FlowDeleteSession(ctx context.Context, flowID, sessionID string) (*dto.ScheduleGridResponse, error)
}

// AssignmentFlowHandler drives the step-by-step assignment flow.
type AssignmentFlowHandler struct {
	service assignmentFlowService
}

// NewAssignmentFlowHandler constructs handler.
func NewAssignmentFlowHandler(svc assignmentFlowService) *AssignmentFlowHandler {
	return &AssignmentFlowHandler{service: svc}
}

// Start godoc
// @Summary Start an assignment flow
// @Description Loads the scope's grid. Pass editSessionId to prefill the flow from an existing session.
// @Tags Assignment Flows
// @Accept json
// @Produce json
// @Param payload body dto.StartFlowRequest true "Scope"
// @Success 201 {object} response.Envelope
// @Router /schedule/flows [post]
func (h *AssignmentFlowHandler) Start(c *gin.Context) {
	var req dto.StartFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	state, err := h.service.StartFlow(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, state)
}

// State godoc
// @Summary Assignment flow state
// @Tags Assignment Flows
// @Produce json
// @Param id path string true "Flow ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id} [get]
func (h *AssignmentFlowHandler) State(c *gin.Context) {
	state, err := h.service.FlowState(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// Grid godoc
// @Summary Grid of a flow with the current selection highlighted
// @Tags Assignment Flows
// @Produce json
// @Param id path string true "Flow ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/grid [get]
func (h *AssignmentFlowHandler) Grid(c *gin.Context) {
	grid, err := h.service.FlowGrid(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, grid)
}

// End godoc
// @Summary Discard an assignment flow
// @Tags Assignment Flows
// @Param id path string true "Flow ID"
// @Success 204
// @Router /schedule/flows/{id} [delete]
func (h *AssignmentFlowHandler) End(c *gin.Context) {
	if err := h.service.EndFlow(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ToggleCell godoc
// @Summary Toggle one cell of the selection
// @Tags Assignment Flows
// @Accept json
// @Produce json
// @Param id path string true "Flow ID"
// @Param payload body dto.CellRequest true "Cell"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/cells [post]
func (h *AssignmentFlowHandler) ToggleCell(c *gin.Context) {
	var req dto.CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.service.ToggleCell(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// ClearSelection godoc
// @Summary Clear the selection
// @Tags Assignment Flows
// @Produce json
// @Param id path string true "Flow ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/cells [delete]
func (h *AssignmentFlowHandler) ClearSelection(c *gin.Context) {
	state, err := h.service.ClearSelection(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// ConfirmSelection godoc
// @Summary Confirm the selection and move to the assignment form
// @Tags Assignment Flows
// @Produce json
// @Param id path string true "Flow ID"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /schedule/flows/{id}/confirm [post]
func (h *AssignmentFlowHandler) ConfirmSelection(c *gin.Context) {
	result, err := h.service.ConfirmSelection(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// SelectCourse godoc
// @Summary Pick the course of the new session
// @Tags Assignment Flows
// @Accept json
// @Produce json
// @Param id path string true "Flow ID"
// @Param payload body dto.SelectCourseRequest true "Course"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/course [put]
func (h *AssignmentFlowHandler) SelectCourse(c *gin.Context) {
	var req dto.SelectCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	choice, err := h.service.SelectCourse(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, choice)
}

// SelectSessionType godoc
// @Summary Pick theory or practice
// @Tags Assignment Flows
// @Accept json
// @Produce json
// @Param id path string true "Flow ID"
// @Param payload body dto.SelectSessionTypeRequest true "Session type"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/session-type [put]
func (h *AssignmentFlowHandler) SelectSessionType(c *gin.Context) {
	var req dto.SelectSessionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	state, err := h.service.SelectSessionType(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// ClassifyTeachers godoc
// @Summary Classify teachers for the flow's selection and course
// @Tags Assignment Flows
// @Produce json
// @Param id path string true "Flow ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/teachers [get]
func (h *AssignmentFlowHandler) ClassifyTeachers(c *gin.Context) {
	buckets, err := h.service.FlowClassifyTeachers(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, buckets)
}

// SelectTeacher godoc
// @Summary Pick a classified teacher
// @Tags Assignment Flows
// @Accept json
// @Produce json
// @Param id path string true "Flow ID"
// @Param payload body dto.SelectTeacherRequest true "Teacher"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/teacher [put]
func (h *AssignmentFlowHandler) SelectTeacher(c *gin.Context) {
	var req dto.SelectTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.service.SelectTeacher(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// LoadSpaces godoc
// @Summary Free learning spaces for the flow
// @Tags Assignment Flows
// @Produce json
// @Param id path string true "Flow ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/spaces [get]
func (h *AssignmentFlowHandler) LoadSpaces(c *gin.Context) {
	spaces, err := h.service.LoadSpaces(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, spaces)
}

// SelectSpace godoc
// @Summary Pick a learning space
// @Tags Assignment Flows
// @Accept json
// @Produce json
// @Param id path string true "Flow ID"
// @Param payload body dto.SelectSpaceRequest true "Space"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/space [put]
func (h *AssignmentFlowHandler) SelectSpace(c *gin.Context) {
	var req dto.SelectSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	state, err := h.service.SelectSpace(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// Validate godoc
// @Summary Validate the flow's assignment
// @Tags Assignment Flows
// @Produce json
// @Param id path string true "Flow ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/validate [post]
func (h *AssignmentFlowHandler) Validate(c *gin.Context) {
	result, err := h.service.ValidateFlow(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Submit godoc
// @Summary Save the flow's session
// @Tags Assignment Flows
// @Accept json
// @Produce json
// @Param id path string true "Flow ID"
// @Param payload body dto.SubmitSessionRequest false "Notes"
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /schedule/flows/{id}/submit [post]
func (h *AssignmentFlowHandler) Submit(c *gin.Context) {
	var req dto.SubmitSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, invalidPayload(err))
			return
		}
	}
	result, err := h.service.SubmitFlow(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteSession godoc
// @Summary Delete a session from within a flow and reload its grid
// @Tags Assignment Flows
// @Produce json
// @Param id path string true "Flow ID"
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/flows/{id}/sessions/{sessionId} [delete]
func (h *AssignmentFlowHandler) DeleteSession(c *gin.Context) {
	grid, err := h.service.FlowDeleteSession(c.Request.Context(), c.Param("id"), c.Param("sessionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, grid)
}
