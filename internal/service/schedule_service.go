package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

// ScheduleService exposes the assignment engine to the HTTP layer. One-shot reads build
// a throwaway orchestrator; assignment flows keep theirs in the flow store.
type ScheduleService struct {
	gateway   SchedulingGateway
	flows     *AssignmentFlowStore
	cache     *CacheService
	options   OrchestratorOptions
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(gateway SchedulingGateway, flows *AssignmentFlowStore, cache *CacheService, options OrchestratorOptions, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if flows == nil {
		flows = NewAssignmentFlowStore(0, metrics)
	}
	return &ScheduleService{
		gateway:   gateway,
		flows:     flows,
		cache:     cache,
		options:   options,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

func (s *ScheduleService) newOrchestrator() *AssignmentOrchestrator {
	return NewAssignmentOrchestrator(s.gateway, s.options, s.metrics, s.logger)
}

func (s *ScheduleService) load(ctx context.Context, query dto.ScopeQuery) (*AssignmentOrchestrator, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, validationError(err)
	}
	orchestrator := s.newOrchestrator()
	if err := orchestrator.Load(ctx, query.Scope()); err != nil {
		return nil, err
	}
	return orchestrator, nil
}

// BuildGrid returns the grid of a teacher or group with its quota projections.
func (s *ScheduleService) BuildGrid(ctx context.Context, query dto.ScopeQuery) (*dto.ScheduleGridResponse, error) {
	orchestrator, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}
	snapshot, err := orchestrator.Snapshot()
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ValidateSelection checks a set of cells against the current grid of the scope.
func (s *ScheduleService) ValidateSelection(ctx context.Context, req dto.ValidateSelectionRequest) (*models.SelectionValidation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	orchestrator, err := s.load(ctx, req.ScopeQuery)
	if err != nil {
		return nil, err
	}
	grid := orchestrator.Grid()
	cells := make([]models.SelectedCellInfo, 0, len(req.Cells))
	for _, raw := range req.Cells {
		day := models.DayOfWeek(raw.Day)
		cell, ok := SelectedCell(grid, day, raw.HourID)
		if !ok {
			cell = models.SelectedCellInfo{Day: day, Hour: models.TeachingHour{ID: raw.HourID}}
		}
		cells = append(cells, cell)
	}
	result := ValidateSelection(grid, cells)
	if !result.Valid {
		s.metrics.RecordSelectionRejected()
	}
	return &result, nil
}

// ClassifyTeachers classifies the eligible teachers of a course for a day and hours.
func (s *ScheduleService) ClassifyTeachers(ctx context.Context, req dto.ClassifyTeachersRequest) (*models.TeacherBuckets, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	slots, err := s.gateway.ListTimeSlots(ctx)
	if err != nil {
		return nil, upstreamError(err, "load time slots")
	}
	hours, missing := NormalizeTimeSlots(slots).HoursByID(req.HourIDs)
	if len(missing) > 0 {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "unknown teaching hours", missing)
	}
	day := models.DayOfWeek(req.Day)
	candidates, err := s.gateway.ListEligibleTeachers(ctx, req.CourseID, day, req.HourIDs)
	if err != nil {
		return nil, upstreamError(err, "load eligible teachers")
	}
	buckets := ClassifyTeachers(ClassificationRequest{
		CourseID:         req.CourseID,
		Day:              day,
		Hours:            hours,
		ExcludeSessionID: req.ExcludeSessionID,
	}, candidates)
	for _, eligibility := range buckets.All() {
		s.metrics.RecordClassification(eligibility.Status)
	}
	return &buckets, nil
}

// ValidateAssignment runs the authoritative assignment validation.
func (s *ScheduleService) ValidateAssignment(ctx context.Context, req dto.AssignmentValidationRequest) (*models.AssignmentValidationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	result, err := s.gateway.ValidateAssignment(ctx, req)
	if err != nil {
		return nil, upstreamError(err, "validate assignment")
	}
	return result, nil
}

// DeleteSession removes a session outside of any flow.
func (s *ScheduleService) DeleteSession(ctx context.Context, id string) error {
	if err := s.gateway.DeleteSession(ctx, id); err != nil {
		return upstreamError(err, "delete session")
	}
	return nil
}

// InvalidateSnapshots drops cached time-slot snapshots after reference data changed.
func (s *ScheduleService) InvalidateSnapshots(ctx context.Context) error {
	return s.cache.InvalidateSnapshots(ctx)
}

// StartFlow loads a scope into a new assignment flow, in edit mode when a session id is given.
func (s *ScheduleService) StartFlow(ctx context.Context, req dto.StartFlowRequest) (*dto.FlowStateResponse, error) {
	orchestrator, err := s.load(ctx, req.ScopeQuery)
	if err != nil {
		return nil, err
	}
	if req.EditSessionID != "" {
		if err := orchestrator.BeginEdit(ctx, req.EditSessionID); err != nil {
			return nil, err
		}
	}
	id := s.flows.Put(orchestrator)
	s.logger.Info("assignment flow started",
		zap.String("flow_id", id),
		zap.String("teacher_id", req.TeacherID),
		zap.String("group_id", req.GroupID),
		zap.String("edit_session_id", req.EditSessionID),
	)
	return s.state(id, orchestrator), nil
}

func (s *ScheduleService) state(id string, orchestrator *AssignmentOrchestrator) *dto.FlowStateResponse {
	state := orchestrator.State()
	state.FlowID = id
	return &state
}

// FlowState reports the state of a flow.
func (s *ScheduleService) FlowState(flowID string) (*dto.FlowStateResponse, error) {
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	return s.state(flowID, orchestrator), nil
}

// FlowGrid returns the grid of a flow including the selection highlight.
func (s *ScheduleService) FlowGrid(flowID string) (*dto.ScheduleGridResponse, error) {
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	snapshot, err := orchestrator.Snapshot()
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// EndFlow cancels and forgets a flow.
func (s *ScheduleService) EndFlow(flowID string) error {
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return err
	}
	orchestrator.Cancel()
	s.flows.Delete(flowID)
	return nil
}

// ToggleCell adds or removes one cell from the flow's selection.
func (s *ScheduleService) ToggleCell(flowID string, req dto.CellRequest) (*models.SelectionValidation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	result, err := orchestrator.ToggleCell(models.DayOfWeek(req.Day), req.HourID)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ClearSelection empties the flow's selection.
func (s *ScheduleService) ClearSelection(flowID string) (*dto.FlowStateResponse, error) {
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	orchestrator.ClearSelection()
	return s.state(flowID, orchestrator), nil
}

// ConfirmSelection fixes the day and hours of the flow.
func (s *ScheduleService) ConfirmSelection(flowID string) (*models.SelectionValidation, error) {
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	result, err := orchestrator.ConfirmSelection()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SelectCourse picks the course and group of the flow.
func (s *ScheduleService) SelectCourse(ctx context.Context, flowID string, req dto.SelectCourseRequest) (*models.SessionTypeChoice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	choice, err := orchestrator.SelectCourse(ctx, req.CourseID, req.GroupID)
	if err != nil {
		return nil, err
	}
	return &choice, nil
}

// SelectSessionType picks theory or practice.
func (s *ScheduleService) SelectSessionType(flowID string, req dto.SelectSessionTypeRequest) (*dto.FlowStateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	if err := orchestrator.SelectSessionType(models.SessionType(req.SessionType)); err != nil {
		return nil, err
	}
	return s.state(flowID, orchestrator), nil
}

// FlowClassifyTeachers classifies teachers for the flow's confirmed cells.
func (s *ScheduleService) FlowClassifyTeachers(ctx context.Context, flowID string) (*models.TeacherBuckets, error) {
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	buckets, err := orchestrator.ClassifyTeachers(ctx)
	if err != nil {
		return nil, err
	}
	return &buckets, nil
}

// SelectTeacher picks a classified teacher.
func (s *ScheduleService) SelectTeacher(flowID string, req dto.SelectTeacherRequest) (*dto.TeacherSelectionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	resp, err := orchestrator.SelectTeacher(req.TeacherID)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoadSpaces lists the free spaces for the flow.
func (s *ScheduleService) LoadSpaces(ctx context.Context, flowID string) ([]models.LearningSpace, error) {
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	return orchestrator.LoadSpaces(ctx)
}

// SelectSpace picks one of the loaded spaces.
func (s *ScheduleService) SelectSpace(flowID string, req dto.SelectSpaceRequest) (*dto.FlowStateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	if err := orchestrator.SelectSpace(req.SpaceID); err != nil {
		return nil, err
	}
	return s.state(flowID, orchestrator), nil
}

// ValidateFlow runs the remote validation of the flow's form.
func (s *ScheduleService) ValidateFlow(ctx context.Context, flowID string) (*models.AssignmentValidationResult, error) {
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	return orchestrator.Validate(ctx)
}

// SubmitFlow saves the flow's session and returns it with the reloaded grid.
func (s *ScheduleService) SubmitFlow(ctx context.Context, flowID string, req dto.SubmitSessionRequest) (*dto.SubmitSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	session, err := orchestrator.Submit(ctx, req.Notes)
	if session == nil {
		return nil, err
	}
	resp := &dto.SubmitSessionResponse{Session: session}
	if err != nil {
		s.logger.Warn("schedule reload after submit failed", zap.String("flow_id", flowID), zap.Error(err))
		return resp, nil
	}
	snapshot, snapErr := orchestrator.Snapshot()
	if snapErr == nil {
		resp.Grid = &snapshot
	}
	return resp, nil
}

// FlowDeleteSession deletes a session from within a flow and reloads its grid.
func (s *ScheduleService) FlowDeleteSession(ctx context.Context, flowID, sessionID string) (*dto.ScheduleGridResponse, error) {
	orchestrator, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	if err := orchestrator.DeleteSession(ctx, sessionID); err != nil {
		return nil, err
	}
	snapshot, err := orchestrator.Snapshot()
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// SweepFlows drops expired flows.
func (s *ScheduleService) SweepFlows() int {
	removed := s.flows.Sweep()
	if removed > 0 {
		s.logger.Debug("expired assignment flows removed", zap.Int("count", removed))
	}
	return removed
}
