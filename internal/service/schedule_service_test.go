package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

func newTestScheduleService(gateway *stubGateway) *ScheduleService {
	metrics := NewMetricsService()
	return NewScheduleService(gateway, NewAssignmentFlowStore(0, metrics), nil, OrchestratorOptions{WorkingDays: workingDays}, metrics, nil, zap.NewNop())
}

func TestScheduleServiceBuildGrid(t *testing.T) {
	gateway := newStubGateway()
	gateway.sessions = []models.ClassSession{
		classSession("s1", models.Monday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourM1),
	}
	svc := newTestScheduleService(gateway)

	resp, err := svc.BuildGrid(context.Background(), dto.ScopeQuery{GroupID: groupA.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Grid.OccupiedCount())
	assert.Len(t, resp.Courses, 2)

	_, err = svc.BuildGrid(context.Background(), dto.ScopeQuery{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.BuildGrid(context.Background(), dto.ScopeQuery{GroupID: "g", TeacherID: "t"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestScheduleServiceValidateSelection(t *testing.T) {
	svc := newTestScheduleService(newStubGateway())
	ctx := context.Background()

	result, err := svc.ValidateSelection(ctx, dto.ValidateSelectionRequest{
		ScopeQuery: dto.ScopeQuery{GroupID: groupA.ID},
		Cells:      []dto.CellRequest{{Day: "MONDAY", HourID: "m2"}, {Day: "MONDAY", HourID: "m1"}},
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "07:00–08:20", result.TimeRange)

	result, err = svc.ValidateSelection(ctx, dto.ValidateSelectionRequest{
		ScopeQuery: dto.ScopeQuery{GroupID: groupA.ID},
		Cells:      []dto.CellRequest{{Day: "MONDAY", HourID: "m1"}, {Day: "MONDAY", HourID: "nope"}},
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, uint64(1), svc.metrics.Snapshot().SelectionRejections)

	_, err = svc.ValidateSelection(ctx, dto.ValidateSelectionRequest{ScopeQuery: dto.ScopeQuery{GroupID: groupA.ID}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestScheduleServiceClassifyTeachers(t *testing.T) {
	svc := newTestScheduleService(newStubGateway())
	ctx := context.Background()

	buckets, err := svc.ClassifyTeachers(ctx, dto.ClassifyTeachersRequest{CourseID: mathCourse.ID, Day: "MONDAY", HourIDs: []string{"m1", "m2"}})
	require.NoError(t, err)
	require.Len(t, buckets.Available, 1)
	assert.Equal(t, teacherAna.ID, buckets.Available[0].Teacher.ID)
	require.Len(t, buckets.Unavailable, 1)

	_, err = svc.ClassifyTeachers(ctx, dto.ClassifyTeachersRequest{CourseID: mathCourse.ID, Day: "MONDAY", HourIDs: []string{"zz"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, []string{"zz"}, appErrors.FromError(err).Details)

	_, err = svc.ClassifyTeachers(ctx, dto.ClassifyTeachersRequest{CourseID: mathCourse.ID, Day: "HOLIDAY", HourIDs: []string{"m1"}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestScheduleServiceFlowLifecycle(t *testing.T) {
	ctx := context.Background()
	gateway := newStubGateway()
	svc := newTestScheduleService(gateway)

	state, err := svc.StartFlow(ctx, dto.StartFlowRequest{ScopeQuery: dto.ScopeQuery{GroupID: groupA.ID}})
	require.NoError(t, err)
	flowID := state.FlowID
	require.NotEmpty(t, flowID)

	for _, hourID := range []string{"m1", "m2"} {
		_, err = svc.ToggleCell(flowID, dto.CellRequest{Day: "MONDAY", HourID: hourID})
		require.NoError(t, err)
	}
	_, err = svc.ConfirmSelection(flowID)
	require.NoError(t, err)
	choice, err := svc.SelectCourse(ctx, flowID, dto.SelectCourseRequest{CourseID: historyCourse.ID})
	require.NoError(t, err)
	assert.Equal(t, models.SessionTypeTheory, choice.AutoSelected)
	_, err = svc.FlowClassifyTeachers(ctx, flowID)
	require.NoError(t, err)
	_, err = svc.SelectTeacher(flowID, dto.SelectTeacherRequest{TeacherID: teacherAna.ID})
	require.NoError(t, err)
	spaces, err := svc.LoadSpaces(ctx, flowID)
	require.NoError(t, err)
	require.NotEmpty(t, spaces)
	_, err = svc.SelectSpace(flowID, dto.SelectSpaceRequest{SpaceID: spaces[0].ID})
	require.NoError(t, err)
	_, err = svc.ValidateFlow(ctx, flowID)
	require.NoError(t, err)

	state, err = svc.FlowState(flowID)
	require.NoError(t, err)
	assert.True(t, state.CanSave)

	resp, err := svc.SubmitFlow(ctx, flowID, dto.SubmitSessionRequest{Notes: "ok"})
	require.NoError(t, err)
	require.NotNil(t, resp.Session)
	require.NotNil(t, resp.Grid)
	assert.Equal(t, 2, resp.Grid.Grid.OccupiedCount())

	grid, err := svc.FlowDeleteSession(ctx, flowID, resp.Session.ID)
	require.NoError(t, err)
	assert.Zero(t, grid.Grid.OccupiedCount())

	require.NoError(t, svc.EndFlow(flowID))
	_, err = svc.FlowState(flowID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestScheduleServiceStartFlowInEditMode(t *testing.T) {
	gateway := newStubGateway()
	gateway.sessions = []models.ClassSession{
		classSession("s1", models.Monday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourM1, hourM2),
	}
	svc := newTestScheduleService(gateway)

	state, err := svc.StartFlow(context.Background(), dto.StartFlowRequest{ScopeQuery: dto.ScopeQuery{GroupID: groupA.ID}, EditSessionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "s1", state.EditSessionID)
	assert.Len(t, state.Selection, 2)

	_, err = svc.StartFlow(context.Background(), dto.StartFlowRequest{ScopeQuery: dto.ScopeQuery{GroupID: groupA.ID}, EditSessionID: "ghost"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestScheduleServiceUnknownFlow(t *testing.T) {
	svc := newTestScheduleService(newStubGateway())
	_, err := svc.ConfirmSelection("missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.ErrorIs(t, svc.EndFlow("missing"), appErrors.ErrNotFound)
}

func TestScheduleServiceDeleteSession(t *testing.T) {
	gateway := newStubGateway()
	gateway.sessions = []models.ClassSession{
		classSession("s1", models.Monday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourM1),
	}
	svc := newTestScheduleService(gateway)
	require.NoError(t, svc.DeleteSession(context.Background(), "s1"))
	assert.ErrorIs(t, svc.DeleteSession(context.Background(), "s1"), appErrors.ErrUpstream)
	assert.NoError(t, svc.InvalidateSnapshots(context.Background()))
}
