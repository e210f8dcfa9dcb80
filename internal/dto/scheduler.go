package dto

import "github.com/noah-isme/sma-schedule-engine/internal/models"

// ScopeQuery picks the teacher or group whose grid is requested.
type ScopeQuery struct {
	TeacherID string `form:"teacherId" json:"teacherId" validate:"required_without=GroupID,excluded_with=GroupID"`
	GroupID   string `form:"groupId" json:"groupId" validate:"required_without=TeacherID,excluded_with=TeacherID"`
}

// Scope converts the query into the domain scope.
func (q ScopeQuery) Scope() models.ScheduleScope {
	return models.ScheduleScope{TeacherID: q.TeacherID, GroupID: q.GroupID}
}

// CellRequest addresses one grid cell.
type CellRequest struct {
	Day    string `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	HourID string `json:"hourId" validate:"required"`
}

// ValidateSelectionRequest checks a set of cells against the scope's grid.
type ValidateSelectionRequest struct {
	ScopeQuery
	Cells []CellRequest `json:"cells" validate:"required,min=1,dive"`
}

// ClassifyTeachersRequest classifies candidate teachers for a course on a day and hour set.
type ClassifyTeachersRequest struct {
	CourseID         string   `json:"courseId" validate:"required"`
	Day              string   `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	HourIDs          []string `json:"hourIds" validate:"required,min=1,dive,required"`
	ExcludeSessionID string   `json:"excludeSessionId"`
}

// SessionRequest is the payload used to create or update a class session.
type SessionRequest struct {
	GroupID     string   `json:"groupId" validate:"required"`
	CourseID    string   `json:"courseId" validate:"required"`
	TeacherID   string   `json:"teacherId" validate:"required"`
	SpaceID     string   `json:"spaceId" validate:"required"`
	Day         string   `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	SessionType string   `json:"sessionType" validate:"required,oneof=THEORY PRACTICE"`
	HourIDs     []string `json:"hourIds" validate:"required,min=1,dive,required"`
	Notes       string   `json:"notes" validate:"omitempty,max=500"`
}

// AssignmentValidationRequest asks for the authoritative verdict on a proposed assignment.
type AssignmentValidationRequest struct {
	CourseID         string   `json:"courseId" validate:"required"`
	TeacherID        string   `json:"teacherId" validate:"required"`
	SpaceID          string   `json:"spaceId" validate:"required"`
	GroupID          string   `json:"groupId" validate:"required"`
	Day              string   `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	HourIDs          []string `json:"hourIds" validate:"required,min=1,dive,required"`
	SessionType      string   `json:"sessionType" validate:"required,oneof=THEORY PRACTICE"`
	ExcludeSessionID string   `json:"excludeSessionId"`
}

// StartFlowRequest opens an assignment flow for one scope, optionally editing a session.
type StartFlowRequest struct {
	ScopeQuery
	EditSessionID string `json:"editSessionId"`
}

// SelectCourseRequest picks the course (and, for teacher scopes, the group) of the new session.
type SelectCourseRequest struct {
	CourseID string `json:"courseId" validate:"required"`
	GroupID  string `json:"groupId"`
}

// SelectTeacherRequest picks a classified teacher.
type SelectTeacherRequest struct {
	TeacherID string `json:"teacherId" validate:"required"`
}

// SelectSessionTypeRequest picks between theory and practice.
type SelectSessionTypeRequest struct {
	SessionType string `json:"sessionType" validate:"required,oneof=THEORY PRACTICE"`
}

// SelectSpaceRequest picks a learning space from the loaded list.
type SelectSpaceRequest struct {
	SpaceID string `json:"spaceId" validate:"required"`
}

// SubmitSessionRequest commits the flow.
type SubmitSessionRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

// UIHintRequest records whether a hint was dismissed.
type UIHintRequest struct {
	Subject string `json:"subject" validate:"required"`
	Seen    bool   `json:"seen"`
}

// ScheduleGridResponse is the grid of a scope plus its quota projections.
type ScheduleGridResponse struct {
	Scope    models.ScheduleScope            `json:"scope"`
	Grid     *models.ScheduleGrid            `json:"grid"`
	Courses  []models.CourseMetadata         `json:"courses,omitempty"`
	Summary  *models.CourseQuotaSummary      `json:"summary,omitempty"`
	Teacher  *models.TeacherScheduleMetadata `json:"teacher,omitempty"`
	Warnings []string                        `json:"warnings,omitempty"`
}

// AssignmentDraft is the form being filled in by a flow.
type AssignmentDraft struct {
	CourseID    string             `json:"courseId,omitempty"`
	GroupID     string             `json:"groupId,omitempty"`
	TeacherID   string             `json:"teacherId,omitempty"`
	SpaceID     string             `json:"spaceId,omitempty"`
	SessionType models.SessionType `json:"sessionType,omitempty"`
}

// FlowStateResponse is the externally visible state of an assignment flow.
type FlowStateResponse struct {
	FlowID         string                             `json:"flowId"`
	Scope          models.ScheduleScope               `json:"scope"`
	EditSessionID  string                             `json:"editSessionId,omitempty"`
	Selection      []models.SelectedCellInfo          `json:"selection"`
	Confirmed      *models.SelectionValidation        `json:"confirmed,omitempty"`
	Draft          AssignmentDraft                    `json:"draft"`
	SessionTypes   *models.SessionTypeChoice          `json:"sessionTypes,omitempty"`
	LastValidation *models.AssignmentValidationResult `json:"lastValidation,omitempty"`
	CanSave        bool                               `json:"canSave"`
}

// TeacherSelectionResponse carries the conflicts to resolve after picking a teacher.
type TeacherSelectionResponse struct {
	Teacher  models.TeacherEligibility `json:"teacher"`
	Warnings []string                  `json:"warnings,omitempty"`
}

// SubmitSessionResponse returns the saved session and the refreshed grid.
type SubmitSessionResponse struct {
	Session *models.ClassSession  `json:"session"`
	Grid    *ScheduleGridResponse `json:"grid"`
}

// UIHintResponse reports a hint flag.
type UIHintResponse struct {
	Key     string `json:"key"`
	Subject string `json:"subject"`
	Seen    bool   `json:"seen"`
}
