package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

// OrchestratorOptions configures grid construction and workload estimates.
type OrchestratorOptions struct {
	WorkingDays        []models.DayOfWeek
	DefaultWeeklyHours int
}

// AssignmentOrchestrator drives one assignment action over a scope: build the grid,
// select cells, confirm, classify teachers, pick a space, validate and submit.
// Gateway calls are made without holding the lock; a response is applied only if no
// newer request was started meanwhile.
type AssignmentOrchestrator struct {
	gateway            SchedulingGateway
	days               []models.DayOfWeek
	defaultWeeklyHours float64
	metrics            *MetricsService
	logger             *zap.Logger

	mu         sync.Mutex
	requestSeq uint64
	loadSeq    uint64

	scope       models.ScheduleScope
	loaded      bool
	slots       NormalizedTimeSlots
	sessions    []models.ClassSession
	courses     []models.Course
	windows     []models.AvailabilityWindow
	grid        *models.ScheduleGrid
	courseMeta  []models.CourseMetadata
	teacherMeta *models.TeacherScheduleMetadata

	selection    []models.SelectedCellInfo
	confirmed    *models.SelectionValidation
	editing      *models.ClassSession
	draft        dto.AssignmentDraft
	sessionTypes *models.SessionTypeChoice
	eligibility  map[string]models.TeacherEligibility
	spaces       []models.LearningSpace
	validation   *models.AssignmentValidationResult
	validatedFor validationKey
}

type validationKey struct {
	draft   dto.AssignmentDraft
	day     models.DayOfWeek
	hourIDs string
}

type scheduleSnapshot struct {
	slots    []models.TimeSlot
	sessions []models.ClassSession
	courses  []models.Course
	windows  []models.AvailabilityWindow
}

// NewAssignmentOrchestrator constructs an orchestrator with no scope loaded.
func NewAssignmentOrchestrator(gateway SchedulingGateway, opts OrchestratorOptions, metrics *MetricsService, logger *zap.Logger) *AssignmentOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	days := opts.WorkingDays
	if len(days) == 0 {
		days = []models.DayOfWeek{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday, models.Saturday}
	}
	weekly := opts.DefaultWeeklyHours
	if weekly <= 0 {
		weekly = 40
	}
	return &AssignmentOrchestrator{
		gateway:            gateway,
		days:               append([]models.DayOfWeek(nil), days...),
		defaultWeeklyHours: float64(weekly),
		metrics:            metrics,
		logger:             logger,
	}
}

// Load fetches the scope's snapshot and builds its grid. Any selection in progress is discarded.
func (o *AssignmentOrchestrator) Load(ctx context.Context, scope models.ScheduleScope) error {
	if !scope.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "scope needs exactly one of teacher or group")
	}
	o.mu.Lock()
	o.scope = scope
	o.loaded = false
	o.requestSeq++
	o.clearTransientLocked()
	o.mu.Unlock()
	return o.Refresh(ctx)
}

// Refresh re-fetches the current scope's snapshot and recomputes grid and metadata.
func (o *AssignmentOrchestrator) Refresh(ctx context.Context) error {
	o.mu.Lock()
	if !o.scope.Valid() {
		o.mu.Unlock()
		return appErrors.Clone(appErrors.ErrFlowStep, "load a schedule scope first")
	}
	scope := o.scope
	o.loadSeq++
	token := o.loadSeq
	o.mu.Unlock()

	snapshot, err := fetchSnapshot(ctx, o.gateway, scope)

	o.mu.Lock()
	defer o.mu.Unlock()
	if token != o.loadSeq || scope != o.scope {
		o.metrics.RecordStaleResponse("load")
		return appErrors.Clone(appErrors.ErrStaleResponse, "schedule load superseded by a newer load")
	}
	if err != nil {
		return upstreamError(err, "load schedule")
	}
	o.slots = NormalizeTimeSlots(snapshot.slots)
	o.sessions = snapshot.sessions
	o.courses = snapshot.courses
	o.windows = snapshot.windows
	o.loaded = true
	o.rebuildLocked()
	if o.editing != nil && !o.hasSessionLocked(o.editing.ID) {
		o.clearTransientLocked()
	}
	for _, warning := range o.slots.Warnings {
		o.logger.Warn("time slot data integrity", zap.String("warning", warning))
	}
	return nil
}

func fetchSnapshot(ctx context.Context, gateway SchedulingGateway, scope models.ScheduleScope) (scheduleSnapshot, error) {
	var snapshot scheduleSnapshot
	var err error
	if snapshot.slots, err = gateway.ListTimeSlots(ctx); err != nil {
		return snapshot, err
	}
	if snapshot.sessions, err = gateway.ListSessions(ctx, scope); err != nil {
		return snapshot, err
	}
	// course quotas are tracked per group; a teacher scope only needs availability
	if scope.IsTeacher() {
		snapshot.windows, err = gateway.ListTeacherAvailability(ctx, scope.TeacherID)
		return snapshot, err
	}
	snapshot.courses, err = gateway.ListCourses(ctx, scope)
	return snapshot, err
}

func (o *AssignmentOrchestrator) rebuildLocked() {
	o.grid = BuildScheduleGrid(o.slots, o.days, o.sessions)
	o.grid.MarkSelected(o.selection)
	o.courseMeta = nil
	o.teacherMeta = nil
	if o.scope.IsGroup() {
		o.courseMeta = DeriveCourseMetadata(o.courses, o.sessions)
		return
	}
	estimate := EstimateWeeklyAvailableHours(o.windows, o.days, o.slots.TypicalHourMinutes())
	if estimate <= 0 {
		estimate = o.defaultWeeklyHours
	}
	meta := DeriveTeacherMetadata(o.scope.TeacherID, o.sessions, estimate)
	o.teacherMeta = &meta
}

func (o *AssignmentOrchestrator) hasSessionLocked(id string) bool {
	_, ok := o.findSessionLocked(id)
	return ok
}

func (o *AssignmentOrchestrator) findSessionLocked(id string) (models.ClassSession, bool) {
	for _, session := range o.sessions {
		if session.ID == id {
			return session, true
		}
	}
	return models.ClassSession{}, false
}

// clearTransientLocked drops the selection and the whole form.
func (o *AssignmentOrchestrator) clearTransientLocked() {
	o.selection = nil
	o.confirmed = nil
	o.editing = nil
	o.draft = dto.AssignmentDraft{}
	if o.scope.IsGroup() {
		o.draft.GroupID = o.scope.GroupID
	}
	o.sessionTypes = nil
	o.eligibility = nil
	o.spaces = nil
	o.validation = nil
	o.validatedFor = validationKey{}
	o.grid.MarkSelected(nil)
}

// selectionChangedLocked invalidates everything derived from the selected cells.
// Course and session type survive; teacher and space depend on the day and hours
// and must be picked again from a fresh classification and space list.
func (o *AssignmentOrchestrator) selectionChangedLocked() {
	o.requestSeq++
	o.confirmed = nil
	o.eligibility = nil
	o.spaces = nil
	o.draft.TeacherID = ""
	o.draft.SpaceID = ""
	o.validation = nil
	o.grid.MarkSelected(o.selection)
}

func (o *AssignmentOrchestrator) excludedSessionIDLocked() string {
	if o.editing == nil {
		return ""
	}
	return o.editing.ID
}

func (o *AssignmentOrchestrator) staleLocked(token uint64, step string) error {
	if token == o.requestSeq {
		return nil
	}
	o.metrics.RecordStaleResponse(step)
	o.logger.Debug("discarding stale response", zap.String("step", step), zap.Uint64("token", token), zap.Uint64("latest", o.requestSeq))
	return appErrors.Clone(appErrors.ErrStaleResponse, step+" response superseded by a newer request")
}

func (o *AssignmentOrchestrator) requireLoadedLocked() error {
	if !o.loaded {
		return appErrors.Clone(appErrors.ErrFlowStep, "load a schedule scope first")
	}
	return nil
}

func (o *AssignmentOrchestrator) requireConfirmedLocked() error {
	if err := o.requireLoadedLocked(); err != nil {
		return err
	}
	if o.confirmed == nil {
		return appErrors.Clone(appErrors.ErrFlowStep, "confirm the cell selection first")
	}
	return nil
}

func (o *AssignmentOrchestrator) requireCourseLocked() error {
	if err := o.requireConfirmedLocked(); err != nil {
		return err
	}
	if o.draft.CourseID == "" || o.sessionTypes == nil {
		return appErrors.Clone(appErrors.ErrFlowStep, "select a course first")
	}
	return nil
}

// ToggleCell adds or removes a cell from the selection and returns the live validation.
func (o *AssignmentOrchestrator) ToggleCell(day models.DayOfWeek, hourID string) (models.SelectionValidation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.requireLoadedLocked(); err != nil {
		return models.SelectionValidation{}, err
	}
	cell, ok := SelectedCell(o.grid, day, hourID)
	if !ok {
		return models.SelectionValidation{}, appErrors.Clone(appErrors.ErrInvalidSelection, fmt.Sprintf("%s hour %s is not part of the schedule grid", day, hourID))
	}

	removed := false
	next := make([]models.SelectedCellInfo, 0, len(o.selection)+1)
	for _, existing := range o.selection {
		if existing.Day == cell.Day && existing.Hour.ID == cell.Hour.ID {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	if !removed {
		next = append(next, cell)
	}
	o.selection = next
	o.selectionChangedLocked()
	return ValidateSelectionExcluding(o.grid, o.selection, o.excludedSessionIDLocked()), nil
}

// ClearSelection empties the selection.
func (o *AssignmentOrchestrator) ClearSelection() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selection = nil
	o.selectionChangedLocked()
}

// ConfirmSelection runs the selection validator and fixes the day and hours of the assignment.
func (o *AssignmentOrchestrator) ConfirmSelection() (models.SelectionValidation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.requireLoadedLocked(); err != nil {
		return models.SelectionValidation{}, err
	}
	result := ValidateSelectionExcluding(o.grid, o.selection, o.excludedSessionIDLocked())
	if !result.Valid {
		o.metrics.RecordSelectionRejected()
		return result, appErrors.WithDetails(appErrors.ErrInvalidSelection, "", result.Errors)
	}
	o.confirmed = &result
	return result, nil
}

// SelectCourse picks the course and group of the assignment and resolves which
// session types are still open. Group scopes fix the group.
func (o *AssignmentOrchestrator) SelectCourse(ctx context.Context, courseID, groupID string) (models.SessionTypeChoice, error) {
	o.mu.Lock()
	if err := o.requireConfirmedLocked(); err != nil {
		o.mu.Unlock()
		return models.SessionTypeChoice{}, err
	}
	if o.scope.IsGroup() {
		if groupID != "" && groupID != o.scope.GroupID {
			o.mu.Unlock()
			return models.SessionTypeChoice{}, appErrors.Clone(appErrors.ErrValidation, "the group is fixed by the schedule scope")
		}
		groupID = o.scope.GroupID
	}
	if courseID == "" || groupID == "" {
		o.mu.Unlock()
		return models.SessionTypeChoice{}, appErrors.Clone(appErrors.ErrValidation, "course and group are required")
	}
	var groupSessions []models.ClassSession
	if o.scope.IsGroup() {
		groupSessions = append(groupSessions, o.sessions...)
	}
	exclude := o.excludedSessionIDLocked()
	o.requestSeq++
	token := o.requestSeq
	o.mu.Unlock()

	choice, err := o.resolveSessionTypes(ctx, courseID, groupID, exclude, groupSessions)

	o.mu.Lock()
	defer o.mu.Unlock()
	if staleErr := o.staleLocked(token, "course"); staleErr != nil {
		return models.SessionTypeChoice{}, staleErr
	}
	if err != nil {
		return choice, err
	}
	if o.draft.CourseID != courseID || o.draft.GroupID != groupID {
		o.draft.TeacherID = ""
		o.draft.SpaceID = ""
		o.eligibility = nil
		o.spaces = nil
	}
	o.draft.CourseID = courseID
	o.draft.GroupID = groupID
	o.sessionTypes = &choice
	if !choice.Allows(o.draft.SessionType) {
		o.draft.SessionType = choice.AutoSelected
		o.draft.SpaceID = ""
		o.spaces = nil
	}
	o.validation = nil
	return choice, nil
}

func (o *AssignmentOrchestrator) resolveSessionTypes(ctx context.Context, courseID, groupID, exclude string, groupSessions []models.ClassSession) (models.SessionTypeChoice, error) {
	course, err := o.gateway.GetCourse(ctx, courseID)
	if err != nil {
		return models.SessionTypeChoice{}, upstreamError(err, "load course")
	}
	if groupSessions == nil {
		groupSessions, err = o.gateway.ListSessions(ctx, models.ScheduleScope{GroupID: groupID})
		if err != nil {
			return models.SessionTypeChoice{}, upstreamError(err, "load group sessions")
		}
	}
	kept := make([]models.ClassSession, 0, len(groupSessions))
	for _, session := range groupSessions {
		if session.StudentGroup.ID != groupID || (exclude != "" && session.ID == exclude) {
			continue
		}
		kept = append(kept, session)
	}
	return ResolveSessionTypes(*course, CourseQuota(*course, kept))
}

// SelectSessionType picks an open session type.
func (o *AssignmentOrchestrator) SelectSessionType(t models.SessionType) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.requireCourseLocked(); err != nil {
		return err
	}
	if !o.sessionTypes.Allows(t) {
		return appErrors.Clone(appErrors.ErrSessionTypeClosed, fmt.Sprintf("%s hours are not open for this course", strings.ToLower(string(t))))
	}
	if o.draft.SessionType != t {
		o.draft.SessionType = t
		o.draft.SpaceID = ""
		o.spaces = nil
		o.validation = nil
	}
	return nil
}

// ClassifyTeachers classifies the course's eligible teachers for the confirmed day and hours.
func (o *AssignmentOrchestrator) ClassifyTeachers(ctx context.Context) (models.TeacherBuckets, error) {
	o.mu.Lock()
	if err := o.requireCourseLocked(); err != nil {
		o.mu.Unlock()
		return models.TeacherBuckets{}, err
	}
	req := ClassificationRequest{
		CourseID:         o.draft.CourseID,
		Day:              o.confirmed.Day,
		Hours:            append([]models.TeachingHour(nil), o.confirmed.Hours...),
		ExcludeSessionID: o.excludedSessionIDLocked(),
	}
	o.requestSeq++
	token := o.requestSeq
	o.mu.Unlock()

	candidates, err := o.gateway.ListEligibleTeachers(ctx, req.CourseID, req.Day, models.HourIDs(req.Hours))

	o.mu.Lock()
	defer o.mu.Unlock()
	if staleErr := o.staleLocked(token, "classification"); staleErr != nil {
		return models.TeacherBuckets{}, staleErr
	}
	if err != nil {
		return models.TeacherBuckets{}, upstreamError(err, "load eligible teachers")
	}

	buckets := ClassifyTeachers(req, candidates)
	o.eligibility = make(map[string]models.TeacherEligibility, len(candidates))
	for _, eligibility := range buckets.All() {
		o.eligibility[eligibility.Teacher.ID] = eligibility
		o.metrics.RecordClassification(eligibility.Status)
	}
	return buckets, nil
}

// SelectTeacher picks a classified teacher. Conflicting sessions are returned as warnings.
func (o *AssignmentOrchestrator) SelectTeacher(teacherID string) (dto.TeacherSelectionResponse, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.requireCourseLocked(); err != nil {
		return dto.TeacherSelectionResponse{}, err
	}
	if o.eligibility == nil {
		return dto.TeacherSelectionResponse{}, appErrors.Clone(appErrors.ErrFlowStep, "classify teachers first")
	}
	eligibility, ok := o.eligibility[teacherID]
	if !ok {
		return dto.TeacherSelectionResponse{}, appErrors.Clone(appErrors.ErrTeacherNotSelectable, "teacher is not eligible for this course")
	}
	warnings, err := CheckTeacherSelectable(eligibility)
	if err != nil {
		return dto.TeacherSelectionResponse{}, err
	}
	if o.draft.TeacherID != teacherID {
		o.draft.TeacherID = teacherID
		o.validation = nil
	}
	return dto.TeacherSelectionResponse{Teacher: eligibility, Warnings: warnings}, nil
}

// LoadSpaces fetches the free learning spaces matching the chosen session type.
func (o *AssignmentOrchestrator) LoadSpaces(ctx context.Context) ([]models.LearningSpace, error) {
	o.mu.Lock()
	if err := o.requireCourseLocked(); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	if o.draft.TeacherID == "" {
		o.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrFlowStep, "select a teacher first")
	}
	if o.draft.SessionType == "" {
		o.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrFlowStep, "select a session type first")
	}
	courseID, sessionType := o.draft.CourseID, o.draft.SessionType
	day, hourIDs := o.confirmed.Day, models.HourIDs(o.confirmed.Hours)
	exclude := o.excludedSessionIDLocked()
	o.requestSeq++
	token := o.requestSeq
	o.mu.Unlock()

	spaces, err := o.gateway.ListEligibleSpaces(ctx, courseID, day, hourIDs, sessionType, exclude)

	o.mu.Lock()
	defer o.mu.Unlock()
	if staleErr := o.staleLocked(token, "spaces"); staleErr != nil {
		return nil, staleErr
	}
	if err != nil {
		return nil, upstreamError(err, "load learning spaces")
	}
	matching := make([]models.LearningSpace, 0, len(spaces))
	for _, space := range spaces {
		if space.SessionType == sessionType {
			matching = append(matching, space)
		}
	}
	o.spaces = matching
	return append([]models.LearningSpace(nil), matching...), nil
}

// SelectSpace picks one of the loaded spaces.
func (o *AssignmentOrchestrator) SelectSpace(spaceID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.requireCourseLocked(); err != nil {
		return err
	}
	if o.spaces == nil {
		return appErrors.Clone(appErrors.ErrFlowStep, "load learning spaces first")
	}
	for _, space := range o.spaces {
		if space.ID == spaceID {
			if o.draft.SpaceID != spaceID {
				o.draft.SpaceID = spaceID
				o.validation = nil
			}
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrValidation, "learning space is not available for this assignment")
}

func (o *AssignmentOrchestrator) formCompleteLocked() bool {
	d := o.draft
	return o.confirmed != nil && o.confirmed.Valid &&
		d.CourseID != "" && d.GroupID != "" && d.TeacherID != "" && d.SpaceID != "" && d.SessionType != ""
}

func (o *AssignmentOrchestrator) currentKeyLocked() validationKey {
	key := validationKey{draft: o.draft}
	if o.confirmed != nil {
		key.day = o.confirmed.Day
		key.hourIDs = strings.Join(models.HourIDs(o.confirmed.Hours), ",")
	}
	return key
}

// Validate runs the authoritative remote validation for the completed form.
func (o *AssignmentOrchestrator) Validate(ctx context.Context) (*models.AssignmentValidationResult, error) {
	o.mu.Lock()
	if err := o.requireConfirmedLocked(); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	if !o.formCompleteLocked() {
		o.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrFlowStep, "complete course, session type, teacher and space first")
	}
	key := o.currentKeyLocked()
	req := dto.AssignmentValidationRequest{
		CourseID:         o.draft.CourseID,
		TeacherID:        o.draft.TeacherID,
		SpaceID:          o.draft.SpaceID,
		GroupID:          o.draft.GroupID,
		Day:              string(o.confirmed.Day),
		HourIDs:          models.HourIDs(o.confirmed.Hours),
		SessionType:      string(o.draft.SessionType),
		ExcludeSessionID: o.excludedSessionIDLocked(),
	}
	o.requestSeq++
	token := o.requestSeq
	o.mu.Unlock()

	result, err := o.gateway.ValidateAssignment(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	if staleErr := o.staleLocked(token, "validation"); staleErr != nil {
		return nil, staleErr
	}
	if err != nil {
		return nil, upstreamError(err, "validate assignment")
	}
	o.validation = result
	o.validatedFor = key
	return result, nil
}

// CanSave reports whether the form is complete and its last validation had no errors.
func (o *AssignmentOrchestrator) CanSave() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.canSaveLocked()
}

func (o *AssignmentOrchestrator) canSaveLocked() bool {
	return o.formCompleteLocked() &&
		o.validation != nil &&
		!o.validation.Blocking() &&
		o.validatedFor == o.currentKeyLocked()
}

// Submit creates the session, or updates it in edit mode, then clears the form and
// reloads the scope.
func (o *AssignmentOrchestrator) Submit(ctx context.Context, notes string) (*models.ClassSession, error) {
	o.mu.Lock()
	if !o.canSaveLocked() {
		err := o.notSavableLocked()
		o.mu.Unlock()
		return nil, err
	}
	req := dto.SessionRequest{
		GroupID:     o.draft.GroupID,
		CourseID:    o.draft.CourseID,
		TeacherID:   o.draft.TeacherID,
		SpaceID:     o.draft.SpaceID,
		Day:         string(o.confirmed.Day),
		SessionType: string(o.draft.SessionType),
		HourIDs:     models.HourIDs(o.confirmed.Hours),
		Notes:       notes,
	}
	editID := o.excludedSessionIDLocked()
	if editID != "" && notes == "" {
		req.Notes = o.editing.Notes
	}
	o.requestSeq++
	o.mu.Unlock()

	var (
		session *models.ClassSession
		err     error
	)
	if editID == "" {
		session, err = o.gateway.CreateSession(ctx, req)
	} else {
		session, err = o.gateway.UpdateSession(ctx, editID, req)
	}
	if err != nil {
		return nil, upstreamError(err, "save session")
	}

	o.mu.Lock()
	o.clearTransientLocked()
	o.mu.Unlock()

	o.logger.Info("assignment submitted",
		zap.String("session_id", session.ID),
		zap.Bool("edit", editID != ""),
		zap.String("day", req.Day),
		zap.Strings("hour_ids", req.HourIDs),
	)

	if err := o.Refresh(ctx); err != nil {
		return session, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "session saved but the schedule could not be reloaded")
	}
	return session, nil
}

func (o *AssignmentOrchestrator) notSavableLocked() error {
	switch {
	case !o.formCompleteLocked():
		return appErrors.Clone(appErrors.ErrAssignmentInvalid, "the assignment form is incomplete")
	case o.validation == nil || o.validatedFor != o.currentKeyLocked():
		return appErrors.Clone(appErrors.ErrAssignmentInvalid, "validate the current assignment before saving")
	default:
		details := make([]string, 0, len(o.validation.Errors))
		for _, issue := range o.validation.Errors {
			details = append(details, issue.Message)
		}
		return appErrors.WithDetails(appErrors.ErrAssignmentInvalid, "", details)
	}
}

// DeleteSession removes a session of the loaded scope and reloads.
func (o *AssignmentOrchestrator) DeleteSession(ctx context.Context, sessionID string) error {
	o.mu.Lock()
	if err := o.requireLoadedLocked(); err != nil {
		o.mu.Unlock()
		return err
	}
	if !o.hasSessionLocked(sessionID) {
		o.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "session is not part of this schedule")
	}
	o.requestSeq++
	o.mu.Unlock()

	if err := o.gateway.DeleteSession(ctx, sessionID); err != nil {
		return upstreamError(err, "delete session")
	}

	o.mu.Lock()
	if o.editing != nil && o.editing.ID == sessionID {
		o.clearTransientLocked()
	}
	o.mu.Unlock()

	o.logger.Info("session deleted from schedule", zap.String("session_id", sessionID))
	return o.Refresh(ctx)
}

// BeginEdit preloads the form with an existing session. Its own cells count as free
// and it is excluded from conflict checks until the flow ends.
func (o *AssignmentOrchestrator) BeginEdit(ctx context.Context, sessionID string) error {
	o.mu.Lock()
	if err := o.requireLoadedLocked(); err != nil {
		o.mu.Unlock()
		return err
	}
	session, ok := o.findSessionLocked(sessionID)
	if !ok {
		o.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "session is not part of this schedule")
	}
	var groupSessions []models.ClassSession
	if o.scope.IsGroup() {
		groupSessions = append(groupSessions, o.sessions...)
	}
	o.requestSeq++
	token := o.requestSeq
	o.mu.Unlock()

	choice, err := o.resolveSessionTypes(ctx, session.Course.ID, session.StudentGroup.ID, session.ID, groupSessions)
	if err != nil && !errors.Is(err, appErrors.ErrSessionTypeClosed) {
		return err
	}
	if !choice.Allows(session.SessionType) {
		choice.Open = append(choice.Open, session.SessionType)
		choice.RequiresChoice = len(choice.Open) > 1
		if !choice.RequiresChoice {
			choice.AutoSelected = session.SessionType
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if staleErr := o.staleLocked(token, "edit"); staleErr != nil {
		return staleErr
	}
	o.clearTransientLocked()
	editing := session
	o.editing = &editing
	for _, hour := range session.TeachingHours {
		o.selection = append(o.selection, models.SelectedCellInfo{Day: session.DayOfWeek, Hour: hour, TimeSlotID: hour.TimeSlotID})
	}
	o.grid.MarkSelected(o.selection)
	confirmed := ValidateSelectionExcluding(o.grid, o.selection, session.ID)
	if confirmed.Valid {
		o.confirmed = &confirmed
	}
	o.draft = dto.AssignmentDraft{
		CourseID:    session.Course.ID,
		GroupID:     session.StudentGroup.ID,
		TeacherID:   session.Teacher.ID,
		SpaceID:     session.LearningSpace.ID,
		SessionType: session.SessionType,
	}
	o.sessionTypes = &choice
	o.spaces = []models.LearningSpace{session.LearningSpace}
	return nil
}

// Cancel discards the selection and the form. Responses still in flight are ignored.
func (o *AssignmentOrchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requestSeq++
	o.clearTransientLocked()
}

// Snapshot returns the grid and metadata of the loaded scope.
func (o *AssignmentOrchestrator) Snapshot() (dto.ScheduleGridResponse, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.requireLoadedLocked(); err != nil {
		return dto.ScheduleGridResponse{}, err
	}
	resp := dto.ScheduleGridResponse{
		Scope:    o.scope,
		Grid:     o.grid.Clone(),
		Warnings: append([]string(nil), o.grid.Warnings...),
	}
	if o.courseMeta != nil {
		resp.Courses = append([]models.CourseMetadata(nil), o.courseMeta...)
		summary := SummarizeCourseMetadata(o.courseMeta)
		resp.Summary = &summary
	}
	if o.teacherMeta != nil {
		meta := *o.teacherMeta
		resp.Teacher = &meta
	}
	return resp, nil
}

// Grid returns a copy of the current grid.
func (o *AssignmentOrchestrator) Grid() *models.ScheduleGrid {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.grid.Clone()
}

// CourseMetadata returns the quota projection of a group scope.
func (o *AssignmentOrchestrator) CourseMetadata() []models.CourseMetadata {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]models.CourseMetadata(nil), o.courseMeta...)
}

// TeacherMetadata returns the workload projection of a teacher scope.
func (o *AssignmentOrchestrator) TeacherMetadata() *models.TeacherScheduleMetadata {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.teacherMeta == nil {
		return nil
	}
	meta := *o.teacherMeta
	return &meta
}

// State reports the selection and form of the flow.
func (o *AssignmentOrchestrator) State() dto.FlowStateResponse {
	o.mu.Lock()
	defer o.mu.Unlock()
	state := dto.FlowStateResponse{
		Scope:     o.scope,
		Selection: append([]models.SelectedCellInfo{}, o.selection...),
		Draft:     o.draft,
		CanSave:   o.canSaveLocked(),
	}
	if o.editing != nil {
		state.EditSessionID = o.editing.ID
	}
	if o.confirmed != nil {
		confirmed := *o.confirmed
		state.Confirmed = &confirmed
	}
	if o.sessionTypes != nil {
		choice := *o.sessionTypes
		state.SessionTypes = &choice
	}
	if o.validation != nil && o.validatedFor == o.currentKeyLocked() {
		state.LastValidation = o.validation
	}
	return state
}
