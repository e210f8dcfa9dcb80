package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
	"github.com/noah-isme/sma-schedule-engine/pkg/middleware/requestid"
)

// SchedulingGateway is the backend the assignment engine reads snapshots from and
// submits sessions to.
type SchedulingGateway interface {
	ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error)
	ListSessions(ctx context.Context, scope models.ScheduleScope) ([]models.ClassSession, error)
	ListEligibleTeachers(ctx context.Context, courseID string, day models.DayOfWeek, hourIDs []string) ([]models.TeacherCandidate, error)
	ListEligibleSpaces(ctx context.Context, courseID string, day models.DayOfWeek, hourIDs []string, sessionType models.SessionType, excludeSessionID string) ([]models.LearningSpace, error)
	ListTeacherAvailability(ctx context.Context, teacherID string) ([]models.AvailabilityWindow, error)
	ValidateAssignment(ctx context.Context, req dto.AssignmentValidationRequest) (*models.AssignmentValidationResult, error)
	CreateSession(ctx context.Context, req dto.SessionRequest) (*models.ClassSession, error)
	UpdateSession(ctx context.Context, id string, req dto.SessionRequest) (*models.ClassSession, error)
	DeleteSession(ctx context.Context, id string) error
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context, scope models.ScheduleScope) ([]models.Course, error)
}

type timeSlotStore interface {
	ListWithHours(ctx context.Context) ([]models.TimeSlot, error)
	FindHoursByIDs(ctx context.Context, ids []string) ([]models.TeachingHour, error)
}

type classSessionStore interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.ClassSession, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.ClassSession, error)
	ListByDay(ctx context.Context, day models.DayOfWeek) ([]models.ClassSession, error)
	ListByTeachersOnDay(ctx context.Context, teacherIDs []string, day models.DayOfWeek) ([]models.ClassSession, error)
	FindByID(ctx context.Context, id string) (*models.ClassSession, error)
	Create(ctx context.Context, record *models.ClassSessionRecord, hourIDs []string) error
	Update(ctx context.Context, record *models.ClassSessionRecord, hourIDs []string) error
	Delete(ctx context.Context, id string) error
}

type teacherStore interface {
	ListEligibleForCourse(ctx context.Context, courseID string) ([]models.Teacher, error)
	ListAvailability(ctx context.Context, teacherIDs []string) ([]models.AvailabilityWindow, error)
}

type spaceStore interface {
	ListBySessionType(ctx context.Context, t models.SessionType) ([]models.LearningSpace, error)
}

type courseStore interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Course, error)
}

type assignmentValidator interface {
	Validate(ctx context.Context, req dto.AssignmentValidationRequest) (*models.AssignmentValidationResult, error)
}

// GatewayStores groups the repositories the gateway reads and writes.
type GatewayStores struct {
	TimeSlots timeSlotStore
	Sessions  classSessionStore
	Teachers  teacherStore
	Spaces    spaceStore
	Courses   courseStore
}

// RepositoryGateway implements SchedulingGateway over the database repositories.
type RepositoryGateway struct {
	stores     GatewayStores
	validation assignmentValidator
	cache      *CacheService
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewRepositoryGateway constructs the gateway.
func NewRepositoryGateway(stores GatewayStores, validation assignmentValidator, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RepositoryGateway {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RepositoryGateway{
		stores:     stores,
		validation: validation,
		cache:      cache,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
	}
}

func (g *RepositoryGateway) observe(label string, start time.Time) {
	g.metrics.ObserveDBQuery(label, time.Since(start))
}

// ListTimeSlots returns every time slot with its hours, served from the snapshot cache when warm.
func (g *RepositoryGateway) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	var cached []models.TimeSlot
	if g.cache.Get(ctx, models.SnapshotTimeSlots, &cached) {
		return cached, nil
	}

	defer g.observe("list_time_slots", time.Now())
	slots, err := g.stores.TimeSlots.ListWithHours(ctx)
	if err != nil {
		return nil, storeError(err, "time slots")
	}
	g.cache.Set(ctx, models.SnapshotTimeSlots, slots, 0)
	return slots, nil
}

// ListSessions returns the sessions of the scope's teacher or group.
func (g *RepositoryGateway) ListSessions(ctx context.Context, scope models.ScheduleScope) ([]models.ClassSession, error) {
	defer g.observe("list_sessions", time.Now())
	var (
		sessions []models.ClassSession
		err      error
	)
	switch {
	case scope.IsTeacher():
		sessions, err = g.stores.Sessions.ListByTeacher(ctx, scope.TeacherID)
	case scope.IsGroup():
		sessions, err = g.stores.Sessions.ListByGroup(ctx, scope.GroupID)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "scope needs exactly one of teacher or group")
	}
	if err != nil {
		return nil, storeError(err, "sessions")
	}
	return sessions, nil
}

// ListEligibleTeachers returns the course's eligible teachers with their sessions and
// availability on day. When availability cannot be read every candidate carries the
// load error so it classifies as ERROR instead of failing the whole step.
func (g *RepositoryGateway) ListEligibleTeachers(ctx context.Context, courseID string, day models.DayOfWeek, hourIDs []string) ([]models.TeacherCandidate, error) {
	if courseID == "" || !day.Valid() || len(hourIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course, day and hours are required")
	}
	defer g.observe("list_eligible_teachers", time.Now())

	teachers, err := g.stores.Teachers.ListEligibleForCourse(ctx, courseID)
	if err != nil {
		return nil, storeError(err, "teachers")
	}
	ids := make([]string, 0, len(teachers))
	for _, teacher := range teachers {
		ids = append(ids, teacher.ID)
	}

	sessions, err := g.stores.Sessions.ListByTeachersOnDay(ctx, ids, day)
	if err != nil {
		return nil, storeError(err, "sessions")
	}
	sessionsByTeacher := make(map[string][]models.ClassSession, len(teachers))
	for _, session := range sessions {
		sessionsByTeacher[session.Teacher.ID] = append(sessionsByTeacher[session.Teacher.ID], session)
	}

	loadError := ""
	windowsByTeacher := make(map[string][]models.AvailabilityWindow, len(teachers))
	windows, err := g.stores.Teachers.ListAvailability(ctx, ids)
	if err != nil {
		g.logger.Warn("teacher availability unavailable", zap.String("course_id", courseID), zap.Error(err))
		loadError = "availability store unreachable"
	}
	for _, window := range windows {
		if window.DayOfWeek == day {
			windowsByTeacher[window.TeacherID] = append(windowsByTeacher[window.TeacherID], window)
		}
	}

	candidates := make([]models.TeacherCandidate, 0, len(teachers))
	for _, teacher := range teachers {
		candidates = append(candidates, models.TeacherCandidate{
			Teacher:   teacher,
			Sessions:  sessionsByTeacher[teacher.ID],
			Windows:   windowsByTeacher[teacher.ID],
			LoadError: loadError,
		})
	}
	return candidates, nil
}

// ListEligibleSpaces returns spaces hosting sessionType that are free during the hours on day.
func (g *RepositoryGateway) ListEligibleSpaces(ctx context.Context, courseID string, day models.DayOfWeek, hourIDs []string, sessionType models.SessionType, excludeSessionID string) ([]models.LearningSpace, error) {
	if courseID == "" || !day.Valid() || len(hourIDs) == 0 || !sessionType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course, day, hours and session type are required")
	}
	defer g.observe("list_eligible_spaces", time.Now())

	spaces, err := g.stores.Spaces.ListBySessionType(ctx, sessionType)
	if err != nil {
		return nil, storeError(err, "learning spaces")
	}
	hours, err := g.stores.TimeSlots.FindHoursByIDs(ctx, hourIDs)
	if err != nil {
		return nil, storeError(err, "teaching hours")
	}
	targets, err := targetHours(hours)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	sessions, err := g.stores.Sessions.ListByDay(ctx, day)
	if err != nil {
		return nil, storeError(err, "sessions")
	}
	busy, err := busySpaces(sessions, day, excludeSessionID, targets)
	if err != nil {
		return nil, storeError(err, "sessions")
	}

	free := make([]models.LearningSpace, 0, len(spaces))
	for _, space := range spaces {
		if _, taken := busy[space.ID]; !taken {
			free = append(free, space)
		}
	}
	return free, nil
}

// ListTeacherAvailability returns every availability window of a teacher.
func (g *RepositoryGateway) ListTeacherAvailability(ctx context.Context, teacherID string) ([]models.AvailabilityWindow, error) {
	defer g.observe("list_teacher_availability", time.Now())
	windows, err := g.stores.Teachers.ListAvailability(ctx, []string{teacherID})
	if err != nil {
		return nil, storeError(err, "teacher availability")
	}
	return windows, nil
}

// ValidateAssignment runs the authoritative validation.
func (g *RepositoryGateway) ValidateAssignment(ctx context.Context, req dto.AssignmentValidationRequest) (*models.AssignmentValidationResult, error) {
	defer g.observe("validate_assignment", time.Now())
	return g.validation.Validate(ctx, req)
}

// CreateSession validates and inserts a new session.
func (g *RepositoryGateway) CreateSession(ctx context.Context, req dto.SessionRequest) (*models.ClassSession, error) {
	session, err := g.writeSession(ctx, "", req)
	g.metrics.RecordSessionMutation("create", err)
	return session, err
}

// UpdateSession validates and rewrites an existing session.
func (g *RepositoryGateway) UpdateSession(ctx context.Context, id string, req dto.SessionRequest) (*models.ClassSession, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "session id is required")
	}
	session, err := g.writeSession(ctx, id, req)
	g.metrics.RecordSessionMutation("update", err)
	return session, err
}

func (g *RepositoryGateway) writeSession(ctx context.Context, id string, req dto.SessionRequest) (*models.ClassSession, error) {
	if err := g.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	verdict, err := g.validation.Validate(ctx, dto.AssignmentValidationRequest{
		CourseID:         req.CourseID,
		TeacherID:        req.TeacherID,
		SpaceID:          req.SpaceID,
		GroupID:          req.GroupID,
		Day:              req.Day,
		HourIDs:          req.HourIDs,
		SessionType:      req.SessionType,
		ExcludeSessionID: id,
	})
	if err != nil {
		return nil, err
	}
	if verdict.Blocking() {
		details := make([]string, 0, len(verdict.Errors))
		for _, issue := range verdict.Errors {
			details = append(details, issue.Message)
		}
		return nil, appErrors.WithDetails(appErrors.ErrAssignmentInvalid, "", details)
	}

	record := &models.ClassSessionRecord{
		ID:              id,
		StudentGroupID:  req.GroupID,
		CourseID:        req.CourseID,
		TeacherID:       req.TeacherID,
		LearningSpaceID: req.SpaceID,
		DayOfWeek:       models.DayOfWeek(req.Day),
		SessionType:     models.SessionType(req.SessionType),
	}
	if req.Notes != "" {
		notes := req.Notes
		record.Notes = &notes
	}

	start := time.Now()
	if id == "" {
		err = g.stores.Sessions.Create(ctx, record, req.HourIDs)
		g.observe("create_session", start)
	} else {
		err = g.stores.Sessions.Update(ctx, record, req.HourIDs)
		g.observe("update_session", start)
	}
	if err != nil {
		return nil, storeError(err, "session")
	}

	session, err := g.stores.Sessions.FindByID(ctx, record.ID)
	if err != nil {
		return nil, storeError(err, "session")
	}
	g.logger.Info("class session saved",
		zap.String("session_id", session.ID),
		zap.String("group_id", req.GroupID),
		zap.String("teacher_id", req.TeacherID),
		zap.String("day", req.Day),
		zap.Int("hours", len(req.HourIDs)),
		zap.String("request_id", requestid.FromContext(ctx)),
	)
	return session, nil
}

// DeleteSession removes a session.
func (g *RepositoryGateway) DeleteSession(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "session id is required")
	}
	defer g.observe("delete_session", time.Now())
	err := g.stores.Sessions.Delete(ctx, id)
	g.metrics.RecordSessionMutation("delete", err)
	if err != nil {
		return storeError(err, "session")
	}
	g.logger.Info("class session deleted",
		zap.String("session_id", id),
		zap.String("request_id", requestid.FromContext(ctx)),
	)
	return nil
}

// GetCourse returns a course definition.
func (g *RepositoryGateway) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	defer g.observe("get_course", time.Now())
	course, err := g.stores.Courses.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "course")
	}
	return course, nil
}

// ListCourses returns the group's study plan or the teacher's current courses.
func (g *RepositoryGateway) ListCourses(ctx context.Context, scope models.ScheduleScope) ([]models.Course, error) {
	defer g.observe("list_courses", time.Now())
	var (
		courses []models.Course
		err     error
	)
	switch {
	case scope.IsGroup():
		courses, err = g.stores.Courses.ListByGroup(ctx, scope.GroupID)
	case scope.IsTeacher():
		courses, err = g.stores.Courses.ListByTeacher(ctx, scope.TeacherID)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "scope needs exactly one of teacher or group")
	}
	if err != nil {
		return nil, storeError(err, "courses")
	}
	return courses, nil
}
